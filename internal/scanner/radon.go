package scanner

import "context"

// RunRadon executa `radon cc -s -j` (complexidade ciclomática por bloco).
func RunRadon(ctx context.Context, target, outDir string) ([]byte, error) {
	res, err := runCommand(ctx, "radon", "", "radon", "cc", "-s", "-j", target)
	if err != nil {
		return nil, err
	}
	if err := checkExit("radon", res, 0); err != nil {
		return nil, err
	}
	return res.Stdout, nil
}
