package scanner

import "context"

// RunRuff executa `ruff check` com saída JSON. Exit 1 = findings.
func RunRuff(ctx context.Context, target, outDir string) ([]byte, error) {
	res, err := runCommand(ctx, "ruff", "", "ruff", "check", target, "--output-format", "json")
	if err != nil {
		return nil, err
	}
	if err := checkExit("ruff", res, 0, 1); err != nil {
		return nil, err
	}
	return res.Stdout, nil
}
