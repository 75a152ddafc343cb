package scanner

import "context"

// RunVulture executa o vulture (código morto). Exit 3 = código morto
// encontrado; 1 e 2 são erros de entrada/linha de comando.
func RunVulture(ctx context.Context, target, outDir string) ([]byte, error) {
	res, err := runCommand(ctx, "vulture", "", "vulture", target, "--min-confidence", "60")
	if err != nil {
		return nil, err
	}
	if err := checkExit("vulture", res, 0, 3); err != nil {
		return nil, err
	}
	return res.Stdout, nil
}
