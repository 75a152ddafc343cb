package scanner

import "context"

// RunBandit executa `bandit -r <alvo> -f json` e devolve o JSON bruto.
// Exit 1 significa "issues encontrados", não erro.
func RunBandit(ctx context.Context, target, outDir string) ([]byte, error) {
	res, err := runCommand(ctx, "bandit", "", "bandit", "-r", target, "-f", "json", "-q")
	if err != nil {
		return nil, err
	}
	if err := checkExit("bandit", res, 0, 1); err != nil {
		return nil, err
	}
	return res.Stdout, nil
}
