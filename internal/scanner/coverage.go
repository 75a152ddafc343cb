package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// RunCoverage executa a suíte de testes com pytest-cov e devolve o JSON do
// coverage.py. Exit 1 = testes falhando (ainda assim há relatório); exit 5
// (nenhum teste coletado) é falha de execução: sem testes não há cobertura.
func RunCoverage(ctx context.Context, target, outDir string) ([]byte, error) {
	rawDir, err := filepath.Abs(filepath.Join(outDir, "raw"))
	if err != nil {
		return nil, fmt.Errorf("resolver diretório de saída: %w", err)
	}
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de saída: %w", err)
	}
	covPath := filepath.Join(rawDir, "coverage.json")

	res, err := runCommand(ctx, "coverage", target,
		"python", "-m", "pytest", "-q",
		"--cov=.", "--cov-report=json:"+covPath)
	if err != nil {
		return nil, err
	}
	if err := checkExit("coverage", res, 0, 1); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(covPath)
	if err != nil {
		return nil, &ToolExecutionError{
			Tool:   "coverage",
			Kind:   ExecExit,
			Stderr: fmt.Sprintf("relatório de cobertura não gerado: %v", err),
		}
	}
	return b, nil
}
