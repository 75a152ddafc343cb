package scanner

import (
	"context"
	"fmt"

	"github.com/Sena-ops/pygate/internal/parser"
)

// RunPyupgrade aplica modernização de sintaxe nos arquivos do alvo.
// É um fixer: reescreve arquivos em disco, por isso roda sempre antes dos
// analisadores da etapa, nunca em paralelo com eles. Exit 1 = arquivos
// reescritos ("Rewriting <arquivo>" no stderr).
func RunPyupgrade(ctx context.Context, target, outDir string) ([]byte, error) {
	proj, err := parser.DetectPythonProject(target)
	if err != nil {
		return nil, fmt.Errorf("listar arquivos python: %w", err)
	}
	if len(proj.Files) == 0 {
		return nil, nil
	}

	args := append([]string{"--py39-plus"}, proj.Files...)
	res, err := runCommand(ctx, "pyupgrade", "", "pyupgrade", args...)
	if err != nil {
		return nil, err
	}
	if err := checkExit("pyupgrade", res, 0, 1); err != nil {
		return nil, err
	}
	// O pyupgrade reporta reescritas no stderr.
	return append(res.Stdout, res.Stderr...), nil
}
