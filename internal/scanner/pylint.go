package scanner

import "context"

// RunPylint executa o pylint com saída JSON. O exit code é um bitmask
// (1=fatal, 2=error, 4=warning, ...); só >= 32 indica falha de execução.
func RunPylint(ctx context.Context, target, outDir string) ([]byte, error) {
	res, err := runCommand(ctx, "pylint", "", "pylint", "--output-format=json", "--recursive=y", target)
	if err != nil {
		return nil, err
	}
	if res.ExitCode >= 32 {
		return nil, &ToolExecutionError{
			Tool:     "pylint",
			Kind:     ExecExit,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
	}
	return res.Stdout, nil
}
