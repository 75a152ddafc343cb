package scanner

import "context"

// RunMutmut executa mutation testing no diretório alvo. O exit code é um
// bitmask: 2 = mutantes sobreviventes, 4 = timeouts, 8 = suspeitos — todos
// são resultados, não erros. O bit 1 (erro interno) reprova a execução.
func RunMutmut(ctx context.Context, target, outDir string) ([]byte, error) {
	res, err := runCommand(ctx, "mutmut", target, "python", "-m", "mutmut", "run", "--no-progress")
	if err != nil {
		return nil, err
	}
	if res.ExitCode&1 != 0 || res.ExitCode > 14 {
		return nil, &ToolExecutionError{
			Tool:     "mutmut",
			Kind:     ExecExit,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
	}
	return res.Stdout, nil
}
