package scanner

import "fmt"

type ExecErrorKind string

const (
	ExecNotFound  ExecErrorKind = "binary-missing"
	ExecTimeout   ExecErrorKind = "timeout"
	ExecExit      ExecErrorKind = "unexpected-exit"
	ExecCancelled ExecErrorKind = "cancelled"
)

// ToolExecutionError indica falha de execução da ferramenta externa:
// binário ausente, timeout ou exit code fora do conjunto esperado.
// "Findings existem" nunca é erro — os exit codes de sucesso-com-findings
// de cada ferramenta são declarados no runner correspondente.
type ToolExecutionError struct {
	Tool     string
	Kind     ExecErrorKind
	ExitCode int
	Stderr   string
}

func (e *ToolExecutionError) Error() string {
	switch e.Kind {
	case ExecNotFound:
		return fmt.Sprintf("%s: executável não encontrado no PATH", e.Tool)
	case ExecTimeout:
		return fmt.Sprintf("%s: timeout excedido", e.Tool)
	case ExecCancelled:
		return fmt.Sprintf("%s: execução cancelada", e.Tool)
	default:
		return fmt.Sprintf("%s: exit code inesperado %d: %s", e.Tool, e.ExitCode, trunc(e.Stderr, 200))
	}
}

// Transient diz se vale a pena reexecutar (timeout e crash sim; binário
// ausente e cancelamento não).
func (e *ToolExecutionError) Transient() bool {
	return e.Kind == ExecTimeout || e.Kind == ExecExit
}

// ParseError indica saída da ferramenta fora do schema esperado (provável
// drift de versão). Nunca é retentado: exige intervenção do operador.
type ParseError struct {
	Tool string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: saída fora do formato esperado: %v", e.Tool, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func trunc(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
