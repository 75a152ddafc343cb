package scanner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

type ExecResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// runCommand executa um comando capturando stdout/stderr. Exit codes não-zero
// NÃO são erro aqui — cada runner decide o que é "sucesso com findings".
// Erros tipados só para binário ausente, timeout e cancelamento.
func runCommand(ctx context.Context, toolName, dir, name string, args ...string) (ExecResult, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return res, &ToolExecutionError{Tool: toolName, Kind: ExecTimeout}
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return res, &ToolExecutionError{Tool: toolName, Kind: ExecCancelled}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return res, &ToolExecutionError{Tool: toolName, Kind: ExecNotFound}
		}
		return res, &ToolExecutionError{Tool: toolName, Kind: ExecExit, ExitCode: -1, Stderr: err.Error()}
	}
	return res, nil
}

// checkExit valida o exit code contra o conjunto esperado da ferramenta.
func checkExit(toolName string, res ExecResult, okCodes ...int) error {
	for _, c := range okCodes {
		if res.ExitCode == c {
			return nil
		}
	}
	return &ToolExecutionError{
		Tool:     toolName,
		Kind:     ExecExit,
		ExitCode: res.ExitCode,
		Stderr:   string(res.Stderr),
	}
}
