package scanner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunCommand_CapturaStdout(t *testing.T) {
	res, err := runCommand(context.Background(), "echo", "", "echo", "ola")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "ola" {
		t.Errorf("esperado \"ola\", obtido %q", got)
	}
	if res.ExitCode != 0 {
		t.Errorf("esperado exit 0, obtido %d", res.ExitCode)
	}
}

func TestRunCommand_ExitNaoZeroNaoEhErro(t *testing.T) {
	res, err := runCommand(context.Background(), "sh", "", "sh", "-c", "exit 3")
	if err != nil {
		t.Fatalf("exit code não-zero não deve virar erro aqui: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("esperado exit 3, obtido %d", res.ExitCode)
	}
}

func TestRunCommand_BinarioAusente(t *testing.T) {
	_, err := runCommand(context.Background(), "inexistente", "", "pygate-nao-existe-2025")
	var execErr *ToolExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("esperado ToolExecutionError, obtido %v", err)
	}
	if execErr.Kind != ExecNotFound {
		t.Errorf("esperado binary-missing, obtido %s", execErr.Kind)
	}
	if execErr.Transient() {
		t.Error("binário ausente não é transiente: retry não resolve")
	}
}

func TestRunCommand_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := runCommand(ctx, "sleep", "", "sleep", "5")
	var execErr *ToolExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("esperado ToolExecutionError, obtido %v", err)
	}
	if execErr.Kind != ExecTimeout {
		t.Errorf("esperado timeout, obtido %s", execErr.Kind)
	}
	if !execErr.Transient() {
		t.Error("timeout deve ser transiente")
	}
}

func TestRunCommand_Cancelamento(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := runCommand(ctx, "sleep", "", "sleep", "5")
	var execErr *ToolExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("esperado ToolExecutionError, obtido %v", err)
	}
	if execErr.Kind != ExecCancelled {
		t.Errorf("esperado cancelled, obtido %s", execErr.Kind)
	}
	if execErr.Transient() {
		t.Error("cancelamento não é transiente")
	}
}

func TestCheckExit(t *testing.T) {
	if err := checkExit("ruff", ExecResult{ExitCode: 1}, 0, 1); err != nil {
		t.Errorf("exit 1 está no conjunto esperado: %v", err)
	}

	err := checkExit("ruff", ExecResult{ExitCode: 2, Stderr: []byte("config inválida")}, 0, 1)
	var execErr *ToolExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("esperado ToolExecutionError, obtido %v", err)
	}
	if execErr.ExitCode != 2 || execErr.Kind != ExecExit {
		t.Errorf("erro errado: %+v", execErr)
	}
	if !strings.Contains(execErr.Error(), "config inválida") {
		t.Errorf("stderr deve aparecer na mensagem: %s", execErr.Error())
	}
}
