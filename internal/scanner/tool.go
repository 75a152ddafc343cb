package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sena-ops/pygate/internal/model"
)

// Stage é uma etapa do pipeline, executada em ordem fixa de prioridade.
type Stage string

const (
	StageSecurity      Stage = "security"
	StageTests         Stage = "tests"
	StageCodeHealth    Stage = "code-health"
	StageComplexity    Stage = "complexity"
	StageModernization Stage = "modernization"
)

// StageOrder: security primeiro, modernização por último.
var StageOrder = []Stage{
	StageSecurity,
	StageTests,
	StageCodeHealth,
	StageComplexity,
	StageModernization,
}

type RunFunc func(ctx context.Context, target, outDir string) ([]byte, error)

type ParseFunc func(raw []byte) ([]model.Finding, map[string]float64, error)

// Tool descreve uma ferramenta externa: como executar e como interpretar a
// saída. Run nunca interpreta findings; Parse nunca executa nada.
type Tool struct {
	Name      string
	Stage     Stage
	Dimension model.Dimension   // dimensão principal (findings sintéticos de falha)
	Measures  []model.Dimension // dimensões que esta ferramenta mede com autoridade
	Fixer     bool              // reescreve arquivos; roda antes dos analisadores da etapa
	Serial    bool              // muta o alvo durante a análise; nunca em paralelo com outras
	Run       RunFunc
	Parse     ParseFunc
}

// Result é a contribuição de uma ferramenta para o Report.
type Result struct {
	Tool      string
	Dimension model.Dimension
	Findings  []model.Finding
	Metrics   map[string]float64
	Duration  time.Duration
	Retries   int
}

// Execute roda a ferramenta com timeout, preserva a saída bruta em
// <outDir>/raw/ e converte para findings normalizados.
func Execute(ctx context.Context, tool Tool, target, outDir string, timeout time.Duration) (Result, error) {
	res := Result{Tool: tool.Name, Dimension: tool.Dimension}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := tool.Run(runCtx, target, outDir)
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	if err := saveRaw(outDir, tool.Name, raw); err != nil {
		return res, fmt.Errorf("salvar saída bruta de %s: %w", tool.Name, err)
	}

	findings, metrics, err := tool.Parse(raw)
	if err != nil {
		return res, &ParseError{Tool: tool.Name, Err: err}
	}
	res.Findings = findings
	res.Metrics = metrics
	return res, nil
}

func saveRaw(outDir, toolName string, raw []byte) error {
	rawDir := filepath.Join(outDir, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(rawDir, toolName+".out"), raw, 0o644)
}
