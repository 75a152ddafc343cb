package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sena-ops/pygate/internal/aggregate"
	"github.com/Sena-ops/pygate/internal/config"
	"github.com/Sena-ops/pygate/internal/gate"
	"github.com/Sena-ops/pygate/internal/model"
	"github.com/Sena-ops/pygate/internal/parser"
	"github.com/Sena-ops/pygate/internal/scanner"
)

// ErrAborted indica execução interrompida (cancelamento ou falha de
// execução): resultados parciais são descartados, nunca fundidos num Report
// — um Report parcial geraria um veredito enganosamente permissivo.
var ErrAborted = errors.New("execução abortada")

// Outcome é o resultado completo de uma execução do gate.
type Outcome struct {
	Report  model.Report
	Verdict model.Verdict
	State   model.RunState
}

// Orchestrator sequencia as etapas em ordem fixa de prioridade
// (security → tests → code-health → complexity → modernization).
type Orchestrator struct {
	cfg        config.Config
	thresholds config.ThresholdSet
	log        *zap.SugaredLogger

	// lookup e execução injetáveis nos testes
	byStage func(scanner.Stage, []string) ([]scanner.Tool, error)
	execute func(context.Context, scanner.Tool, string, string, time.Duration) (scanner.Result, error)
}

// New valida a configuração de thresholds antes de qualquer ferramenta rodar:
// ThresholdConfigError é fatal na partida.
func New(cfg config.Config, log *zap.SugaredLogger) (*Orchestrator, error) {
	ts, err := cfg.BuildThresholds()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		cfg:        cfg,
		thresholds: ts,
		log:        log,
		byStage:    scanner.ByStage,
		execute:    scanner.Execute,
	}, nil
}

// Run executa o pipeline inteiro contra o alvo e produz Report + Verdict.
func (o *Orchestrator) Run(ctx context.Context, target, outDir string) (Outcome, error) {
	startedAt := time.Now().UTC()

	proj, err := parser.DetectPythonProject(target)
	if err != nil {
		return Outcome{State: model.RunAborted}, fmt.Errorf("detectar projeto: %w", err)
	}
	if !proj.IsPythonProject() {
		return Outcome{State: model.RunAborted}, fmt.Errorf("nenhum arquivo Python em %s", target)
	}
	o.log.Infof("Alvo: %s (%d arquivos Python)", target, len(proj.Files))

	stageStates := make(map[scanner.Stage]model.StageState)
	var stageResults []model.StageResult
	var allResults []scanner.Result
	measured := make(map[model.Dimension]bool)
	aborted := false

	for _, stage := range scanner.StageOrder {
		if aborted || ctx.Err() != nil {
			stageStates[stage] = model.StageSkipped
			stageResults = append(stageResults, model.StageResult{
				Stage: string(stage), State: model.StageSkipped, Reason: "execução interrompida",
			})
			continue
		}

		sr := o.runStage(ctx, stage, target, outDir, stageStates, &allResults, measured)
		stageStates[stage] = sr.State
		stageResults = append(stageResults, sr)

		// Cancelamento durante a etapa é detectado pelo contexto, não pelo
		// texto do motivo.
		if sr.State == model.StageFailed && ctx.Err() == nil && o.cfg.Run.AbortOnFirstFailure {
			o.log.Warnf("Etapa %s falhou; pulando as demais (abort_on_first_failure)", stage)
			aborted = true
		}
	}

	if ctx.Err() != nil {
		// Cancelamento: descarta parciais.
		return Outcome{State: model.RunAborted}, fmt.Errorf("%w: %v", ErrAborted, ctx.Err())
	}

	finishedAt := time.Now().UTC()
	report := aggregate.Aggregate(target, startedAt, finishedAt, stageResults, allResults, measured)
	verdict := gate.Evaluate(&report, o.thresholds, o.cfg.DimensionOptional)

	state := model.RunGatePassed
	if !verdict.Passed {
		state = model.RunGateFailed
	}
	return Outcome{Report: report, Verdict: verdict, State: state}, nil
}

// runStage executa as ferramentas de uma etapa: fixers em série primeiro
// (reescrevem arquivos), analisadores em paralelo até run.parallelism, com
// barreira antes de consolidar.
func (o *Orchestrator) runStage(ctx context.Context, stage scanner.Stage, target, outDir string, states map[scanner.Stage]model.StageState, allResults *[]scanner.Result, measured map[model.Dimension]bool) model.StageResult {
	sr := model.StageResult{Stage: string(stage), State: model.StageRunning}

	if !o.cfg.StageEnabled(string(stage)) {
		sr.State = model.StageSkipped
		sr.Reason = "desabilitada na configuração"
		return sr
	}

	// Pré-requisitos declarados na configuração (padrão: tests antes de
	// complexity). Não atendidos e não dispensados = SKIPPED com motivo.
	for _, prereq := range o.cfg.Run.Prerequisites[string(stage)] {
		if states[scanner.Stage(prereq)] != model.StagePassed && !o.cfg.StageWaived(string(stage)) {
			sr.State = model.StageSkipped
			sr.Reason = fmt.Sprintf("pré-requisito '%s' não passou", prereq)
			return sr
		}
	}

	tools, err := o.byStage(stage, o.cfg.Stages[string(stage)].Tools)
	if err != nil {
		sr.State = model.StageFailed
		sr.Reason = err.Error()
		return sr
	}

	var fixers, analyzers, serial []scanner.Tool
	for _, t := range tools {
		switch {
		case t.Fixer:
			if o.cfg.Run.Fix {
				fixers = append(fixers, t)
			}
		case t.Serial:
			serial = append(serial, t)
		default:
			analyzers = append(analyzers, t)
		}
	}
	if len(fixers) == 0 && len(analyzers) == 0 && len(serial) == 0 {
		sr.State = model.StageSkipped
		sr.Reason = "nenhuma ferramenta habilitada (fixers exigem --fix)"
		return sr
	}

	timeout := time.Duration(o.cfg.Run.TimeoutSeconds) * time.Second
	var failures []string

	// Fixers mutam o código em disco: estritamente antes dos analisadores,
	// nunca em paralelo com eles.
	for _, tool := range fixers {
		res, toolRun, err := o.runTool(ctx, tool, target, outDir, timeout)
		sr.Tools = append(sr.Tools, toolRun)
		if err != nil {
			failures = append(failures, err.Error())
			*allResults = append(*allResults, syntheticFailure(tool, err))
			continue
		}
		o.record(res, tool, allResults, measured)
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(max(o.cfg.Run.Parallelism, 1))
	for _, tool := range analyzers {
		tool := tool
		g.Go(func() error {
			res, toolRun, err := o.runTool(ctx, tool, target, outDir, timeout)
			mu.Lock()
			defer mu.Unlock()
			sr.Tools = append(sr.Tools, toolRun)
			if err != nil {
				failures = append(failures, err.Error())
				*allResults = append(*allResults, syntheticFailure(tool, err))
				return nil
			}
			o.record(res, tool, allResults, measured)
			return nil
		})
	}
	_ = g.Wait() // barreira: nada é agregado antes de todas terminarem

	// Ferramentas que mutam o alvo durante a análise (mutmut reescreve os
	// fontes a cada mutação) só começam depois que os analisadores puros
	// terminaram de ler o mesmo diretório.
	for _, tool := range serial {
		if ctx.Err() != nil {
			break
		}
		res, toolRun, err := o.runTool(ctx, tool, target, outDir, timeout)
		sr.Tools = append(sr.Tools, toolRun)
		if err != nil {
			failures = append(failures, err.Error())
			*allResults = append(*allResults, syntheticFailure(tool, err))
			continue
		}
		o.record(res, tool, allResults, measured)
	}

	// Ordem estável no relatório, independente da ordem de término.
	sort.Slice(sr.Tools, func(i, j int) bool { return sr.Tools[i].Tool < sr.Tools[j].Tool })

	if ctx.Err() != nil {
		sr.State = model.StageFailed
		sr.Reason = "execução cancelada"
		return sr
	}
	if len(failures) > 0 {
		sr.State = model.StageFailed
		sr.Reason = strings.Join(failures, "; ")
		return sr
	}
	if reason := o.stageThresholdCheck(stage, *allResults, measured); reason != "" {
		sr.State = model.StageFailed
		sr.Reason = reason
		return sr
	}
	sr.State = model.StagePassed
	return sr
}

// runTool executa com retry limitado para erros transientes
// (timeout, crash). ParseError nunca é retentado: é drift de versão,
// precisa de intervenção humana.
func (o *Orchestrator) runTool(ctx context.Context, tool scanner.Tool, target, outDir string, timeout time.Duration) (scanner.Result, model.ToolRun, error) {
	var res scanner.Result
	var err error

	attempts := o.cfg.Run.RetryCount + 1
	retries := 0
	for attempt := 0; attempt < attempts; attempt++ {
		o.log.Debugf("Executando %s (tentativa %d/%d)", tool.Name, attempt+1, attempts)
		res, err = o.execute(ctx, tool, target, outDir, timeout)
		if err == nil {
			break
		}
		var execErr *scanner.ToolExecutionError
		if errors.As(err, &execErr) && execErr.Transient() && attempt+1 < attempts {
			o.log.Warnf("Falha transiente em %s, reexecutando: %v", tool.Name, err)
			retries++
			continue
		}
		break
	}

	toolRun := model.ToolRun{
		Tool:     tool.Name,
		Findings: len(res.Findings),
		Duration: res.Duration,
		Retries:  retries,
	}
	if err != nil {
		toolRun.Error = err.Error()
		o.log.Errorw("Ferramenta falhou", "ferramenta", tool.Name, "erro", err)
		return res, toolRun, err
	}
	o.log.Infof("%s concluído: %d finding(s)", tool.Name, len(res.Findings))
	return res, toolRun, nil
}

func (o *Orchestrator) record(res scanner.Result, tool scanner.Tool, allResults *[]scanner.Result, measured map[model.Dimension]bool) {
	*allResults = append(*allResults, res)
	for _, dim := range tool.Measures {
		measured[dim] = true
	}
}

// stageThresholdCheck avalia, ainda dentro da etapa, os thresholds cujas
// métricas já foram medidas — é o que dá sentido ao pré-requisito
// "tests antes de complexity". A avaliação final permanece com o gate.
func (o *Orchestrator) stageThresholdCheck(stage scanner.Stage, results []scanner.Result, measured map[model.Dimension]bool) string {
	partial := aggregate.Aggregate("", time.Time{}, time.Time{}, nil, results, measured)

	subset := make(config.ThresholdSet)
	for key, limit := range o.thresholds {
		if _, ok := partial.Metric(key); ok && stageOwns(stage, key) {
			subset[key] = limit
		}
	}
	if len(subset) == 0 {
		return ""
	}
	verdict := gate.Evaluate(&partial, subset, nil)
	if verdict.Passed {
		return ""
	}
	var parts []string
	for _, v := range verdict.Violations {
		parts = append(parts, fmt.Sprintf("%s.%s = %s (limite %s %s)", v.Dimension, v.Metric, v.Actual, v.Comparator, v.Limit))
	}
	return "thresholds violados: " + strings.Join(parts, ", ")
}

// stageOwns liga dimensões de threshold à etapa que as mede.
func stageOwns(stage scanner.Stage, thresholdKey string) bool {
	dim, _, _ := strings.Cut(thresholdKey, ".")
	switch stage {
	case scanner.StageSecurity:
		return dim == string(model.DimSecurity)
	case scanner.StageTests:
		return dim == string(model.DimCoverage)
	case scanner.StageCodeHealth:
		return dim == string(model.DimStyle) || dim == string(model.DimDeadCode) || dim == string(model.DimDuplication)
	case scanner.StageComplexity:
		return dim == string(model.DimComplexity)
	case scanner.StageModernization:
		return dim == string(model.DimModernization)
	}
	return false
}

// syntheticFailure registra a falha de execução como finding do próprio
// pygate, em vez de derrubar a execução inteira.
func syntheticFailure(tool scanner.Tool, err error) scanner.Result {
	return scanner.Result{
		Tool:      "pygate",
		Dimension: tool.Dimension,
		Findings: []model.Finding{{
			ToolName:  "pygate",
			Dimension: tool.Dimension,
			RuleID:    "tooling-failure",
			Severity:  model.SevHigh,
			Message:   fmt.Sprintf("falha de execução de %s: %v", tool.Name, err),
			FilePath:  "",
			StartLine: 1,
		}},
	}
}
