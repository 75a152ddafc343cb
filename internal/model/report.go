package model

import "time"

// StageState é o estado final de uma etapa do pipeline.
type StageState string

const (
	StagePending StageState = "PENDING"
	StageRunning StageState = "RUNNING"
	StagePassed  StageState = "PASSED"
	StageFailed  StageState = "FAILED"
	StageSkipped StageState = "SKIPPED"
)

// RunState é o estado global de uma execução.
type RunState string

const (
	RunInProgress RunState = "IN_PROGRESS"
	RunGatePassed RunState = "GATE_PASSED"
	RunGateFailed RunState = "GATE_FAILED"
	RunAborted    RunState = "ABORTED"
)

// ToolRun registra a execução de uma ferramenta dentro de uma etapa.
type ToolRun struct {
	Tool     string        `json:"tool"`
	Findings int           `json:"findings"`
	Duration time.Duration `json:"duration"`
	Retries  int           `json:"retries,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// StageResult é o resultado consolidado de uma etapa (security, tests, ...).
type StageResult struct {
	Stage  string     `json:"stage"`
	State  StageState `json:"state"`
	Reason string     `json:"reason,omitempty"` // motivo de SKIPPED/FAILED
	Tools  []ToolRun  `json:"tools,omitempty"`
}

// Report é o resultado imutável de uma execução completa: findings ordenados,
// métricas resumidas por "dimensão.métrica" e o estado de cada etapa.
// Depois de montado pelo agregador, nunca é alterado — uma nova execução
// produz um novo Report.
type Report struct {
	Target     string             `json:"target"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Findings   []Finding          `json:"findings"`
	Metrics    map[string]float64 `json:"metrics"` // ex: "coverage.percent" -> 82.0
	Stages     []StageResult      `json:"stages"`
}

// Metric devolve o valor de uma métrica e se ela foi medida nesta execução.
func (r *Report) Metric(key string) (float64, bool) {
	v, ok := r.Metrics[key]
	return v, ok
}
