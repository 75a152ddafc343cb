package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // driver SQLite sem CGO

	"github.com/Sena-ops/pygate/internal/model"
)

// DB é o histórico de execuções, append-only: linhas são inseridas, nunca
// alteradas — o Report de uma execução é imutável depois de congelado.
type DB struct {
	conn *sql.DB
}

// OpenSQLite abre (criando se preciso) o banco de histórico.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN para portabilidade com o driver modernc.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id           TEXT PRIMARY KEY,
  started_at   TEXT NOT NULL,    -- RFC3339
  target       TEXT NOT NULL,
  state        TEXT NOT NULL,    -- GATE_PASSED | GATE_FAILED
  passed       INTEGER NOT NULL,
  findings     INTEGER NOT NULL,
  metrics_json TEXT NOT NULL,
  report_json  TEXT NOT NULL,
  verdict_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`)
	return err
}

// RunRow é a linha de listagem do histórico.
type RunRow struct {
	ID        string             `json:"id"`
	StartedAt time.Time          `json:"started_at"`
	Target    string             `json:"target"`
	State     string             `json:"state"`
	Passed    bool               `json:"passed"`
	Findings  int                `json:"findings"`
	Metrics   map[string]float64 `json:"metrics"`
}

// InsertRun registra uma execução congelada. Sem upsert: histórico é
// append-only e cada execução tem id próprio.
func (db *DB) InsertRun(id string, rep model.Report, verdict model.Verdict, state model.RunState) error {
	repJSON, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		return err
	}
	metricsJSON, err := json.Marshal(rep.Metrics)
	if err != nil {
		return err
	}
	passed := 0
	if verdict.Passed {
		passed = 1
	}
	_, err = db.conn.Exec(
		`INSERT INTO runs (id, started_at, target, state, passed, findings, metrics_json, report_json, verdict_json)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rep.StartedAt.UTC().Format(time.RFC3339Nano), rep.Target, string(state),
		passed, len(rep.Findings), string(metricsJSON), string(repJSON), string(verdictJSON),
	)
	return err
}

// ListRuns devolve as execuções mais recentes primeiro.
func (db *DB) ListRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT id, started_at, target, state, passed, findings, metrics_json
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var startedAt, metricsJSON string
		var passed int
		if err := rows.Scan(&r.ID, &startedAt, &r.Target, &r.State, &passed, &r.Findings, &metricsJSON); err != nil {
			return nil, err
		}
		r.Passed = passed == 1
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = t
		}
		if err := json.Unmarshal([]byte(metricsJSON), &r.Metrics); err != nil {
			return nil, fmt.Errorf("métricas corrompidas em %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadRun devolve o Report e o Verdict completos de uma execução.
func (db *DB) LoadRun(id string) (model.Report, model.Verdict, error) {
	var repJSON, verdictJSON string
	row := db.conn.QueryRow(`SELECT report_json, verdict_json FROM runs WHERE id = ?`, id)
	if err := row.Scan(&repJSON, &verdictJSON); err != nil {
		return model.Report{}, model.Verdict{}, err
	}
	var rep model.Report
	var verdict model.Verdict
	if err := json.Unmarshal([]byte(repJSON), &rep); err != nil {
		return rep, verdict, err
	}
	if err := json.Unmarshal([]byte(verdictJSON), &verdict); err != nil {
		return rep, verdict, err
	}
	return rep, verdict, nil
}

// LatestRunID devolve o id da execução mais recente.
func (db *DB) LatestRunID() (string, error) {
	var id string
	row := db.conn.QueryRow(`SELECT id FROM runs ORDER BY started_at DESC LIMIT 1`)
	if err := row.Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// TrendPoint é um valor de métrica numa execução passada.
type TrendPoint struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Value     float64   `json:"value"`
	Measured  bool      `json:"measured"`
}

// Trend devolve a evolução de uma métrica nas últimas n execuções,
// da mais antiga para a mais recente.
func (db *DB) Trend(metric string, n int) ([]TrendPoint, error) {
	runs, err := db.ListRuns(n)
	if err != nil {
		return nil, err
	}
	// ListRuns vem do mais recente; inverte para leitura cronológica.
	out := make([]TrendPoint, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		v, ok := r.Metrics[metric]
		out = append(out, TrendPoint{RunID: r.ID, StartedAt: r.StartedAt, Value: v, Measured: ok})
	}
	return out, nil
}
