package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Sena-ops/pygate/internal/model"
)

func sampleData() (model.Report, model.Verdict) {
	rep := model.Report{
		Target:    "./app",
		StartedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Findings: []model.Finding{{
			ToolName: "bandit", Dimension: model.DimSecurity, RuleID: "B608",
			Severity: model.SevCritical, FilePath: "app/db.py", StartLine: 42,
			Message: "SQL injection | via concatenação",
		}},
		Metrics: map[string]float64{
			"coverage.percent":        91.5,
			"security.critical_count": 1,
		},
		Stages: []model.StageResult{
			{Stage: "security", State: model.StagePassed},
			{Stage: "complexity", State: model.StageSkipped, Reason: "pré-requisito 'tests' não passou"},
		},
	}
	verdict := model.Verdict{Passed: false, Violations: []model.Violation{{
		Dimension: model.DimSecurity, Metric: "critical_count",
		Comparator: "<=", Actual: "1", Limit: "0",
	}}}
	return rep, verdict
}

func TestGenerate(t *testing.T) {
	outDir := t.TempDir()
	rep, verdict := sampleData()

	if err := Generate(outDir, rep, verdict); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	jsonBytes, err := os.ReadFile(filepath.Join(outDir, "report.json"))
	if err != nil {
		t.Fatalf("report.json não gerado: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		t.Fatalf("report.json inválido: %v", err)
	}
	if doc.Report.Target != "./app" || doc.Verdict.Passed {
		t.Errorf("documento errado: %+v", doc)
	}

	mdBytes, err := os.ReadFile(filepath.Join(outDir, "report.md"))
	if err != nil {
		t.Fatalf("report.md não gerado: %v", err)
	}
	md := string(mdBytes)
	for _, want := range []string{
		"GATE FAILED",
		"| security | PASSED |",
		"critical_count",
		"B608",
		"coverage.percent | 91.50",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown sem %q:\n%s", want, md)
		}
	}
	// Pipe na mensagem precisa ser escapado para não quebrar a tabela.
	if !strings.Contains(md, "\\|") {
		t.Error("pipe da mensagem não escapado no markdown")
	}
}

func TestGenerate_SemFindings(t *testing.T) {
	outDir := t.TempDir()
	rep := model.Report{Target: "./app", Metrics: map[string]float64{}}

	if err := Generate(outDir, rep, model.Verdict{Passed: true}); err != nil {
		t.Fatal(err)
	}
	md, err := os.ReadFile(filepath.Join(outDir, "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "Nenhum finding") {
		t.Error("markdown deveria indicar ausência de findings")
	}
	if !strings.Contains(string(md), "GATE PASSED") {
		t.Error("veredito aprovado ausente do markdown")
	}
}
