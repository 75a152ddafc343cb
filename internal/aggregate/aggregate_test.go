package aggregate

import (
	"reflect"
	"testing"
	"time"

	"github.com/Sena-ops/pygate/internal/model"
	"github.com/Sena-ops/pygate/internal/scanner"
)

func TestAggregate_DeduplicaMantendoMaiorSeveridade(t *testing.T) {
	// bandit e ruff reportam o mesmo issue (dimensão, arquivo, linha, regra
	// equivalente) com severidades diferentes.
	fromRuff := scanner.Result{
		Tool:      "ruff",
		Dimension: model.DimStyle,
		Findings: []model.Finding{{
			ToolName: "ruff", Dimension: model.DimSecurity, RuleID: "S608",
			Severity: model.SevHigh, FilePath: "app/db.py", StartLine: 42,
			Message: "SQL injection",
		}},
	}
	fromBandit := scanner.Result{
		Tool:      "bandit",
		Dimension: model.DimSecurity,
		Findings: []model.Finding{{
			ToolName: "bandit", Dimension: model.DimSecurity, RuleID: "S608",
			Severity: model.SevCritical, FilePath: "app/db.py", StartLine: 42,
			Message: "SQL injection",
		}},
	}

	measured := map[model.Dimension]bool{model.DimSecurity: true}
	rep := Aggregate("app", time.Now(), time.Now(), nil,
		[]scanner.Result{fromRuff, fromBandit}, measured)

	if len(rep.Findings) != 1 {
		t.Fatalf("esperado 1 finding após dedup, obtido %d", len(rep.Findings))
	}
	f := rep.Findings[0]
	if f.Severity != model.SevCritical {
		t.Errorf("esperado manter CRITICAL, obtido %s", f.Severity)
	}
	if f.ToolName != "bandit" {
		t.Errorf("esperado instância do bandit, obtido %s", f.ToolName)
	}
	if !reflect.DeepEqual(f.ReportedBy, []string{"ruff"}) {
		t.Errorf("redundância não registrada: %v", f.ReportedBy)
	}
	if rep.Metrics["security.critical_count"] != 1 {
		t.Errorf("esperado critical_count 1, obtido %.0f", rep.Metrics["security.critical_count"])
	}
}

func TestAggregate_OrdenacaoDeterministica(t *testing.T) {
	mk := func(sev model.Severity, dim model.Dimension, file, rule string, line int) model.Finding {
		return model.Finding{ToolName: "x", Dimension: dim, RuleID: rule,
			Severity: sev, FilePath: file, StartLine: line}
	}
	results := []scanner.Result{{
		Tool: "x",
		Findings: []model.Finding{
			mk(model.SevLow, model.DimStyle, "b.py", "E501", 3),
			mk(model.SevCritical, model.DimSecurity, "a.py", "B608", 10),
			mk(model.SevLow, model.DimStyle, "a.py", "E501", 3),
			mk(model.SevLow, model.DimStyle, "a.py", "E101", 3),
			mk(model.SevHigh, model.DimSecurity, "z.py", "B102", 1),
		},
	}}

	rep := Aggregate("app", time.Time{}, time.Time{}, nil, results, nil)

	got := make([]string, 0, len(rep.Findings))
	for _, f := range rep.Findings {
		got = append(got, f.FilePath+"/"+f.RuleID)
	}
	want := []string{"a.py/B608", "z.py/B102", "a.py/E101", "a.py/E501", "b.py/E501"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ordem errada:\n esperado %v\n obtido   %v", want, got)
	}
}

func TestAggregate_Idempotente(t *testing.T) {
	results := []scanner.Result{{
		Tool:    "radon",
		Metrics: map[string]float64{"complexity.average": 4.2},
		Findings: []model.Finding{{
			ToolName: "radon", Dimension: model.DimComplexity, RuleID: "CC-D",
			Severity: model.SevMedium, FilePath: "a.py", StartLine: 10,
		}},
	}}
	measured := map[model.Dimension]bool{model.DimComplexity: true}

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r1 := Aggregate("app", ts, ts, nil, results, measured)
	r2 := Aggregate("app", ts, ts, nil, results, measured)
	if !reflect.DeepEqual(r1, r2) {
		t.Error("mesmas entradas devem produzir Reports iguais")
	}
}

func TestAggregate_DimensaoMedidaSemFindings(t *testing.T) {
	// Ferramenta rodou e não achou nada: contagem zero, não desconhecida.
	measured := map[model.Dimension]bool{model.DimSecurity: true}
	rep := Aggregate("app", time.Time{}, time.Time{}, nil,
		[]scanner.Result{{Tool: "bandit"}}, measured)

	v, ok := rep.Metric("security.critical_count")
	if !ok {
		t.Fatal("dimensão medida deve ter contagens presentes")
	}
	if v != 0 {
		t.Errorf("esperado 0, obtido %.0f", v)
	}
	if _, ok := rep.Metric("coverage.percent"); ok {
		t.Error("dimensão não medida não deve ter métrica")
	}
}
