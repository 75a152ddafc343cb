package sarif

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/Sena-ops/pygate/internal/model"
)

func TestExport(t *testing.T) {
	findings := []model.Finding{
		{
			ToolName: "bandit", RuleID: "B608", Severity: model.SevCritical,
			Message: "SQL injection", FilePath: "./app/db.py", StartLine: 42,
		},
		{
			ToolName: "ruff", RuleID: "E501", Severity: model.SevLow,
			Message: "linha longa", FilePath: "app/main.py", StartLine: 10, EndLine: 10,
		},
		{
			ToolName: "pygate", RuleID: "tooling-failure", Severity: model.SevHigh,
			Message: "falha de execução de mutmut", FilePath: "", StartLine: 1,
		},
	}

	outDir := t.TempDir()
	path, err := Export(findings, outDir, "report", "0.1.0")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var log Log
	if err := json.Unmarshal(data, &log); err != nil {
		t.Fatalf("sarif gerado não é JSON válido: %v", err)
	}

	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("estrutura errada: version=%s runs=%d", log.Version, len(log.Runs))
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "pygate" || run.Tool.Driver.Version != "0.1.0" {
		t.Errorf("driver errado: %+v", run.Tool.Driver)
	}
	if len(run.Results) != 3 {
		t.Fatalf("esperado 3 results, obtido %d", len(run.Results))
	}

	first := run.Results[0]
	if first.RuleID != "bandit/B608" {
		t.Errorf("ruleId deve levar a ferramenta como prefixo, obtido %s", first.RuleID)
	}
	if first.Level != "error" {
		t.Errorf("CRITICAL deve virar error, obtido %s", first.Level)
	}
	if got := first.Locations[0].PhysicalLocation.ArtifactLocation.URI; got != "app/db.py" {
		t.Errorf("URI deve perder o prefixo ./, obtido %s", got)
	}

	second := run.Results[1]
	if second.Level != "note" {
		t.Errorf("LOW deve virar note, obtido %s", second.Level)
	}

	third := run.Results[2]
	if got := third.Locations[0].PhysicalLocation.ArtifactLocation.URI; got != "UNKNOWN" {
		t.Errorf("finding sem arquivo deve usar UNKNOWN, obtido %s", got)
	}
}
