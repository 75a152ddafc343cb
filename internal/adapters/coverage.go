package adapters

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Sena-ops/pygate/internal/model"
)

type coverageJSON struct {
	Files map[string]struct {
		Summary struct {
			PercentCovered float64 `json:"percent_covered"`
			MissingLines   int     `json:"missing_lines"`
			NumStatements  int     `json:"num_statements"`
		} `json:"summary"`
		MissingLines []int `json:"missing_lines"`
	} `json:"files"`
	Totals *struct {
		PercentCovered float64 `json:"percent_covered"`
		NumStatements  int     `json:"num_statements"`
	} `json:"totals"`
}

// ParseCoverageBytes converte o JSON do coverage.py. A métrica
// coverage.percent vem da linha de totais do próprio relatório, nunca de
// contagem de findings; arquivos abaixo de 100% viram findings informativos.
func ParseCoverageBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	var doc coverageJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, err
	}
	if doc.Totals == nil {
		return nil, nil, fmt.Errorf("relatório sem bloco de totais")
	}

	files := make([]string, 0, len(doc.Files))
	for f := range doc.Files {
		files = append(files, f)
	}
	sort.Strings(files)

	var out []model.Finding
	for _, file := range files {
		fc := doc.Files[file]
		if fc.Summary.NumStatements == 0 || fc.Summary.PercentCovered >= 100 {
			continue
		}
		start, end := 1, 0
		if len(fc.MissingLines) > 0 {
			start = fc.MissingLines[0]
			end = fc.MissingLines[len(fc.MissingLines)-1]
		}
		out = append(out, model.Finding{
			ToolName:  "coverage",
			Dimension: model.DimCoverage,
			RuleID:    "uncovered-lines",
			Severity:  coverageSeverity(fc.Summary.PercentCovered),
			Message:   fmt.Sprintf("cobertura %.1f%% (%d linhas sem teste)", fc.Summary.PercentCovered, fc.Summary.MissingLines),
			FilePath:  cleanPath(file),
			StartLine: safeLine(start),
			EndLine:   end,
		})
	}

	metrics := map[string]float64{
		"coverage.percent": doc.Totals.PercentCovered,
	}
	return out, metrics, nil
}

func coverageSeverity(percent float64) model.Severity {
	switch {
	case percent < 50:
		return model.SevHigh
	case percent < 80:
		return model.SevMedium
	default:
		return model.SevLow
	}
}
