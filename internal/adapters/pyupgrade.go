package adapters

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/Sena-ops/pygate/internal/model"
)

// ParsePyupgradeBytes interpreta a saída do pyupgrade: uma linha
// "Rewriting <arquivo>" por arquivo modernizado. A métrica sai sempre,
// mesmo zerada — modernização medida é diferente de não medida.
func ParsePyupgradeBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	var out []model.Finding

	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		file, ok := strings.CutPrefix(line, "Rewriting ")
		if !ok {
			continue
		}
		out = append(out, model.Finding{
			ToolName:  "pyupgrade",
			Dimension: model.DimModernization,
			RuleID:    "outdated-syntax",
			Severity:  model.SevInfo,
			Message:   "sintaxe desatualizada reescrita pelo pyupgrade",
			FilePath:  cleanPath(file),
			StartLine: 1,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	metrics := map[string]float64{
		"modernization.rewritten": float64(len(out)),
	}
	return out, metrics, nil
}
