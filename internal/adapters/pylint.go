package adapters

import (
	"encoding/json"
	"strings"

	"github.com/Sena-ops/pygate/internal/model"
)

type pylintJSON []struct {
	Type      string `json:"type"` // convention|refactor|warning|error|fatal
	Path      string `json:"path"`
	Line      int    `json:"line"`
	EndLine   *int   `json:"endLine"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
	MessageID string `json:"message-id"`
}

// ParsePylintBytes converte o JSON do pylint. R0801 (duplicate-code) vai para
// a dimensão duplication; símbolos unused-* vão para dead-code.
func ParsePylintBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	var doc pylintJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, err
	}

	out := make([]model.Finding, 0, len(doc))
	for _, m := range doc {
		endLine := 0
		if m.EndLine != nil {
			endLine = safeLine(*m.EndLine)
		}
		out = append(out, model.Finding{
			ToolName:  "pylint",
			Dimension: pylintDimension(m.MessageID, m.Symbol),
			RuleID:    m.MessageID,
			RuleName:  m.Symbol,
			Severity:  pylintSeverity(m.Type),
			Message:   firstNonEmpty(m.Message, m.Symbol),
			FilePath:  cleanPath(m.Path),
			StartLine: safeLine(m.Line),
			EndLine:   endLine,
		})
	}
	return out, nil, nil
}

func pylintDimension(id, symbol string) model.Dimension {
	if id == "R0801" {
		return model.DimDuplication
	}
	if strings.HasPrefix(symbol, "unused-") {
		return model.DimDeadCode
	}
	return model.DimStyle
}

func pylintSeverity(t string) model.Severity {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "fatal":
		return model.SevCritical
	case "error":
		return model.SevHigh
	case "warning":
		return model.SevMedium
	default: // convention, refactor, info
		return model.SevLow
	}
}
