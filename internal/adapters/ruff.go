package adapters

import (
	"encoding/json"
	"strings"

	"github.com/Sena-ops/pygate/internal/model"
)

type ruffJSON []struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
	EndLocation struct {
		Row int `json:"row"`
	} `json:"end_location"`
	URL string `json:"url"`
}

// ParseRuffBytes converte o JSON do `ruff check`. A dimensão vem do prefixo
// da regra: S* (segurança), C9* (complexidade), F401/F811 (código morto),
// UP* (modernização); o resto é estilo.
func ParseRuffBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	var doc ruffJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, err
	}

	out := make([]model.Finding, 0, len(doc))
	for _, r := range doc {
		dim, sev := ruffClassify(r.Code)
		out = append(out, model.Finding{
			ToolName:  "ruff",
			Dimension: dim,
			RuleID:    r.Code,
			Severity:  sev,
			Message:   r.Message,
			FilePath:  cleanPath(r.Filename),
			StartLine: safeLine(r.Location.Row),
			EndLine:   safeLine(r.EndLocation.Row),
			HelpURI:   r.URL,
		})
	}
	return out, nil, nil
}

func ruffClassify(code string) (model.Dimension, model.Severity) {
	switch {
	case strings.HasPrefix(code, "S"):
		return model.DimSecurity, model.SevHigh
	case strings.HasPrefix(code, "C9"):
		return model.DimComplexity, model.SevMedium
	case code == "F401" || code == "F811" || code == "F841":
		return model.DimDeadCode, model.SevLow
	case strings.HasPrefix(code, "UP"):
		return model.DimModernization, model.SevInfo
	case strings.HasPrefix(code, "E") || strings.HasPrefix(code, "F"):
		return model.DimStyle, model.SevMedium
	default:
		return model.DimStyle, model.SevLow
	}
}
