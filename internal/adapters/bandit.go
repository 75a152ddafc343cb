package adapters

import (
	"encoding/json"
	"strings"

	"github.com/Sena-ops/pygate/internal/model"
)

type banditJSON struct {
	Results []struct {
		TestID          string `json:"test_id"`
		TestName        string `json:"test_name"`
		Filename        string `json:"filename"`
		LineNumber      int    `json:"line_number"`
		EndColOffset    int    `json:"end_col_offset"`
		IssueText       string `json:"issue_text"`
		IssueSeverity   string `json:"issue_severity"`
		IssueConfidence string `json:"issue_confidence"`
		MoreInfo        string `json:"more_info"`
	} `json:"results"`
}

// ParseBanditBytes converte o JSON do bandit em findings de segurança.
func ParseBanditBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	var doc banditJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, err
	}

	out := make([]model.Finding, 0, len(doc.Results))
	for _, r := range doc.Results {
		out = append(out, model.Finding{
			ToolName:  "bandit",
			Dimension: model.DimSecurity,
			RuleID:    r.TestID,
			RuleName:  r.TestName,
			Severity:  banditSeverity(r.IssueSeverity, r.IssueConfidence),
			Message:   r.IssueText,
			FilePath:  cleanPath(r.Filename),
			StartLine: safeLine(r.LineNumber),
			HelpURI:   r.MoreInfo,
		})
	}
	return out, nil, nil
}

// banditSeverity normaliza severidade + confiança. HIGH com confiança HIGH
// vira CRITICAL (o bandit não tem nível próprio acima de HIGH).
func banditSeverity(sev, conf string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(sev)) {
	case "HIGH":
		if strings.ToUpper(strings.TrimSpace(conf)) == "HIGH" {
			return model.SevCritical
		}
		return model.SevHigh
	case "MEDIUM":
		return model.SevMedium
	case "LOW":
		return model.SevLow
	default:
		return model.SevInfo
	}
}
