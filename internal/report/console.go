package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sena-ops/pygate/internal/model"
)

var (
	passedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2ECC71"))
	failedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	sevStyles = map[model.Severity]lipgloss.Style{
		model.SevCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF2D55")),
		model.SevHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
		model.SevMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F39C12")),
		model.SevLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F1C40F")),
		model.SevInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
	}
)

// RenderConsole monta a visão humana do veredito: banner, estado por etapa e
// lista itemizada de violações — nunca um crash seco.
func RenderConsole(rep model.Report, verdict model.Verdict) string {
	var sb strings.Builder

	if verdict.Passed {
		sb.WriteString(passedStyle.Render("✔ GATE PASSED"))
	} else {
		sb.WriteString(failedStyle.Render("✘ GATE FAILED"))
	}
	sb.WriteString("\n\n")

	for _, st := range rep.Stages {
		line := fmt.Sprintf("  %-15s %s", st.Stage, st.State)
		if st.Reason != "" {
			line += dimStyle.Render("  (" + st.Reason + ")")
		}
		sb.WriteString(line + "\n")
	}

	if len(verdict.Violations) > 0 {
		sb.WriteString("\nViolações:\n")
		for _, v := range verdict.Violations {
			actual := v.Actual
			if v.Unknown {
				actual = dimStyle.Render("não medida")
			}
			sb.WriteString(fmt.Sprintf("  - %s.%s = %s (limite: %s %s)\n",
				v.Dimension, v.Metric, actual, v.Comparator, v.Limit))
		}
	}

	if len(rep.Findings) > 0 {
		sb.WriteString(fmt.Sprintf("\nFindings (%d):\n", len(rep.Findings)))
		limit := 20
		if len(rep.Findings) < limit {
			limit = len(rep.Findings)
		}
		for _, f := range rep.Findings[:limit] {
			sev := string(f.Severity)
			if style, ok := sevStyles[f.Severity]; ok {
				sev = style.Render(sev)
			}
			loc := f.FilePath
			if loc != "" {
				loc = fmt.Sprintf("%s:%d", f.FilePath, f.StartLine)
			}
			sb.WriteString(fmt.Sprintf("  [%s] %s %s — %s\n", sev, f.RuleID, loc, f.Message))
		}
		if len(rep.Findings) > limit {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  ...e mais %d em report.json\n", len(rep.Findings)-limit)))
		}
	}
	return sb.String()
}
