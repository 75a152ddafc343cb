package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sena-ops/pygate/internal/model"
)

// Document é o registro legível por máquina de uma execução completa.
type Document struct {
	Report  model.Report  `json:"report"`
	Verdict model.Verdict `json:"verdict"`
}

// Generate escreve report.json e report.md no diretório de saída.
func Generate(outDir string, rep model.Report, verdict model.Verdict) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("criar diretório de saída: %w", err)
	}

	doc := Document{Report: rep, Verdict: verdict}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "report.json"), b, 0o644); err != nil {
		return fmt.Errorf("escrever report.json: %w", err)
	}

	md := generateMarkdown(rep, verdict)
	if err := os.WriteFile(filepath.Join(outDir, "report.md"), []byte(md), 0o644); err != nil {
		return fmt.Errorf("escrever report.md: %w", err)
	}
	return nil
}

func generateMarkdown(rep model.Report, verdict model.Verdict) string {
	var sb strings.Builder

	sb.WriteString("# pygate — Relatório do Quality Gate\n\n")
	sb.WriteString(fmt.Sprintf("**Alvo:** `%s`\n", rep.Target))
	sb.WriteString(fmt.Sprintf("**Início:** %s\n", rep.StartedAt.Format("2006-01-02 15:04:05 MST")))
	if verdict.Passed {
		sb.WriteString("**Veredito:** ✅ GATE PASSED\n\n")
	} else {
		sb.WriteString("**Veredito:** ❌ GATE FAILED\n\n")
	}

	sb.WriteString("## Etapas\n\n")
	sb.WriteString("| Etapa | Estado | Motivo |\n")
	sb.WriteString("| :--- | :--- | :--- |\n")
	for _, st := range rep.Stages {
		reason := strings.ReplaceAll(st.Reason, "|", "\\|")
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", st.Stage, st.State, reason))
	}
	sb.WriteString("\n")

	if len(verdict.Violations) > 0 {
		sb.WriteString("## Violações\n\n")
		sb.WriteString("| Dimensão | Métrica | Valor | Limite |\n")
		sb.WriteString("| :--- | :--- | :--- | :--- |\n")
		for _, v := range verdict.Violations {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s %s |\n",
				v.Dimension, v.Metric, v.Actual, v.Comparator, v.Limit))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Métricas\n\n")
	sb.WriteString("| Métrica | Valor |\n")
	sb.WriteString("| :--- | :--- |\n")
	keys := make([]string, 0, len(rep.Metrics))
	for k := range rep.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("| %s | %.2f |\n", k, rep.Metrics[k]))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("## Findings (%d)\n\n", len(rep.Findings)))
	if len(rep.Findings) == 0 {
		sb.WriteString("_Nenhum finding._\n")
		return sb.String()
	}
	sb.WriteString("| Sev | Dimensão | Regra | Arquivo | Linha | Mensagem |\n")
	sb.WriteString("| :--- | :--- | :--- | :--- | :--- | :--- |\n")
	limit := 50
	if len(rep.Findings) < limit {
		limit = len(rep.Findings)
	}
	for _, f := range rep.Findings[:limit] {
		msg := strings.ReplaceAll(f.Message, "|", "\\|")
		msg = strings.ReplaceAll(msg, "\n", " ")
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %s |\n",
			f.Severity, f.Dimension, f.RuleID, f.FilePath, f.StartLine, msg))
	}
	if len(rep.Findings) > limit {
		sb.WriteString(fmt.Sprintf("\n*...e mais %d findings em report.json*\n", len(rep.Findings)-limit))
	}
	return sb.String()
}
