package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/Sena-ops/pygate/internal/model"
	"github.com/Sena-ops/pygate/internal/scanner"
)

// Aggregate funde os resultados de todas as ferramentas num Report imutável:
// findings deduplicados e ordenados, métricas das ferramentas mais contagens
// por dimensão. Só dimensões efetivamente medidas ganham contagens — dimensão
// sem ferramenta executada fica sem métrica (desconhecida para o gate).
func Aggregate(target string, startedAt, finishedAt time.Time, stages []model.StageResult, results []scanner.Result, measured map[model.Dimension]bool) model.Report {
	// Ordem de entrada estável para desempate determinístico na deduplicação.
	sorted := make([]scanner.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tool < sorted[j].Tool })

	unique := make(map[string]model.Finding)
	var keys []string
	for _, res := range sorted {
		for _, f := range res.Findings {
			key := dedupeKey(f)
			prev, exists := unique[key]
			if !exists {
				unique[key] = f
				keys = append(keys, key)
				continue
			}
			// Mesmo issue reportado por mais de uma ferramenta: fica a
			// instância de maior severidade, registrando a redundância.
			if f.Severity.Rank() > prev.Severity.Rank() {
				f.ReportedBy = append(append([]string{}, prev.ReportedBy...), prev.ToolName)
				unique[key] = f
			} else {
				prev.ReportedBy = append(prev.ReportedBy, f.ToolName)
				unique[key] = prev
			}
		}
	}

	findings := make([]model.Finding, 0, len(unique))
	for _, k := range keys {
		findings = append(findings, unique[k])
	}
	sortFindings(findings)

	metrics := make(map[string]float64)
	for _, res := range sorted {
		for k, v := range res.Metrics {
			metrics[k] = v
		}
	}
	countByDimension(metrics, findings, measured)

	return model.Report{
		Target:     target,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Findings:   findings,
		Metrics:    metrics,
		Stages:     stages,
	}
}

func dedupeKey(f model.Finding) string {
	return fmt.Sprintf("%s|%s|%d|%s", f.Dimension, f.FilePath, f.StartLine, f.RuleID)
}

// sortFindings ordena por severidade desc, dimensão, arquivo, linha e regra —
// saída determinística independente da ordem de término das ferramentas.
func sortFindings(fs []model.Finding) {
	sort.Slice(fs, func(i, j int) bool {
		fi, fj := fs[i], fs[j]
		if ri, rj := fi.Severity.Rank(), fj.Severity.Rank(); ri != rj {
			return ri > rj
		}
		if fi.Dimension != fj.Dimension {
			return fi.Dimension < fj.Dimension
		}
		if fi.FilePath != fj.FilePath {
			return fi.FilePath < fj.FilePath
		}
		if fi.StartLine != fj.StartLine {
			return fi.StartLine < fj.StartLine
		}
		return fi.RuleID < fj.RuleID
	})
}

func countByDimension(metrics map[string]float64, findings []model.Finding, measured map[model.Dimension]bool) {
	for dim := range measured {
		metrics[string(dim)+".count"] = 0
		metrics[string(dim)+".critical_count"] = 0
		metrics[string(dim)+".high_count"] = 0
		metrics[string(dim)+".medium_count"] = 0
		metrics[string(dim)+".low_count"] = 0
	}
	for _, f := range findings {
		prefix := string(f.Dimension)
		metrics[prefix+".count"]++
		switch f.Severity {
		case model.SevCritical:
			metrics[prefix+".critical_count"]++
		case model.SevHigh:
			metrics[prefix+".high_count"]++
		case model.SevMedium:
			metrics[prefix+".medium_count"]++
		case model.SevLow:
			metrics[prefix+".low_count"]++
		}
	}
}
