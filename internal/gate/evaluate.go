package gate

import (
	"strconv"
	"strings"

	"github.com/Sena-ops/pygate/internal/config"
	"github.com/Sena-ops/pygate/internal/model"
)

// Evaluate reduz (Report, thresholds) a um Verdict. Função pura e
// independente de ordem: as chaves são avaliadas em ordem estável e nada é
// mutado — as mesmas entradas produzem sempre o mesmo veredito.
//
// Métrica ausente do Report é "desconhecida": conta como violação
// (fail-closed), a menos que a dimensão esteja marcada como opcional.
func Evaluate(rep *model.Report, thresholds config.ThresholdSet, optionalDim func(string) bool) model.Verdict {
	verdict := model.Verdict{Passed: true}

	for _, key := range thresholds.Keys() {
		limit := thresholds[key]
		dim, metric, _ := strings.Cut(key, ".")

		actual, ok := rep.Metric(key)
		if !ok {
			if optionalDim != nil && optionalDim(dim) {
				continue
			}
			verdict.Passed = false
			verdict.Violations = append(verdict.Violations, model.Violation{
				Dimension:  model.Dimension(dim),
				Metric:     metric,
				Comparator: limit.Comparator,
				Actual:     "unknown",
				Limit:      limit.Display,
				Unknown:    true,
			})
			continue
		}

		if satisfies(actual, limit) {
			continue
		}
		verdict.Passed = false
		verdict.Violations = append(verdict.Violations, model.Violation{
			Dimension:  model.Dimension(dim),
			Metric:     metric,
			Comparator: limit.Comparator,
			Actual:     formatValue(metric, actual),
			Limit:      limit.Display,
		})
	}
	return verdict
}

// satisfies: igualdade exata ao limite passa em >= e <= (fronteira inclusiva).
func satisfies(actual float64, limit config.Limit) bool {
	switch limit.Comparator {
	case ">=":
		return actual >= limit.Value
	case "<=":
		return actual <= limit.Value
	case "==":
		return actual == limit.Value
	default:
		return false
	}
}

func formatValue(metric string, v float64) string {
	if strings.HasSuffix(metric, "rank") {
		return config.RankLetter(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
