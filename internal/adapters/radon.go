package adapters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Sena-ops/pygate/internal/model"
)

type radonBlock struct {
	Type       string `json:"type"` // function|method|class
	Rank       string `json:"rank"` // A..F
	Complexity int    `json:"complexity"`
	Name       string `json:"name"`
	Lineno     int    `json:"lineno"`
	Endline    int    `json:"endline"`
}

// ParseRadonBytes converte o JSON do `radon cc -j`. Blocos com rank C ou pior
// viram findings; as métricas complexity.average e complexity.max_rank são o
// resumo do relatório inteiro, inclusive blocos A/B sem finding.
func ParseRadonBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	// O valor por arquivo é uma lista de blocos ou um objeto {"error": ...}.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, err
	}

	files := make([]string, 0, len(doc))
	for f := range doc {
		files = append(files, f)
	}
	sort.Strings(files)

	var out []model.Finding
	var total, blocks, maxRank float64

	for _, file := range files {
		var fileBlocks []radonBlock
		if err := json.Unmarshal(doc[file], &fileBlocks); err != nil {
			var fileErr struct {
				Error string `json:"error"`
			}
			if e2 := json.Unmarshal(doc[file], &fileErr); e2 == nil && fileErr.Error != "" {
				return nil, nil, fmt.Errorf("radon falhou em %s: %s", file, fileErr.Error)
			}
			return nil, nil, err
		}

		for _, blk := range fileBlocks {
			rank := rankValue(blk.Rank)
			if rank == 0 {
				return nil, nil, fmt.Errorf("rank desconhecido %q em %s", blk.Rank, file)
			}
			total += float64(blk.Complexity)
			blocks++
			if rank > maxRank {
				maxRank = rank
			}
			if rank < 3 { // A e B não geram finding
				continue
			}
			out = append(out, model.Finding{
				ToolName:  "radon",
				Dimension: model.DimComplexity,
				RuleID:    "CC-" + strings.ToUpper(blk.Rank),
				RuleName:  blk.Name,
				Severity:  radonSeverity(rank),
				Message:   fmt.Sprintf("%s '%s' com complexidade ciclomática %d (rank %s)", blk.Type, blk.Name, blk.Complexity, strings.ToUpper(blk.Rank)),
				FilePath:  cleanPath(file),
				StartLine: safeLine(blk.Lineno),
				EndLine:   safeLine(blk.Endline),
			})
		}
	}

	if blocks == 0 {
		return out, nil, nil
	}
	metrics := map[string]float64{
		"complexity.average":  total / blocks,
		"complexity.max_rank": maxRank,
	}
	return out, metrics, nil
}

func rankValue(rank string) float64 {
	r := strings.ToUpper(strings.TrimSpace(rank))
	if len(r) != 1 || r[0] < 'A' || r[0] > 'F' {
		return 0
	}
	return float64(r[0]-'A') + 1
}

func radonSeverity(rank float64) model.Severity {
	switch {
	case rank >= 6: // F
		return model.SevCritical
	case rank >= 5: // E
		return model.SevHigh
	case rank >= 4: // D
		return model.SevMedium
	default: // C
		return model.SevLow
	}
}
