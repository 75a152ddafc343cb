package adapters

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Sena-ops/pygate/internal/model"
)

// Linha de estatísticas do mutmut, ex:
//
//	248/248  🎉 240  ⏰ 0  🤔 0  🙁 8  🔇 0
var mutmutStats = regexp.MustCompile(`(\d+)/(\d+)\s+🎉 (\d+)\s+⏰ (\d+)\s+🤔 (\d+)\s+🙁 (\d+)\s+🔇 (\d+)`)

// ParseMutmutBytes extrai o mutation score da última linha de estatísticas.
// Adapter só de métrica: mutantes sobreviventes aparecem no score, não como
// findings individuais.
func ParseMutmutBytes(b []byte) ([]model.Finding, map[string]float64, error) {
	var last []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if m := mutmutStats.FindStringSubmatch(sc.Text()); m != nil {
			last = m
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if last == nil {
		return nil, nil, fmt.Errorf("linha de estatísticas do mutmut não encontrada")
	}

	total, _ := strconv.Atoi(last[2])
	killed, _ := strconv.Atoi(last[3])
	skipped, _ := strconv.Atoi(last[7])

	effective := total - skipped
	if effective <= 0 {
		return nil, nil, nil
	}
	metrics := map[string]float64{
		"coverage.mutation_score": float64(killed) / float64(effective) * 100,
	}
	return nil, metrics, nil
}
