package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ThresholdConfigError indica configuração de limite malformada. É fatal:
// reprova a execução inteira antes de qualquer ferramenta rodar.
type ThresholdConfigError struct {
	Key    string
	Raw    string
	Reason string
}

func (e *ThresholdConfigError) Error() string {
	return fmt.Sprintf("threshold inválido %q (%s): %s", e.Key, e.Raw, e.Reason)
}

type Limit struct {
	Comparator string  // ">=", "<=", "=="
	Value      float64 // ranks de complexidade (A..F) viram 1..6
	Display    string  // valor original, para mensagens ("B", "80")
}

// ThresholdSet é o mapa imutável "dimensão.métrica" -> limite de uma execução.
type ThresholdSet map[string]Limit

// Keys devolve as chaves em ordem estável.
func (ts ThresholdSet) Keys() []string {
	keys := make([]string, 0, len(ts))
	for k := range ts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var knownDimensions = map[string]bool{
	"security": true, "coverage": true, "complexity": true,
	"style": true, "dead-code": true, "duplication": true, "modernization": true,
}

// BuildThresholds valida e compila os thresholds da configuração.
func (c *Config) BuildThresholds() (ThresholdSet, error) {
	ts := make(ThresholdSet, len(c.Thresholds))
	for key, raw := range c.Thresholds {
		dim, _, ok := strings.Cut(key, ".")
		if !ok || !knownDimensions[dim] {
			return nil, &ThresholdConfigError{Key: key, Raw: raw, Reason: "dimensão desconhecida"}
		}
		limit, err := ParseLimit(raw)
		if err != nil {
			return nil, &ThresholdConfigError{Key: key, Raw: raw, Reason: err.Error()}
		}
		ts[key] = limit
	}
	return ts, nil
}

// ParseLimit interpreta "comparador valor", ex: ">= 80", "<= B", "== 0".
func ParseLimit(raw string) (Limit, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) != 2 {
		return Limit{}, fmt.Errorf("esperado \"comparador valor\"")
	}
	op := fields[0]
	switch op {
	case ">=", "<=", "==":
	default:
		return Limit{}, fmt.Errorf("comparador desconhecido %q", op)
	}
	val, display := fields[1], fields[1]
	if rank, ok := ParseRank(val); ok {
		return Limit{Comparator: op, Value: rank, Display: display}, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Limit{}, fmt.Errorf("valor %q não é número nem rank A-F", val)
	}
	return Limit{Comparator: op, Value: f, Display: display}, nil
}

// ParseRank converte uma letra de rank do radon (A..F) em número (1..6).
func ParseRank(s string) (float64, bool) {
	if len(s) != 1 {
		return 0, false
	}
	ch := strings.ToUpper(s)[0]
	if ch < 'A' || ch > 'F' {
		return 0, false
	}
	return float64(ch-'A') + 1, true
}

// RankLetter é o inverso de ParseRank, para exibição.
func RankLetter(v float64) string {
	n := int(v)
	if n < 1 || n > 6 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return string(rune('A' + n - 1))
}
