package adapters

import (
	"math"
	"testing"
)

func TestParseMutmutBytes(t *testing.T) {
	raw := "mutmut run\n248/248  🎉 240  ⏰ 0  🤔 0  🙁 8  🔇 0\n"
	findings, metrics, err := ParseMutmutBytes([]byte(raw))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("mutmut é adapter só de métrica, obtido %d findings", len(findings))
	}
	want := 240.0 / 248.0 * 100
	if math.Abs(metrics["coverage.mutation_score"]-want) > 1e-9 {
		t.Errorf("esperado mutation_score %.2f, obtido %.2f", want, metrics["coverage.mutation_score"])
	}
}

func TestParseMutmutBytes_ComSkipped(t *testing.T) {
	raw := "10/10  🎉 6  ⏰ 0  🤔 0  🙁 2  🔇 2\n"
	_, metrics, err := ParseMutmutBytes([]byte(raw))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	// score = mortos / (total - pulados)
	if metrics["coverage.mutation_score"] != 75.0 {
		t.Errorf("esperado 75.0, obtido %.2f", metrics["coverage.mutation_score"])
	}
}

func TestParseMutmutBytes_SemEstatisticas(t *testing.T) {
	if _, _, err := ParseMutmutBytes([]byte("saída qualquer\n")); err == nil {
		t.Error("esperado erro quando o mutmut não imprime estatísticas")
	}
}
