package adapters

import (
	"math"
	"testing"

	"github.com/Sena-ops/pygate/internal/model"
)

const radonSample = `{
  "app/simple.py": [
    {"type": "function", "rank": "A", "complexity": 2, "name": "ok", "lineno": 1, "endline": 4}
  ],
  "app/gnarly.py": [
    {"type": "function", "rank": "D", "complexity": 25, "name": "mess", "lineno": 10, "endline": 80},
    {"type": "method", "rank": "F", "complexity": 45, "name": "worse", "lineno": 90, "endline": 200}
  ]
}`

func TestParseRadonBytes(t *testing.T) {
	findings, metrics, err := ParseRadonBytes([]byte(radonSample))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	// rank A não gera finding; D e F sim
	if len(findings) != 2 {
		t.Fatalf("esperado 2 findings, obtido %d", len(findings))
	}
	if findings[0].Severity != model.SevMedium {
		t.Errorf("rank D deve virar MEDIUM, obtido %s", findings[0].Severity)
	}
	if findings[1].Severity != model.SevCritical {
		t.Errorf("rank F deve virar CRITICAL, obtido %s", findings[1].Severity)
	}

	avg := metrics["complexity.average"]
	want := (2.0 + 25.0 + 45.0) / 3.0
	if math.Abs(avg-want) > 1e-9 {
		t.Errorf("esperado média %.2f, obtido %.2f", want, avg)
	}
	if metrics["complexity.max_rank"] != 6 { // F
		t.Errorf("esperado max_rank 6 (F), obtido %.0f", metrics["complexity.max_rank"])
	}
}

func TestParseRadonBytes_SemBlocos(t *testing.T) {
	findings, metrics, err := ParseRadonBytes([]byte(`{}`))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("esperado 0 findings, obtido %d", len(findings))
	}
	// Sem blocos não há média: métrica fica desconhecida, não zero.
	if metrics != nil {
		t.Errorf("esperado métricas ausentes, obtido %v", metrics)
	}
}

func TestParseRadonBytes_ErroDeArquivo(t *testing.T) {
	raw := `{"broken.py": {"error": "invalid syntax"}}`
	if _, _, err := ParseRadonBytes([]byte(raw)); err == nil {
		t.Error("esperado erro quando o radon reporta falha de parse")
	}
}
