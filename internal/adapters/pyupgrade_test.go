package adapters

import (
	"testing"

	"github.com/Sena-ops/pygate/internal/model"
)

func TestParsePyupgradeBytes(t *testing.T) {
	raw := "Rewriting app/old.py\nRewriting app/legacy.py\n"
	findings, metrics, err := ParsePyupgradeBytes([]byte(raw))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("esperado 2 findings, obtido %d", len(findings))
	}
	if findings[0].Dimension != model.DimModernization {
		t.Errorf("esperado modernization, obtido %s", findings[0].Dimension)
	}
	if metrics["modernization.rewritten"] != 2 {
		t.Errorf("esperado rewritten 2, obtido %.0f", metrics["modernization.rewritten"])
	}
}

func TestParsePyupgradeBytes_NadaReescrito(t *testing.T) {
	findings, metrics, err := ParsePyupgradeBytes(nil)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("esperado 0 findings, obtido %d", len(findings))
	}
	// Modernização medida e zerada é diferente de não medida.
	if v, ok := metrics["modernization.rewritten"]; !ok || v != 0 {
		t.Errorf("esperado métrica presente e zerada, obtido %v", metrics)
	}
}
