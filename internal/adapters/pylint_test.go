package adapters

import (
	"testing"

	"github.com/Sena-ops/pygate/internal/model"
)

const pylintSample = `[
  {
    "type": "error",
    "path": "app/main.py",
    "line": 15,
    "endLine": 15,
    "symbol": "undefined-variable",
    "message": "Undefined variable 'foo'",
    "message-id": "E0602"
  },
  {
    "type": "refactor",
    "path": "app/a.py",
    "line": 1,
    "endLine": null,
    "symbol": "duplicate-code",
    "message": "Similar lines in 2 files",
    "message-id": "R0801"
  },
  {
    "type": "warning",
    "path": "app/b.py",
    "line": 3,
    "endLine": 3,
    "symbol": "unused-import",
    "message": "Unused import sys",
    "message-id": "W0611"
  }
]`

func TestParsePylintBytes(t *testing.T) {
	findings, _, err := ParsePylintBytes([]byte(pylintSample))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 3 {
		t.Fatalf("esperado 3 findings, obtido %d", len(findings))
	}

	if findings[0].Severity != model.SevHigh {
		t.Errorf("error deve virar HIGH, obtido %s", findings[0].Severity)
	}
	if findings[0].Dimension != model.DimStyle {
		t.Errorf("esperado style, obtido %s", findings[0].Dimension)
	}

	// R0801 é a regra de código duplicado
	if findings[1].Dimension != model.DimDuplication {
		t.Errorf("R0801 deve virar duplication, obtido %s", findings[1].Dimension)
	}

	// unused-* vai para dead-code
	if findings[2].Dimension != model.DimDeadCode {
		t.Errorf("unused-import deve virar dead-code, obtido %s", findings[2].Dimension)
	}
}

func TestParsePylintBytes_MensagemVazia(t *testing.T) {
	// Saídas truncadas às vezes vêm sem message; o símbolo ainda identifica.
	sample := `[{"type": "warning", "path": "app/c.py", "line": 7,
	  "symbol": "unused-variable", "message": "", "message-id": "W0612"}]`

	findings, _, err := ParsePylintBytes([]byte(sample))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(findings))
	}
	if findings[0].Message != "unused-variable" {
		t.Errorf("esperado fallback para o símbolo, obtido %q", findings[0].Message)
	}
}
