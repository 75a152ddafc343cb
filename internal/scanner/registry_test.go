package scanner

import (
	"testing"
)

func TestLookup(t *testing.T) {
	tool, err := Lookup("bandit")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if tool.Stage != StageSecurity || tool.Fixer {
		t.Errorf("registro do bandit errado: %+v", tool)
	}

	if _, err := Lookup("mypy"); err == nil {
		t.Fatal("ferramenta não registrada deve retornar erro")
	}
}

func TestByStage_ConjuntoPadrao(t *testing.T) {
	got, err := ByStage(StageCodeHealth, nil)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(got))
	for _, tool := range got {
		names = append(names, tool.Name)
	}
	want := []string{"pylint", "ruff", "vulture"}
	if len(names) != len(want) {
		t.Fatalf("esperado %v, obtido %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("esperado %v, obtido %v", want, names)
		}
	}
}

func TestByStage_Override(t *testing.T) {
	got, err := ByStage(StageCodeHealth, []string{"ruff"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "ruff" {
		t.Errorf("override não respeitado: %+v", got)
	}
}

func TestByStage_OverrideDeOutraEtapa(t *testing.T) {
	if _, err := ByStage(StageCodeHealth, []string{"bandit"}); err == nil {
		t.Fatal("ferramenta de outra etapa no override deve falhar")
	}
	if _, err := ByStage(StageCodeHealth, []string{"mypy"}); err == nil {
		t.Fatal("nome desconhecido no override deve falhar")
	}
}

func TestStageOrder(t *testing.T) {
	// A ordem de prioridade das etapas é fixa: problemas de segurança
	// aparecem antes de estilo, que aparece antes de modernização.
	want := []Stage{StageSecurity, StageTests, StageCodeHealth, StageComplexity, StageModernization}
	if len(StageOrder) != len(want) {
		t.Fatalf("esperado %d etapas, obtido %d", len(want), len(StageOrder))
	}
	for i := range want {
		if StageOrder[i] != want[i] {
			t.Fatalf("ordem errada: esperado %v, obtido %v", want, StageOrder)
		}
	}
	// Fixers só na etapa de modernização.
	for _, tool := range All() {
		if tool.Fixer && tool.Stage != StageModernization {
			t.Errorf("fixer %s fora da etapa de modernização", tool.Name)
		}
	}
}
