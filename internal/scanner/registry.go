package scanner

import (
	"fmt"
	"sort"

	"github.com/Sena-ops/pygate/internal/adapters"
	"github.com/Sena-ops/pygate/internal/model"
)

var tools = map[string]Tool{
	"bandit": {
		Name:      "bandit",
		Stage:     StageSecurity,
		Dimension: model.DimSecurity,
		Measures:  []model.Dimension{model.DimSecurity},
		Run:       RunBandit,
		Parse:     adapters.ParseBanditBytes,
	},
	"coverage": {
		Name:      "coverage",
		Stage:     StageTests,
		Dimension: model.DimCoverage,
		Measures:  []model.Dimension{model.DimCoverage},
		Run:       RunCoverage,
		Parse:     adapters.ParseCoverageBytes,
	},
	"mutmut": {
		Name:      "mutmut",
		Stage:     StageTests,
		Dimension: model.DimCoverage,
		Measures:  nil, // só contribui métrica (mutation score)
		// O mutmut muta os fontes enquanto roda a suíte: não pode dividir o
		// alvo com o pytest-cov em andamento.
		Serial: true,
		Run:    RunMutmut,
		Parse:  adapters.ParseMutmutBytes,
	},
	"ruff": {
		Name:      "ruff",
		Stage:     StageCodeHealth,
		Dimension: model.DimStyle,
		Measures:  []model.Dimension{model.DimStyle},
		Run:       RunRuff,
		Parse:     adapters.ParseRuffBytes,
	},
	"pylint": {
		Name:      "pylint",
		Stage:     StageCodeHealth,
		Dimension: model.DimStyle,
		Measures:  []model.Dimension{model.DimStyle, model.DimDuplication},
		Run:       RunPylint,
		Parse:     adapters.ParsePylintBytes,
	},
	"vulture": {
		Name:      "vulture",
		Stage:     StageCodeHealth,
		Dimension: model.DimDeadCode,
		Measures:  []model.Dimension{model.DimDeadCode},
		Run:       RunVulture,
		Parse:     adapters.ParseVultureBytes,
	},
	"radon": {
		Name:      "radon",
		Stage:     StageComplexity,
		Dimension: model.DimComplexity,
		Measures:  []model.Dimension{model.DimComplexity},
		Run:       RunRadon,
		Parse:     adapters.ParseRadonBytes,
	},
	"pyupgrade": {
		Name:      "pyupgrade",
		Stage:     StageModernization,
		Dimension: model.DimModernization,
		Measures:  []model.Dimension{model.DimModernization},
		Fixer:     true,
		Run:       RunPyupgrade,
		Parse:     adapters.ParsePyupgradeBytes,
	},
}

// Lookup devolve a ferramenta registrada pelo nome.
func Lookup(name string) (Tool, error) {
	t, ok := tools[name]
	if !ok {
		return Tool{}, fmt.Errorf("ferramenta '%s' não suportada", name)
	}
	return t, nil
}

// All devolve todas as ferramentas, em ordem estável de nome.
func All() []Tool {
	out := make([]Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByStage devolve as ferramentas de uma etapa. Se override não for vazio,
// restringe ao subconjunto pedido (erro se algum nome for desconhecido ou
// pertencer a outra etapa).
func ByStage(stage Stage, override []string) ([]Tool, error) {
	if len(override) > 0 {
		out := make([]Tool, 0, len(override))
		for _, name := range override {
			t, err := Lookup(name)
			if err != nil {
				return nil, err
			}
			if t.Stage != stage {
				return nil, fmt.Errorf("ferramenta '%s' pertence à etapa %s, não %s", name, t.Stage, stage)
			}
			out = append(out, t)
		}
		return out, nil
	}
	var out []Tool
	for _, t := range All() {
		if t.Stage == stage {
			out = append(out, t)
		}
	}
	return out, nil
}
