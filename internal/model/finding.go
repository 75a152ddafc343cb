package model

type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
	SevInfo     Severity = "INFO"
)

// Rank devolve um peso numérico para ordenação (CRITICAL=5 ... INFO=1).
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 5
	case SevHigh:
		return 4
	case SevMedium:
		return 3
	case SevLow:
		return 2
	case SevInfo:
		return 1
	default:
		return 0
	}
}

// Dimension é o eixo de qualidade ao qual um Finding pertence.
type Dimension string

const (
	DimSecurity      Dimension = "security"
	DimCoverage      Dimension = "coverage"
	DimComplexity    Dimension = "complexity"
	DimStyle         Dimension = "style"
	DimDeadCode      Dimension = "dead-code"
	DimDuplication   Dimension = "duplication"
	DimModernization Dimension = "modernization"
)

type Finding struct {
	ToolName   string    `json:"tool"`      // "bandit" | "ruff" | "pylint" | ... | "pygate"
	Dimension  Dimension `json:"dimension"` // cada finding pertence a exatamente uma dimensão
	RuleID     string    `json:"rule_id"`   // id/regra da ferramenta (ex: "B608", "E501")
	RuleName   string    `json:"rule_name,omitempty"`
	Severity   Severity  `json:"severity"` // severidade normalizada
	Message    string    `json:"message"`
	FilePath   string    `json:"file"`                  // caminho relativo/normalizado
	StartLine  int       `json:"start_line"`            // 1-based
	EndLine    int       `json:"end_line,omitempty"`    // opcional (0 = sem fim)
	HelpURI    string    `json:"help_uri,omitempty"`    // link docs/regra (se disponível)
	ReportedBy []string  `json:"reported_by,omitempty"` // outras ferramentas que reportaram o mesmo issue
}
