package model

// Violation descreve uma métrica fora do limite configurado.
type Violation struct {
	Dimension  Dimension `json:"dimension"`
	Metric     string    `json:"metric"`
	Comparator string    `json:"comparator"`
	Actual     string    `json:"actual"` // "unknown" quando a métrica não foi medida
	Limit      string    `json:"limit"`
	Unknown    bool      `json:"unknown,omitempty"`
}

// Verdict é função pura de (Report, thresholds): mesmo par de entradas,
// mesmo resultado. Nunca é persistido separado do seu Report.
type Verdict struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
}
