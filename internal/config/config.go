package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// StageConfig configura uma etapa do pipeline (security, tests, ...).
type StageConfig struct {
	Enabled *bool    `yaml:"enabled"` // nil = habilitada
	Tools   []string `yaml:"tools"`   // sobrescreve o conjunto padrão de ferramentas
	Waive   bool     `yaml:"waive_prerequisites"`
}

type RunConfig struct {
	Parallelism         int                 `yaml:"parallelism"`
	RetryCount          int                 `yaml:"retry_count"`
	AbortOnFirstFailure bool                `yaml:"abort_on_first_failure"`
	TimeoutSeconds      int                 `yaml:"timeout_seconds"` // timeout por ferramenta
	Prerequisites       map[string][]string `yaml:"prerequisites"`   // etapa -> etapas que precisam PASSAR antes
	Fix                 bool                `yaml:"fix"`             // aplica fixers e reanalisa a etapa
}

type Config struct {
	Run    RunConfig              `yaml:"run"`
	Stages map[string]StageConfig `yaml:"stages"`

	// Thresholds no formato "dimensão.métrica": "comparador valor",
	// ex: coverage.percent: ">= 80", complexity.max_rank: "<= B".
	Thresholds map[string]string `yaml:"thresholds"`

	// Dimensões cuja ausência de métricas não reprova o gate (fail-closed
	// é o padrão: métrica desconhecida conta como violação).
	OptionalDimensions []string `yaml:"optional_dimensions"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	Reporting struct {
		OutDir string `yaml:"out_dir"`
	} `yaml:"reporting"`
}

func DefaultConfig() Config {
	var c Config
	c.Run.Parallelism = 2
	c.Run.RetryCount = 1
	c.Run.TimeoutSeconds = 300
	c.Run.Prerequisites = map[string][]string{
		"complexity": {"tests"},
	}
	c.Thresholds = map[string]string{
		"security.critical_count": "<= 0",
		"security.high_count":     "<= 0",
		"coverage.percent":        ">= 80",
		"complexity.average":      "<= 10",
		"complexity.max_rank":     "<= B",
	}
	c.Database.DSN = "./pygate.db"
	c.Reporting.OutDir = "./pygate_out"
	return c
}

// LoadConfig carrega o YAML (se existir) por cima dos padrões e aplica
// overrides de ambiente. Precedência final: flags > env > arquivo > padrão.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("ler config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if v := os.Getenv("PYGATE_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("PYGATE_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("PYGATE_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			c.Run.Parallelism = n
		}
	}
	return c, nil
}

// StageEnabled diz se uma etapa deve executar (habilitada por padrão).
func (c *Config) StageEnabled(stage string) bool {
	sc, ok := c.Stages[stage]
	if !ok || sc.Enabled == nil {
		return true
	}
	return *sc.Enabled
}

// StageWaived diz se a etapa dispensa seus pré-requisitos.
func (c *Config) StageWaived(stage string) bool {
	sc, ok := c.Stages[stage]
	return ok && sc.Waive
}

// DimensionOptional diz se a dimensão foi marcada como opcional.
func (c *Config) DimensionOptional(dim string) bool {
	for _, d := range c.OptionalDimensions {
		if d == dim {
			return true
		}
	}
	return false
}
