package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Documents struct {
		CallGraph   string `yaml:"call_graph"`
		SymbolIndex string `yaml:"symbol_index"`
	} `yaml:"documents"`
	Output struct {
		Report string `yaml:"report"`
		DB     string `yaml:"db"`
	} `yaml:"output"`
	Checks struct {
		ResultTypeMatch string `yaml:"result_type_match"` // "exact" (default)
	} `yaml:"checks"`
	// Role bit overrides for the symbol index, e.g. Definition: 1.
	// Empty means the producing tool's default convention.
	Roles map[string]int `yaml:"roles"`
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if p := os.Getenv("GRAPHCHECK_CALL_GRAPH"); p != "" {
		cfg.Documents.CallGraph = p
	}
	if p := os.Getenv("GRAPHCHECK_SYMBOL_INDEX"); p != "" {
		cfg.Documents.SymbolIndex = p
	}
	if p := os.Getenv("GRAPHCHECK_DB"); p != "" {
		cfg.Output.DB = p
	}

	if cfg.Checks.ResultTypeMatch == "" {
		cfg.Checks.ResultTypeMatch = "exact"
	}

	return &cfg, nil
}
