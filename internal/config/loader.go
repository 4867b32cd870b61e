package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VERITAS_CONFIG is set
//  3. env (prefix VERITAS_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("VERITAS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: VERITAS_ADDR, VERITAS_MAX_REPORT_LIMIT, ...
	// Map env keys like VERITAS_DB_PATH -> db_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("VERITAS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "veritas_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxReportLimit < 1:
		return fmt.Errorf("%w: max_report_limit must be positive", ErrInvalidConfig)
	case c.MinorThreshold <= c.SemanticThreshold:
		return fmt.Errorf("%w: minor_threshold must exceed semantic_threshold", ErrInvalidConfig)
	case c.SemanticThreshold <= 0 || c.MinorThreshold > 1:
		return fmt.Errorf("%w: thresholds must lie in (0, 1]", ErrInvalidConfig)
	case c.DefaultWeight <= 0:
		return fmt.Errorf("%w: default_weight must be positive", ErrInvalidConfig)
	}
	for _, rule := range c.WeightRules {
		if rule.Weight <= 0 {
			return fmt.Errorf("%w: weight rule %q must carry a positive weight", ErrInvalidConfig, rule.Name)
		}
	}
	return nil
}
