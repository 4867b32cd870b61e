// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
//   - Field-vocabulary heuristics (weights, normalization tokens) live here as
//     ordered rule lists so new document schemas need no code changes.
//   - External errors must be wrapped via this package's error helpers.
package config

// WeightRule configures one field-weighting rule. Rules apply in order; the
// first token match wins.
type WeightRule struct {
	Name   string   `koanf:"name"`
	Tokens []string `koanf:"tokens"`
	Weight float64  `koanf:"weight"`
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatabasePath points at the sqlite report archive. Empty keeps reports
	// in memory only.
	DatabasePath string `koanf:"db_path"`

	// MaxReportLimit caps GET /reports?limit.
	MaxReportLimit int `koanf:"max_report_limit"`

	// StoreSize bounds the in-memory report store.
	StoreSize int `koanf:"store_size"`

	// MetadataPrefix marks field paths excluded from scoring.
	MetadataPrefix string `koanf:"metadata_prefix"`

	// MinorThreshold and SemanticThreshold are the similarity cutoffs for
	// the minor and semantic error categories.
	MinorThreshold    float64 `koanf:"minor_threshold"`
	SemanticThreshold float64 `koanf:"semantic_threshold"`

	// NullAliases are string forms treated as absent values.
	NullAliases []string `koanf:"null_aliases"`

	// PhoneTokens, CountTokens, and DateTokens drive field-semantic value
	// normalization, in that precedence order.
	PhoneTokens []string `koanf:"phone_tokens"`
	CountTokens []string `koanf:"count_tokens"`
	DateTokens  []string `koanf:"date_tokens"`

	// WeightRules assign field importance; DefaultWeight covers the rest.
	WeightRules   []WeightRule `koanf:"weight_rules"`
	DefaultWeight float64      `koanf:"default_weight"`
}

// New creates a Config with defaults matching the reference scoring rules.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		DatabasePath:      "",
		MaxReportLimit:    100,
		StoreSize:         1_000,
		MetadataPrefix:    "metadata",
		MinorThreshold:    0.9,
		SemanticThreshold: 0.5,
		NullAliases:       []string{"null", "none", "-", "nan", ""},
		PhoneTokens:       []string{"tel", "téléphone", "phone"},
		CountTokens:       []string{"nombre", "nbre", "count", "montant", "amount"},
		DateTokens:        []string{"date"},
		WeightRules: []WeightRule{
			{Name: "identity", Tokens: []string{"nom", "name", "id", "matricule"}, Weight: 2.0},
			{Name: "contact", Tokens: []string{"addresse", "address", "tel", "email"}, Weight: 1.5},
			{Name: "count", Tokens: []string{"nombre", "nbre", "count", "montant", "amount"}, Weight: 1.5},
		},
		DefaultWeight: 1.0,
	}
}
