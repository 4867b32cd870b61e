package classify

import "strings"

// Default field weight for paths no rule matches.
const defaultFieldWeight = 1.0

// WeightRule binds an importance weight to field paths containing one of its
// tokens. Rules are evaluated in order; the first match wins.
type WeightRule struct {
	// Name identifies the rule in configuration and logs.
	Name string
	// Tokens are matched case-insensitively as substrings of the field path.
	Tokens []string
	// Weight is the importance assigned to matching fields.
	Weight float64
}

// DefaultWeightRules returns the built-in weighting: identity fields weigh
// most, contact and count/amount fields next, everything else default.
func DefaultWeightRules() []WeightRule {
	return []WeightRule{
		{Name: "identity", Tokens: []string{"nom", "name", "id", "matricule"}, Weight: 2.0},
		{Name: "contact", Tokens: []string{"addresse", "address", "tel", "email"}, Weight: 1.5},
		{Name: "count", Tokens: []string{"nombre", "nbre", "count", "montant", "amount"}, Weight: 1.5},
	}
}

// Weighter assigns an importance weight to a field from its path.
type Weighter struct {
	rules         []WeightRule
	defaultWeight float64
}

// WeighterOption applies a configuration option to the Weighter.
type WeighterOption func(*Weighter)

// WithWeightRules replaces the rule list. Order is precedence.
func WithWeightRules(rules []WeightRule) WeighterOption {
	return func(w *Weighter) {
		if rules != nil {
			w.rules = rules
		}
	}
}

// WithDefaultWeight sets the weight for fields no rule matches.
func WithDefaultWeight(weight float64) WeighterOption {
	return func(w *Weighter) {
		if weight > 0 {
			w.defaultWeight = weight
		}
	}
}

// NewWeighter creates a Weighter with the default rules.
func NewWeighter(opts ...WeighterOption) *Weighter {
	w := &Weighter{
		rules:         DefaultWeightRules(),
		defaultWeight: defaultFieldWeight,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Weight returns the importance weight for the field path.
func (w *Weighter) Weight(fieldPath string) float64 {
	lower := strings.ToLower(fieldPath)
	for _, rule := range w.rules {
		for _, token := range rule.Tokens {
			if token != "" && strings.Contains(lower, strings.ToLower(token)) {
				return rule.Weight
			}
		}
	}
	return w.defaultWeight
}
