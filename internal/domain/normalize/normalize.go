// Package normalize canonicalizes field values for comparison, including
// null detection and field-semantic rules keyed by field-name tokens.
package normalize

import (
	"fmt"
	"strings"
)

// Default null aliases: string forms that count as "no value" after trimming
// and lower-casing.
var defaultNullAliases = []string{"null", "none", "-", "nan", ""}

// Rule is one field-semantic normalization step. Rules are evaluated in
// order; the first rule whose token matches the field path wins.
type Rule struct {
	// Name identifies the rule in configuration and logs.
	Name string
	// Tokens are matched case-insensitively as substrings of the field path.
	Tokens []string
	// Transform rewrites the generically normalized value.
	Transform func(value string) string
}

// DefaultRules returns the built-in field rules in precedence order:
// phone numbers, count/amount fields, then dates.
func DefaultRules() []Rule {
	return RulesFromTokens(
		[]string{"tel", "téléphone", "phone"},
		[]string{"nombre", "nbre", "count", "montant", "amount"},
		[]string{"date"},
	)
}

// RulesFromTokens builds the standard phone/count/date rule set over custom
// token lists, preserving the default precedence and transforms. Empty lists
// drop their rule.
func RulesFromTokens(phoneTokens, countTokens, dateTokens []string) []Rule {
	var rules []Rule
	if len(phoneTokens) > 0 {
		rules = append(rules, Rule{Name: "phone", Tokens: phoneTokens, Transform: digitsOnly})
	}
	if len(countTokens) > 0 {
		rules = append(rules, Rule{
			Name:   "count",
			Tokens: countTokens,
			Transform: func(value string) string {
				// Concatenated digit runs; fall back to the generic form
				// when the value carries no digits at all.
				if digits := digitsOnly(value); digits != "" {
					return digits
				}
				return value
			},
		})
	}
	if len(dateTokens) > 0 {
		rules = append(rules, Rule{Name: "date", Tokens: dateTokens, Transform: digitsOnly})
	}
	return rules
}

// Normalizer canonicalizes values. The zero value is not usable; construct
// with New.
type Normalizer struct {
	nullAliases map[string]struct{}
	rules       []Rule
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithNullAliases replaces the null-alias set.
func WithNullAliases(aliases []string) Option {
	return func(n *Normalizer) {
		if len(aliases) == 0 {
			return
		}
		n.nullAliases = make(map[string]struct{}, len(aliases))
		for _, alias := range aliases {
			n.nullAliases[strings.ToLower(strings.TrimSpace(alias))] = struct{}{}
		}
	}
}

// WithRules replaces the field-semantic rule list. Order is precedence.
func WithRules(rules []Rule) Option {
	return func(n *Normalizer) {
		if rules != nil {
			n.rules = rules
		}
	}
}

// New creates a Normalizer with the default null aliases and field rules.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{rules: DefaultRules()}
	WithNullAliases(defaultNullAliases)(n)

	for _, opt := range opts {
		opt(n)
	}
	return n
}

// IsNull reports whether value should be treated as absent: a language null,
// or a string that reduces to one of the null aliases.
func (n *Normalizer) IsNull(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		_, null := n.nullAliases[strings.ToLower(strings.TrimSpace(s))]
		return null
	}
	return false
}

// Value applies the generic string normalization: stringify, trim,
// lower-case, and map null aliases to the empty string.
func (n *Normalizer) Value(value any) string {
	if value == nil {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(stringify(value)))
	if _, null := n.nullAliases[s]; null {
		return ""
	}
	return s
}

// Field applies the first matching field-semantic rule to the generically
// normalized value. Without a match it returns the generic form.
func (n *Normalizer) Field(fieldPath string, value any) string {
	normalized := n.Value(value)
	lower := strings.ToLower(fieldPath)
	for _, rule := range n.rules {
		if containsAny(lower, rule.Tokens) {
			return rule.Transform(normalized)
		}
	}
	return normalized
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if token != "" && strings.Contains(s, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stringify renders a scalar the way it would appear in the source document.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
