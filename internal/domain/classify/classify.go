// Package classify assigns an error category and score to each gold/predicted
// field pair, and an importance weight to each field path.
package classify

import (
	"github.com/okian/veritas/internal/domain/normalize"
	"github.com/okian/veritas/internal/domain/similarity"
)

// Category is the severity bucket for a field's error. Categories are
// mutually exclusive and strictly ordered by severity.
type Category string

// The four categories, from best to worst.
const (
	Perfect  Category = "perfect"
	Minor    Category = "minor"
	Semantic Category = "semantic"
	Critical Category = "critical"
)

// Categories lists all categories in severity order, worst last.
func Categories() []Category {
	return []Category{Perfect, Minor, Semantic, Critical}
}

// Score returns the fixed numeric score attached to the category.
func (c Category) Score() float64 {
	switch c {
	case Perfect:
		return 1.0
	case Minor:
		return 0.8
	case Semantic:
		return 0.5
	default:
		return 0.0
	}
}

// Default similarity thresholds for the minor and semantic buckets.
const (
	defaultMinorThreshold    = 0.9
	defaultSemanticThreshold = 0.5
)

// Classifier decides the category of a gold/predicted pair.
type Classifier struct {
	norm              *normalize.Normalizer
	minorThreshold    float64
	semanticThreshold float64
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithNormalizer sets the normalizer shared with the rest of the pipeline.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(c *Classifier) {
		if n != nil {
			c.norm = n
		}
	}
}

// WithThresholds sets the similarity cutoffs for the minor and semantic
// categories. Values outside (0, 1] or out of order are ignored.
func WithThresholds(minor, semantic float64) Option {
	return func(c *Classifier) {
		if minor > semantic && semantic > 0 && minor <= 1 {
			c.minorThreshold = minor
			c.semanticThreshold = semantic
		}
	}
}

// New creates a Classifier with default thresholds and normalizer.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		norm:              normalize.New(),
		minorThreshold:    defaultMinorThreshold,
		semanticThreshold: defaultSemanticThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify is total: any two scalars and any field path yield a category and
// its score. Null handling comes first, then exact match after
// field-semantic normalization, then the similarity thresholds on the
// generically normalized raw values.
func (c *Classifier) Classify(gold, pred any, fieldPath string) (Category, float64) {
	goldNull := c.norm.IsNull(gold)
	predNull := c.norm.IsNull(pred)
	if goldNull && predNull {
		return Perfect, Perfect.Score()
	}
	if goldNull != predNull {
		return Critical, Critical.Score()
	}

	// Exact match after field normalization catches formatting noise
	// (punctuation, casing, digit-only reformatting) cheaply.
	if c.norm.Field(fieldPath, gold) == c.norm.Field(fieldPath, pred) {
		return Perfect, Perfect.Score()
	}

	// Similarity on the raw values catches partial recognition errors that
	// the field normalization would obscure.
	sim := similarity.Ratio(c.norm.Value(gold), c.norm.Value(pred))
	switch {
	case sim >= c.minorThreshold:
		return Minor, Minor.Score()
	case sim >= c.semanticThreshold:
		return Semantic, Semantic.Score()
	default:
		return Critical, Critical.Score()
	}
}
