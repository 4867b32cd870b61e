package evaluate

import (
	"math"
	"sort"

	"github.com/okian/veritas/internal/domain/classify"
	"github.com/okian/veritas/internal/domain/normalize"
	"github.com/okian/veritas/internal/domain/record"
)

// DefaultMetadataPrefix marks the reserved field paths excluded from
// scoring. They describe provenance, not document content.
const DefaultMetadataPrefix = "metadata"

const percent = 100.0

// Evaluator computes evaluation reports. All collaborators share one
// normalizer so null handling stays consistent across classification and
// aggregation.
type Evaluator struct {
	norm           *normalize.Normalizer
	classifier     *classify.Classifier
	weighter       *classify.Weighter
	metadataPrefix string
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithNormalizer sets the shared normalizer. The classifier must be built on
// the same normalizer; prefer WithClassifier alongside this option.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(e *Evaluator) {
		if n != nil {
			e.norm = n
		}
	}
}

// WithClassifier sets the error classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Evaluator) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithWeighter sets the field weighter.
func WithWeighter(w *classify.Weighter) Option {
	return func(e *Evaluator) {
		if w != nil {
			e.weighter = w
		}
	}
}

// WithMetadataPrefix overrides the reserved non-content prefix.
func WithMetadataPrefix(prefix string) Option {
	return func(e *Evaluator) {
		if prefix != "" {
			e.metadataPrefix = prefix
		}
	}
}

// New creates an Evaluator with default collaborators.
func New(opts ...Option) *Evaluator {
	norm := normalize.New()
	e := &Evaluator{
		norm:           norm,
		classifier:     classify.New(classify.WithNormalizer(norm)),
		weighter:       classify.NewWeighter(),
		metadataPrefix: DefaultMetadataPrefix,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores a prediction record against a gold record and returns the
// aggregate report. Validation overrides, when supplied, force their fields
// to perfect before totals are computed; the result is identical to an
// evaluation in which those fields matched from the start.
func (e *Evaluator) Evaluate(gold, pred record.Record, validations []Validation) *Report {
	flatGold := record.Flatten(gold).NormalizeKeys().WithoutPrefix(e.metadataPrefix)
	flatPred := record.Flatten(pred).NormalizeKeys().WithoutPrefix(e.metadataPrefix)

	r := &Report{
		FieldScores:        make(map[string]FieldScore, len(flatGold)),
		MissingFields:      []string{},
		ExtraFields:        []string{},
		ErrorCategories:    map[string]float64{},
		DetailedErrors:     []FieldError{},
		AppliedValidations: []Validation{},
	}

	var missing []FieldError
	for _, field := range flatGold.Paths() {
		goldValue := flatGold[field]
		predValue, ok := flatPred[field]
		if !ok {
			// A gold field whose value is itself null is silently ignored:
			// downstream consumers expect null fields not to count as errors.
			if e.norm.IsNull(goldValue) {
				continue
			}
			r.MissingFields = append(r.MissingFields, field)
			missing = append(missing, FieldError{
				Field:    field,
				Gold:     goldValue,
				Pred:     nil,
				Category: classify.Critical,
				Score:    classify.Critical.Score(),
			})
			continue
		}

		if e.norm.IsNull(goldValue) && e.norm.IsNull(predValue) {
			// Null-on-both-sides matches pass through without consuming
			// weight; they only show up in the category tally.
			r.FieldScores[field] = FieldScore{
				Gold:     goldValue,
				Pred:     predValue,
				Score:    classify.Perfect.Score(),
				Category: classify.Perfect,
				Weight:   1.0,
			}
			continue
		}

		category, score := e.classifier.Classify(goldValue, predValue, field)
		r.FieldScores[field] = FieldScore{
			Gold:     goldValue,
			Pred:     predValue,
			Score:    score,
			Category: category,
			Weight:   e.weighter.Weight(field),
		}
	}

	for _, field := range flatPred.Paths() {
		if _, ok := flatGold[field]; !ok && !e.norm.IsNull(flatPred[field]) {
			r.ExtraFields = append(r.ExtraFields, field)
		}
	}

	e.override(r, validations)
	e.finalize(r, missing)

	goldCount := len(flatGold)
	if goldCount > 0 {
		r.FieldCoverage = round1(float64(goldCount-len(r.MissingFields)) / float64(goldCount) * percent)
	}
	return r
}

// ApplyValidations forces the validated fields to perfect and rebuilds the
// aggregate from the field-level data. Applying the same set again is a
// no-op; totals never drift because they are recomputed, not patched.
func (e *Evaluator) ApplyValidations(r *Report, validations []Validation) *Report {
	missing := r.missingErrors()
	e.override(r, validations)
	e.finalize(r, missing)
	return r
}

// override marks validated fields as perfect. Unknown fields are skipped;
// already-validated fields are not re-recorded.
func (e *Evaluator) override(r *Report, validations []Validation) {
	for _, v := range validations {
		entry, ok := r.FieldScores[v.Field]
		if !ok || entry.Validated {
			continue
		}
		entry.Score = classify.Perfect.Score()
		entry.Category = classify.Perfect
		entry.Validated = true
		r.FieldScores[v.Field] = entry
		r.AppliedValidations = append(r.AppliedValidations, v)
	}
}

// finalize folds the field-level data into the aggregate: weighted totals,
// category distribution, final score, and the sorted detailed-error list.
// It is the single aggregation formula shared by the initial pass and the
// validation-override pass.
func (e *Evaluator) finalize(r *Report, missing []FieldError) {
	counts := make(map[classify.Category]int, 4)
	r.TotalScore = 0
	r.TotalWeight = 0
	r.DetailedErrors = []FieldError{}

	for field, entry := range r.FieldScores {
		if e.norm.IsNull(entry.Gold) && e.norm.IsNull(entry.Pred) {
			counts[classify.Perfect]++
			continue
		}
		r.TotalWeight += entry.Weight
		r.TotalScore += entry.Weight * entry.Score
		counts[entry.Category]++
		if entry.Category != classify.Perfect {
			r.DetailedErrors = append(r.DetailedErrors, FieldError{
				Field:    field,
				Gold:     entry.Gold,
				Pred:     entry.Pred,
				Category: entry.Category,
				Score:    entry.Score,
			})
		}
	}

	for _, me := range missing {
		counts[classify.Critical]++
		r.DetailedErrors = append(r.DetailedErrors, me)
	}

	// Worst errors first, ties broken by path for determinism.
	sort.Slice(r.DetailedErrors, func(i, j int) bool {
		a, b := r.DetailedErrors[i], r.DetailedErrors[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return a.Field < b.Field
	})

	r.FinalScore = 0
	if r.TotalWeight > 0 {
		r.FinalScore = r.TotalScore / r.TotalWeight * percent
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	for _, category := range classify.Categories() {
		r.ErrorCategories[string(category)] = 0
		if total > 0 {
			r.ErrorCategories[string(category)] = round1(float64(counts[category]) / float64(total) * percent)
		}
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
