// Package evaluate orchestrates flattening, classification, and weighting
// over a gold/prediction record pair and aggregates the evaluation report.
package evaluate

import "github.com/okian/veritas/internal/domain/classify"

// FieldScore is the per-field outcome recorded for every field present on
// both sides of the comparison.
type FieldScore struct {
	Gold      any               `json:"gold"`
	Pred      any               `json:"pred"`
	Score     float64           `json:"score"`
	Category  classify.Category `json:"error_type"`
	Weight    float64           `json:"weight"`
	Validated bool              `json:"validated"`
}

// FieldError is one entry of the detailed-error list: a scored field that
// did not match perfectly, or a gold field missing from the prediction.
type FieldError struct {
	Field    string            `json:"field"`
	Gold     any               `json:"gold"`
	Pred     any               `json:"pred"`
	Category classify.Category `json:"type"`
	Score    float64           `json:"score"`
}

// Validation is a reviewer-asserted exception: the named field is accepted
// as correct despite a non-perfect automatic score.
type Validation struct {
	Field string `json:"field"`
	Gold  any    `json:"gold"`
	Pred  any    `json:"pred"`
}

// Report is the aggregate result of evaluating one gold/prediction pair.
// Totals are always derivable from the field-level data; ApplyValidations
// rebuilds them rather than patching running sums.
type Report struct {
	TotalScore         float64               `json:"total_score"`
	TotalWeight        float64               `json:"total_weight"`
	FinalScore         float64               `json:"final_score"`
	FieldCoverage      float64               `json:"field_coverage"`
	FieldScores        map[string]FieldScore `json:"field_scores"`
	MissingFields      []string              `json:"missing_fields"`
	ExtraFields        []string              `json:"extra_fields"`
	ErrorCategories    map[string]float64    `json:"error_categories"`
	DetailedErrors     []FieldError          `json:"detailed_errors"`
	AppliedValidations []Validation          `json:"applied_validations"`
}

// missingErrors extracts the detailed-error entries that describe missing
// fields. These survive validation recomputation untouched.
func (r *Report) missingErrors() []FieldError {
	missing := make(map[string]struct{}, len(r.MissingFields))
	for _, field := range r.MissingFields {
		missing[field] = struct{}{}
	}
	var out []FieldError
	for _, e := range r.DetailedErrors {
		if _, ok := missing[e.Field]; ok {
			out = append(out, e)
		}
	}
	return out
}
