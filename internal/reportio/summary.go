package reportio

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/veritas/internal/domain/evaluate"
)

// Number of detailed errors shown in the console summary.
const summaryErrorLimit = 10

// WriteSummary prints a human-readable summary of the evaluation report.
func WriteSummary(w io.Writer, r *evaluate.Report) {
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "DOCUMENT EVALUATION SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Overall Score: %.1f%%\n", r.FinalScore)
	fmt.Fprintf(w, "Field Coverage: %.1f%%\n", r.FieldCoverage)

	fmt.Fprintln(w, "\nError Distribution:")
	fmt.Fprintf(w, "- Perfect Matches: %.1f%%\n", r.ErrorCategories["perfect"])
	fmt.Fprintf(w, "- Minor Errors: %.1f%%\n", r.ErrorCategories["minor"])
	fmt.Fprintf(w, "- Semantic Differences: %.1f%%\n", r.ErrorCategories["semantic"])
	fmt.Fprintf(w, "- Critical Errors: %.1f%%\n", r.ErrorCategories["critical"])

	fmt.Fprintf(w, "\nMissing Fields: %d\n", len(r.MissingFields))
	fmt.Fprintf(w, "Extra Fields: %d\n", len(r.ExtraFields))
	if len(r.AppliedValidations) > 0 {
		fmt.Fprintf(w, "Applied Validations: %d\n", len(r.AppliedValidations))
	}

	if len(r.DetailedErrors) > 0 {
		limit := len(r.DetailedErrors)
		if limit > summaryErrorLimit {
			limit = summaryErrorLimit
		}
		fmt.Fprintf(w, "\nTop %d Errors:\n", limit)
		for i, e := range r.DetailedErrors[:limit] {
			fmt.Fprintf(w, "%d. Field: %s\n", i+1, e.Field)
			fmt.Fprintf(w, "   Gold: %v\n", e.Gold)
			fmt.Fprintf(w, "   Pred: %v\n", e.Pred)
			fmt.Fprintf(w, "   Type: %s\n\n", e.Category)
		}
	}

	fmt.Fprintln(w, rule)
}
