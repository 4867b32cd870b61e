// Package similarity computes the edit-distance similarity ratio between
// two normalized string values.
package similarity

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-character insertions, deletions, and
// substitutions (all unit cost) transforming one into the other. Classical
// Wagner-Fischer recurrence over runes, two rows at a time.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	// Keep the shorter operand as the row to bound memory.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			insertion := prev[j+1] + 1
			deletion := curr[j] + 1
			substitution := prev[j]
			if ca != cb {
				substitution++
			}
			curr[j+1] = min(insertion, deletion, substitution)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Ratio converts the edit distance between a and b into a similarity in
// [0, 1]: 1 - distance/max(len). Two empty strings are a perfect match;
// exactly one empty string is no match. Operands are expected to be
// normalized already.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	distance := Distance(a, b)
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
