package battle

import "math"

// The change-detection gate: every operation runs its computed result through
// these checks before emitting, so idempotent no-ops never dispatch.

// SimilarInts reports whether two integer-index arrays are equal in length
// and pairwise-equal in order.
func SimilarInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// WithinTolerance reports whether two numbers are equal within an absolute
// tolerance. Used to absorb integer-rounding noise between percentage-based
// HP reports and exact overrides.
func WithinTolerance(a, b, tolerance int) bool {
	if tolerance < 0 {
		tolerance = 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// HPTolerance is the dirty-HP clearing tolerance for a given max HP:
// ceil(1%) of max.
func HPTolerance(maxHP int) int {
	if maxHP <= 0 {
		return 0
	}
	return int(math.Ceil(float64(maxHP) * 0.01))
}
