package ranking

import (
	"math"
	"sort"

	"trustrank/internal/core"
)

// Scale is the upper bound of the exported integer range.
const Scale = 1000

// Normalized is one user's score on the fixed 0..Scale range.
type Normalized struct {
	UserID int64
	Value  int64
}

// Normalize rescales aggregated scores linearly onto [0, Scale],
// anchored at zero: the maximum observed value maps to Scale and zero
// stays zero, so "no trust" is visible and relative order among nonzero
// users is preserved. Rounding is round-half-to-even, applied once.
// Output is sorted descending by value, ties by ascending user id.
func Normalize(scores []core.RawScore) []Normalized {
	var max float64
	for _, s := range scores {
		if s.Value > max {
			max = s.Value
		}
	}

	out := make([]Normalized, 0, len(scores))
	for _, s := range scores {
		var value int64
		if max > 0 {
			value = int64(math.RoundToEven(s.Value / max * Scale))
		}
		out = append(out, Normalized{UserID: s.UserID, Value: value})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].UserID < out[j].UserID
	})

	return out
}
