package ranking

import (
	"sort"

	"trustrank/internal/core"
)

// Aggregate sums incoming trust per user over any number of score sets.
// Pure, associative and commutative: merging the same rows in any order
// or grouping yields the same totals.
func Aggregate(sets ...[]core.RawScore) []core.RawScore {
	totals := map[int64]float64{}
	for _, set := range sets {
		for _, s := range set {
			totals[s.UserID] += s.Value
		}
	}

	out := make([]core.RawScore, 0, len(totals))
	for userID, value := range totals {
		out = append(out, core.RawScore{UserID: userID, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out
}
