package engine

import (
	"context"
	"sort"

	"trustrank/internal/core"
)

// Stub is a deterministic in-process Engine for tests: one damped
// propagation step instead of iterating to convergence. With alpha 0 it
// returns the seed unchanged, which pins the serialize/invoke/parse
// round-trip of callers exactly.
type Stub struct{}

func (Stub) Compute(_ context.Context, graph core.Graph, seed core.SeedVector, params core.EngineParams) ([]core.RawScore, error) {
	prior := make(map[int64]float64, len(seed))
	for _, s := range seed {
		prior[s.UserID] = s.Weight
	}

	values := map[int64]float64{}
	for _, s := range seed {
		values[s.UserID] += (1 - params.Alpha) * s.Weight
	}
	if params.Alpha > 0 {
		for _, e := range graph.Edges {
			values[e.To] += params.Alpha * prior[e.From] * e.Weight
		}
	}

	scores := make([]core.RawScore, 0, len(values))
	for userID, value := range values {
		scores = append(scores, core.RawScore{UserID: userID, Value: value})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].UserID < scores[j].UserID })

	return scores, nil
}
