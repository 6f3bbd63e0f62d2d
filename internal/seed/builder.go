package seed

import (
	"fmt"
	"sort"

	"trustrank/internal/core"
)

// Builder produces the personalization vector: uniform mass over the
// channel admins, or over an explicit user list when one is configured.
// The weights always sum to 1; without the seed the engine's damping
// term is undefined, so an empty set is an error, never an empty vector.
type Builder struct {
	// Explicit overrides the admin set. Users missing from the channel
	// directory are ignored.
	Explicit []int64
}

func (b *Builder) Build(directory []core.ChannelUserModel) (core.SeedVector, error) {
	known := make(map[int64]bool, len(directory))
	for _, u := range directory {
		known[u.UserID] = true
	}

	var ids []int64
	if len(b.Explicit) > 0 {
		seen := map[int64]bool{}
		for _, id := range b.Explicit {
			if known[id] && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	} else {
		for _, u := range directory {
			if u.IsAdmin {
				ids = append(ids, u.UserID)
			}
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no admins or seed users in directory", core.ErrNoSeedAvailable)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	weight := 1.0 / float64(len(ids))
	vector := make(core.SeedVector, 0, len(ids))
	for _, id := range ids {
		vector = append(vector, core.SeedWeight{UserID: id, Weight: weight})
	}
	return vector, nil
}
