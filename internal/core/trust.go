package core

// Edge is one directed trust assignment. From is the user performing
// the reply/reaction/mention, To is the user credited.
type Edge struct {
	From   int64
	To     int64
	Weight float64
}

// Graph is a row-stochastic trust graph: for every user with outgoing
// edges the weights sum to 1. Users without outgoing edges have no row
// at all; the engine folds their mass back into the seed vector.
type Graph struct {
	Edges []Edge
}

// Rows groups edges by truster.
func (g Graph) Rows() map[int64][]Edge {
	rows := map[int64][]Edge{}
	for _, e := range g.Edges {
		rows[e.From] = append(rows[e.From], e)
	}
	return rows
}

type SeedWeight struct {
	UserID int64
	Weight float64
}

// SeedVector is the personalization prior. Weights sum to 1.
type SeedVector []SeedWeight

type RawScore struct {
	UserID int64
	Value  float64
}

// RankEntry is one row of the exported ranking.
type RankEntry struct {
	Label string
	Value int64
}

// Interactions is everything the graph and seed builders need for one
// channel and window.
type Interactions struct {
	Messages  []MessageModel
	Reactions []MessageReactionModel
	Directory []ChannelUserModel
}

// EngineParams selects the run the engine computes and its two
// algorithm knobs: damping factor and convergence threshold.
type EngineParams struct {
	ChannelID int64
	RunID     int64
	Alpha     float64
	Delta     float64
}

type ChannelStatus string

const (
	StatusSucceeded ChannelStatus = "succeeded"
	StatusSkipped   ChannelStatus = "skipped"
	StatusFailed    ChannelStatus = "failed"
)

// ChannelResult is the outcome of one channel's pipeline instance.
type ChannelResult struct {
	ChannelID int64
	RunID     int64
	Status    ChannelStatus
	Reason    string
	Err       error

	Users int
	Edges int
}

// Report summarizes a batch across channels.
type Report struct {
	Results []ChannelResult
}

func (r Report) ByStatus(status ChannelStatus) []ChannelResult {
	var out []ChannelResult
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}
