package graph_test

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"trustrank/internal/core"
	"trustrank/internal/graph"
)

var testDate = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func message(id, from int64, replyTo *int64, text string) core.MessageModel {
	return core.MessageModel{
		ChannelID:    1,
		ID:           id,
		Date:         testDate,
		FromID:       from,
		Message:      text,
		ReplyToMsgID: replyTo,
	}
}

func reaction(id, messageID, userID int64) core.MessageReactionModel {
	return core.MessageReactionModel{
		ID:        id,
		ChannelID: 1,
		MessageID: messageID,
		UserID:    userID,
		Emoji:     "👍",
		Date:      testDate,
	}
}

func rowSums(g core.Graph) map[int64]float64 {
	sums := map[int64]float64{}
	for from, row := range g.Rows() {
		for _, e := range row {
			sums[from] += e.Weight
		}
	}
	return sums
}

func findEdge(t *testing.T, g core.Graph, from, to int64) core.Edge {
	t.Helper()

	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return e
		}
	}
	require.Failf(t, "edge not found", "%d -> %d in %v", from, to, g.Edges)
	return core.Edge{}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	builder := &graph.Builder{Weights: graph.DefaultWeights()}

	t.Run("replies and reactions", func(t *testing.T) {
		t.Parallel()

		// A (10) replies twice to B (20), B reacts once to C (30).
		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "first post"),
				message(2, 20, nil, "second post"),
				message(3, 10, lo.ToPtr(int64(1)), "reply one"),
				message(4, 10, lo.ToPtr(int64(2)), "reply two"),
				message(5, 30, nil, "c's post"),
			},
			Reactions: []core.MessageReactionModel{
				reaction(1, 5, 20),
			},
		}

		g, err := builder.Build(ix)
		require.NoError(t, err)
		require.Len(t, g.Edges, 2)

		require.InDelta(t, 1.0, findEdge(t, g, 10, 20).Weight, 1e-9)
		require.InDelta(t, 1.0, findEdge(t, g, 20, 30).Weight, 1e-9)
	})

	t.Run("rows are stochastic", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "post"),
				message(2, 30, nil, "another"),
				message(3, 10, lo.ToPtr(int64(1)), "reply"),
			},
			Reactions: []core.MessageReactionModel{
				reaction(1, 1, 10),
				reaction(2, 2, 10),
				reaction(3, 1, 30),
			},
		}

		g, err := builder.Build(ix)
		require.NoError(t, err)

		for from, sum := range rowSums(g) {
			require.InDeltaf(t, 1.0, sum, 1e-9, "row %d", from)
		}
	})

	t.Run("self interactions never count", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 10, nil, "my post"),
				message(2, 10, lo.ToPtr(int64(1)), "replying to myself"),
			},
			Reactions: []core.MessageReactionModel{
				reaction(1, 1, 10),
			},
		}

		_, err := builder.Build(ix)
		require.ErrorIs(t, err, core.ErrEmptyGraph)
	})

	t.Run("unresolved replies are dropped", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "post"),
				message(2, 10, lo.ToPtr(int64(999)), "reply to a deleted message"),
				message(3, 10, lo.ToPtr(int64(1)), "real reply"),
			},
		}

		g, err := builder.Build(ix)
		require.NoError(t, err)
		require.Len(t, g.Edges, 1)
		require.InDelta(t, 1.0, findEdge(t, g, 10, 20).Weight, 1e-9)
	})

	t.Run("announcements carry no trust", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 0, nil, "channel announcement"),
			},
			Reactions: []core.MessageReactionModel{
				reaction(1, 1, 10),
			},
		}

		_, err := builder.Build(ix)
		require.ErrorIs(t, err, core.ErrEmptyGraph)
	})

	t.Run("reactions to messages outside the window are dropped", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "post"),
				message(2, 10, lo.ToPtr(int64(1)), "reply"),
			},
			Reactions: []core.MessageReactionModel{
				reaction(1, 42, 30), // message 42 not in the window
			},
		}

		g, err := builder.Build(ix)
		require.NoError(t, err)
		require.Len(t, g.Edges, 1)
	})

	t.Run("mentions resolve against the directory", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "post"),
				message(2, 10, lo.ToPtr(int64(1)), "thanks @alice! and hi @ghost"),
			},
			Directory: []core.ChannelUserModel{
				{ChannelID: 1, UserID: 30, Username: "alice"},
			},
		}

		g, err := builder.Build(ix)
		require.NoError(t, err)

		// Reply weight 2 to B, mention weight 1.5 to alice, normalized.
		require.InDelta(t, 2.0/3.5, findEdge(t, g, 10, 20).Weight, 1e-9)
		require.InDelta(t, 1.5/3.5, findEdge(t, g, 10, 30).Weight, 1e-9)
	})

	t.Run("mentions are case sensitive", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "post"),
				message(2, 10, lo.ToPtr(int64(1)), "cc @Alice"),
			},
			Directory: []core.ChannelUserModel{
				{ChannelID: 1, UserID: 30, Username: "alice"},
			},
		}

		g, err := builder.Build(ix)
		require.NoError(t, err)
		require.Len(t, g.Edges, 1) // reply only, @Alice does not resolve
	})

	t.Run("deterministic across rebuilds", func(t *testing.T) {
		t.Parallel()

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "post"),
				message(2, 10, lo.ToPtr(int64(1)), "reply"),
				message(3, 30, lo.ToPtr(int64(1)), "reply too"),
			},
			Reactions: []core.MessageReactionModel{
				reaction(1, 1, 10),
				reaction(2, 2, 30),
			},
		}

		first, err := builder.Build(ix)
		require.NoError(t, err)

		second, err := builder.Build(ix)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})
}

func TestBuilder_ThreadParticipation(t *testing.T) {
	t.Parallel()

	t.Run("co-participants trust each other", func(t *testing.T) {
		t.Parallel()

		builder := &graph.Builder{Weights: graph.Weights{Reply: 0, Reaction: 0, Mention: 0, Thread: 0.5}}

		// Users 10 and 30 both reply under the root post of 20; 10
		// engages twice, 30 once.
		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "root"),
				message(2, 10, lo.ToPtr(int64(1)), "reply"),
				message(3, 30, lo.ToPtr(int64(2)), "nested reply"),
				message(4, 10, lo.ToPtr(int64(3)), "back again"),
			},
		}

		g, err := builder.Build(ix)
		require.NoError(t, err)
		require.Len(t, g.Edges, 2)

		// min(2, 1) * 0.5 on both directions, each user's only row.
		require.InDelta(t, 1.0, findEdge(t, g, 10, 30).Weight, 1e-9)
		require.InDelta(t, 1.0, findEdge(t, g, 30, 10).Weight, 1e-9)
	})

	t.Run("disabled with zero weight", func(t *testing.T) {
		t.Parallel()

		builder := &graph.Builder{Weights: graph.Weights{Reply: 0, Reaction: 0, Mention: 0, Thread: 0}}

		ix := core.Interactions{
			Messages: []core.MessageModel{
				message(1, 20, nil, "root"),
				message(2, 10, lo.ToPtr(int64(1)), "reply"),
				message(3, 30, lo.ToPtr(int64(2)), "nested reply"),
			},
		}

		_, err := builder.Build(ix)
		require.ErrorIs(t, err, core.ErrEmptyGraph)
	})
}
