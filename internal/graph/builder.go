package graph

import (
	"fmt"
	"sort"

	"trustrank/internal/core"
)

// Builder turns a channel's interactions into a row-stochastic trust
// graph. Self-loops never count, unresolvable signals are dropped, and
// users without outgoing mass simply have no row.
type Builder struct {
	Weights Weights
}

func (b *Builder) Build(ix core.Interactions) (core.Graph, error) {
	byID := make(map[int64]core.MessageModel, len(ix.Messages))
	for _, m := range ix.Messages {
		byID[m.ID] = m
	}

	usernames := usernameIndex(ix.Directory)

	acc := accumulator{}

	for _, m := range ix.Messages {
		if m.FromID == 0 {
			// Channel announcement, nobody to credit or be credited by.
			continue
		}

		if m.ReplyToMsgID != nil {
			// Replies to messages outside the window or by unknown authors
			// are dropped, not errors.
			if target, ok := byID[*m.ReplyToMsgID]; ok && target.FromID != 0 {
				acc.add(m.FromID, target.FromID, b.Weights.Reply)
			}
		}

		for _, mentioned := range mentionTargets(m.Message, usernames) {
			acc.add(m.FromID, mentioned, b.Weights.Mention)
		}
	}

	for _, reaction := range ix.Reactions {
		if reaction.UserID == 0 {
			continue
		}
		target, ok := byID[reaction.MessageID]
		if !ok || target.FromID == 0 {
			continue
		}
		acc.add(reaction.UserID, target.FromID, b.Weights.Reaction)
	}

	if b.Weights.Thread > 0 {
		b.addThreadEdges(acc, ix.Messages, byID)
	}

	if len(acc) == 0 {
		return core.Graph{}, fmt.Errorf("%w: %d messages, %d reactions",
			core.ErrEmptyGraph, len(ix.Messages), len(ix.Reactions))
	}

	return core.Graph{Edges: acc.normalized()}, nil
}

// addThreadEdges credits users for engaging in the same conversation:
// reply authors under one root post trust each other bidirectionally,
// scaled by the lower of the two engagement counts.
func (b *Builder) addThreadEdges(acc accumulator, messages []core.MessageModel, byID map[int64]core.MessageModel) {
	participants := map[int64]map[int64]int{}

	for _, m := range messages {
		if m.FromID == 0 || m.ReplyToMsgID == nil {
			continue
		}
		root := rootOf(m, byID)
		if participants[root] == nil {
			participants[root] = map[int64]int{}
		}
		participants[root][m.FromID]++
	}

	for _, counts := range participants {
		users := make([]int64, 0, len(counts))
		for u := range counts {
			users = append(users, u)
		}
		sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

		for i, ui := range users {
			for _, uj := range users[i+1:] {
				weight := b.Weights.Thread * float64(min(counts[ui], counts[uj]))
				acc.add(ui, uj, weight)
				acc.add(uj, ui, weight)
			}
		}
	}
}

// rootOf follows the reply chain up to the thread's root post. Broken
// links end the walk; a visited set guards against reply cycles in
// corrupt data.
func rootOf(m core.MessageModel, byID map[int64]core.MessageModel) int64 {
	visited := map[int64]bool{m.ID: true}

	current := m
	for current.ReplyToMsgID != nil {
		parent, ok := byID[*current.ReplyToMsgID]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		current = parent
	}
	return current.ID
}

type pair struct {
	from int64
	to   int64
}

type accumulator map[pair]float64

func (a accumulator) add(from, to int64, weight float64) {
	if from == to || weight <= 0 {
		return
	}
	a[pair{from, to}] += weight
}

// normalized divides every user's outgoing weights by their total so
// each row sums to 1, and emits edges sorted by (from, to) so repeated
// builds over the same input are byte-identical on disk.
func (a accumulator) normalized() []core.Edge {
	totals := map[int64]float64{}
	for p, w := range a {
		totals[p.from] += w
	}

	edges := make([]core.Edge, 0, len(a))
	for p, w := range a {
		edges = append(edges, core.Edge{
			From:   p.from,
			To:     p.to,
			Weight: w / totals[p.from],
		})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	return edges
}
