package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trustrank/internal/core"
	"trustrank/internal/ranking"
)

func user(id int64, username, first, last string) core.ChannelUserModel {
	return core.ChannelUserModel{
		ChannelID: 1,
		UserID:    id,
		Username:  username,
		FirstName: first,
		LastName:  last,
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	t.Run("username wins", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "alice", ranking.DisplayName(user(10, "alice", "Jane", "Doe")))
	})

	t.Run("full name when no username", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Jane Doe", ranking.DisplayName(user(10, "", "Jane", "Doe")))
	})

	t.Run("first name only", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Jane", ranking.DisplayName(user(10, "", "Jane", "")))
	})

	t.Run("numeric id as last resort", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "10", ranking.DisplayName(user(10, "", "", "")))
	})

	t.Run("whitespace-only names fall through", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "10", ranking.DisplayName(user(10, "", "  ", " ")))
	})
}

func TestResolver(t *testing.T) {
	t.Parallel()

	directory := []core.ChannelUserModel{
		user(10, "alice", "", ""),
		user(20, "", "Jane", "Doe"),
	}

	t.Run("labels by precedence", func(t *testing.T) {
		t.Parallel()

		resolver := ranking.NewResolver(directory, false)

		require.Equal(t, "alice", resolver.Label(10))
		require.Equal(t, "Jane Doe", resolver.Label(20))
		require.Equal(t, "999", resolver.Label(999))
	})

	t.Run("raw ids bypass resolution", func(t *testing.T) {
		t.Parallel()

		resolver := ranking.NewResolver(directory, true)

		require.Equal(t, "10", resolver.Label(10))
		require.Equal(t, "20", resolver.Label(20))
	})

	t.Run("rank preserves order", func(t *testing.T) {
		t.Parallel()

		resolver := ranking.NewResolver(directory, false)

		entries := ranking.Rank([]ranking.Normalized{
			{UserID: 20, Value: 1000},
			{UserID: 10, Value: 500},
		}, resolver)

		require.Equal(t, []core.RankEntry{
			{Label: "Jane Doe", Value: 1000},
			{Label: "alice", Value: 500},
		}, entries)
	})
}

func TestExcludeAdmins(t *testing.T) {
	t.Parallel()

	directory := []core.ChannelUserModel{
		{ChannelID: 1, UserID: 10, IsAdmin: true},
		{ChannelID: 1, UserID: 20},
	}
	scores := []core.RawScore{
		{UserID: 10, Value: 0.5},
		{UserID: 20, Value: 0.3},
		{UserID: 30, Value: 0.2},
	}

	require.Equal(t, []core.RawScore{
		{UserID: 20, Value: 0.3},
		{UserID: 30, Value: 0.2},
	}, ranking.ExcludeAdmins(scores, directory))
}
