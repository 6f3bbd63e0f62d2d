package seed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trustrank/internal/core"
	"trustrank/internal/seed"
)

func member(id int64, admin bool) core.ChannelUserModel {
	return core.ChannelUserModel{ChannelID: 1, UserID: id, IsAdmin: admin}
}

func weightSum(v core.SeedVector) float64 {
	var sum float64
	for _, w := range v {
		sum += w.Weight
	}
	return sum
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("uniform over admins", func(t *testing.T) {
		t.Parallel()

		builder := &seed.Builder{}

		vector, err := builder.Build([]core.ChannelUserModel{
			member(30, true),
			member(10, true),
			member(20, false),
		})
		require.NoError(t, err)

		require.Equal(t, core.SeedVector{
			{UserID: 10, Weight: 0.5},
			{UserID: 30, Weight: 0.5},
		}, vector)
		require.InDelta(t, 1.0, weightSum(vector), 1e-9)
	})

	t.Run("no admins", func(t *testing.T) {
		t.Parallel()

		builder := &seed.Builder{}

		_, err := builder.Build([]core.ChannelUserModel{
			member(10, false),
			member(20, false),
		})
		require.ErrorIs(t, err, core.ErrNoSeedAvailable)
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		builder := &seed.Builder{}

		_, err := builder.Build(nil)
		require.ErrorIs(t, err, core.ErrNoSeedAvailable)
	})

	t.Run("explicit list overrides admins", func(t *testing.T) {
		t.Parallel()

		builder := &seed.Builder{Explicit: []int64{20, 10, 20}}

		vector, err := builder.Build([]core.ChannelUserModel{
			member(10, false),
			member(20, false),
			member(30, true),
		})
		require.NoError(t, err)

		require.Equal(t, core.SeedVector{
			{UserID: 10, Weight: 0.5},
			{UserID: 20, Weight: 0.5},
		}, vector)
	})

	t.Run("explicit users outside the directory are ignored", func(t *testing.T) {
		t.Parallel()

		builder := &seed.Builder{Explicit: []int64{10, 999}}

		vector, err := builder.Build([]core.ChannelUserModel{member(10, false)})
		require.NoError(t, err)

		require.Equal(t, core.SeedVector{{UserID: 10, Weight: 1.0}}, vector)
	})

	t.Run("explicit list with no known users", func(t *testing.T) {
		t.Parallel()

		builder := &seed.Builder{Explicit: []int64{998, 999}}

		_, err := builder.Build([]core.ChannelUserModel{member(10, true)})
		require.ErrorIs(t, err, core.ErrNoSeedAvailable)
	})
}
