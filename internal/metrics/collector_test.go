package metrics

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDB struct {
	counts map[string]int64
	err    error
}

func (f *fakeDB) Model(_ any) *gorm.DB { return nil }

func (f *fakeDB) EstimatedCount(tableName string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[tableName], nil
}

func (f *fakeDB) DB() (*sql.DB, error) { return nil, nil }

func newCollector(t *testing.T, db *fakeDB) *Collector {
	t.Helper()

	c := &Collector{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:       db,
		Interval: time.Millisecond,
	}
	require.NoError(t, c.Init(context.Background()))
	return c
}

func TestCollector_Collect(t *testing.T) {
	t.Run("samples until cancelled", func(t *testing.T) {
		c := newCollector(t, &fakeDB{counts: map[string]int64{
			"messages":          120,
			"message_reactions": 40,
			"scores":            15,
		}})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		require.NoError(t, c.Collect(ctx))

		require.InDelta(t, 120, testutil.ToFloat64(tableCount.WithLabelValues("messages")), 0)
		require.InDelta(t, 40, testutil.ToFloat64(tableCount.WithLabelValues("message_reactions")), 0)
		require.InDelta(t, 15, testutil.ToFloat64(tableCount.WithLabelValues("scores")), 0)
	})

	t.Run("stops on a collection error", func(t *testing.T) {
		dbDown := errors.New("db down")
		c := newCollector(t, &fakeDB{err: dbDown})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		require.ErrorIs(t, c.Collect(ctx), dbDown)
	})

	t.Run("interval defaults when unset", func(t *testing.T) {
		c := &Collector{
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			DB:     &fakeDB{},
		}
		require.NoError(t, c.Init(context.Background()))
		require.Equal(t, 15*time.Second, c.Interval)
	})
}
