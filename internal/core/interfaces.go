package core

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type DB interface {
	Model(a any) *gorm.DB
	EstimatedCount(tableName string) (int64, error)
	DB() (*sql.DB, error)
}

type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Migrate(ctx context.Context, version uint) error
}

// InteractionReader loads everything needed to build a channel's graph:
// messages since the window start, reactions to those messages, and the
// user directory. Returns ErrDataUnavailable when the window is empty.
type InteractionReader interface {
	Read(ctx context.Context, channelID int64, since time.Time) (Interactions, error)
}

type ChannelRepository interface {
	List(ctx context.Context) ([]ChannelModel, error)
	Directory(ctx context.Context, channelID int64) ([]ChannelUserModel, error)
}

type RunRepository interface {
	// Next returns the run id following the channel's latest run.
	Next(ctx context.Context, channelID int64) (int64, error)
	// Ensure creates the run or, on a re-run, updates its window.
	Ensure(ctx context.Context, channelID, runID int64, daysBack int) (RunModel, error)
	// Latest returns up to n run ids, newest first.
	Latest(ctx context.Context, channelID int64, n int) ([]int64, error)
}

type SeedRepository interface {
	Replace(ctx context.Context, channelID, runID int64, seed SeedVector) error
}

type ScoreRepository interface {
	Replace(ctx context.Context, channelID, runID int64, scores []RawScore) error
	ForRuns(ctx context.Context, channelID int64, runIDs []int64) ([]RawScore, error)
}

// Engine is the trust-propagation capability: given a row-stochastic
// graph, a seed vector, a damping factor and a convergence threshold,
// produce a raw score per user. The process adapter and the in-process
// stub both implement it.
type Engine interface {
	Compute(ctx context.Context, graph Graph, seed SeedVector, params EngineParams) ([]RawScore, error)
}
