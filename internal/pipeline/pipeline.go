package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"trustrank/internal/config"
	"trustrank/internal/core"
	"trustrank/internal/graph"
	"trustrank/internal/seed"
)

var (
	channelsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustrank_channels_processed_total",
		Help: "The total number of processed channels by outcome.",
	}, []string{"status"})

	edgesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trustrank_trust_edges_built_total",
		Help: "The total number of trust edges built across channels.",
	})

	engineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustrank_engine_duration_seconds",
		Help:    "Histogram of engine invocations in seconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	})
)

// Pipeline runs one channel end to end: window read, graph and seed
// construction, engine invocation, score persistence. Instances share
// nothing mutable, so the supervisor can run them in parallel.
type Pipeline struct {
	Logger *slog.Logger
	Config *config.Config

	Reader core.InteractionReader
	Runs   core.RunRepository
	Seeds  core.SeedRepository
	Scores core.ScoreRepository
	Engine core.Engine

	builder *graph.Builder
	seeder  *seed.Builder
}

func (p *Pipeline) Init(_ context.Context) error {
	p.Logger = p.Logger.With("component", "pipeline")

	p.builder = &graph.Builder{Weights: graph.Weights{
		Reply:    p.Config.ReplyWeight,
		Reaction: p.Config.ReactionWeight,
		Mention:  p.Config.MentionWeight,
		Thread:   p.Config.ThreadWeight,
	}}

	seedUsers, err := p.Config.SeedUserIDs()
	if err != nil {
		return err
	}
	p.seeder = &seed.Builder{Explicit: seedUsers}

	return nil
}

// Process never panics across channels and never returns an error: the
// outcome, good or bad, is the result. Skips and failures stay local to
// the channel.
func (p *Pipeline) Process(ctx context.Context, channelID int64) core.ChannelResult {
	result := p.process(ctx, channelID)
	channelsProcessed.WithLabelValues(string(result.Status)).Inc()

	switch result.Status {
	case core.StatusSucceeded:
		p.Logger.Info("channel ranked",
			"channel_id", result.ChannelID, "run_id", result.RunID,
			"users", result.Users, "edges", result.Edges)
	case core.StatusSkipped:
		p.Logger.Info("channel skipped", "channel_id", result.ChannelID, "reason", result.Reason)
	case core.StatusFailed:
		p.Logger.Error("channel failed", "channel_id", result.ChannelID, "error", result.Err)
	}

	return result
}

func (p *Pipeline) process(ctx context.Context, channelID int64) core.ChannelResult {
	runID := p.Config.RunID
	if runID == 0 {
		next, err := p.Runs.Next(ctx, channelID)
		if err != nil {
			return failed(channelID, 0, err)
		}
		runID = next
	}

	run, err := p.Runs.Ensure(ctx, channelID, runID, p.Config.DaysBack)
	if err != nil {
		return failed(channelID, runID, err)
	}

	since := time.Now().UTC().AddDate(0, 0, -run.DaysBack)

	ix, err := p.Reader.Read(ctx, channelID, since)
	if errors.Is(err, core.ErrDataUnavailable) {
		return skipped(channelID, runID, "no interactions in window")
	}
	if err != nil {
		return failed(channelID, runID, err)
	}

	g, err := p.builder.Build(ix)
	if errors.Is(err, core.ErrEmptyGraph) {
		// Interactions exist but none survived filtering. Not worth an
		// engine call.
		return skipped(channelID, runID, "no usable trust edges")
	}
	if err != nil {
		return failed(channelID, runID, err)
	}

	seedVector, err := p.seeder.Build(ix.Directory)
	if errors.Is(err, core.ErrNoSeedAvailable) {
		return skipped(channelID, runID, "no seed available")
	}
	if err != nil {
		return failed(channelID, runID, err)
	}

	scores, err := p.invokeEngine(ctx, g, seedVector, channelID, runID)
	if err != nil {
		return failed(channelID, runID, err)
	}

	// Derived rows are written only once the engine has delivered, so an
	// aborted re-run leaves the previous run's seeds and scores intact.
	if err := p.Seeds.Replace(ctx, channelID, runID, seedVector); err != nil {
		return failed(channelID, runID, err)
	}

	if err := p.Scores.Replace(ctx, channelID, runID, scores); err != nil {
		return failed(channelID, runID, err)
	}

	edgesBuilt.Add(float64(len(g.Edges)))

	return core.ChannelResult{
		ChannelID: channelID,
		RunID:     runID,
		Status:    core.StatusSucceeded,
		Users:     len(scores),
		Edges:     len(g.Edges),
	}
}

// invokeEngine bounds the only slow step with its own timeout. No
// automatic retries: the operator re-runs with the same run id, which
// overwrites deterministically.
func (p *Pipeline) invokeEngine(ctx context.Context, g core.Graph, seedVector core.SeedVector, channelID, runID int64) ([]core.RawScore, error) {
	engineCtx, cancel := context.WithTimeout(ctx, p.Config.EngineTimeout())
	defer cancel()

	started := time.Now()
	scores, err := p.Engine.Compute(engineCtx, g, seedVector, core.EngineParams{
		ChannelID: channelID,
		RunID:     runID,
		Alpha:     p.Config.Alpha,
		Delta:     p.Config.Delta,
	})
	engineDuration.Observe(time.Since(started).Seconds())

	return scores, err
}

func skipped(channelID, runID int64, reason string) core.ChannelResult {
	return core.ChannelResult{
		ChannelID: channelID,
		RunID:     runID,
		Status:    core.StatusSkipped,
		Reason:    reason,
	}
}

func failed(channelID, runID int64, err error) core.ChannelResult {
	return core.ChannelResult{
		ChannelID: channelID,
		RunID:     runID,
		Status:    core.StatusFailed,
		Reason:    err.Error(),
		Err:       err,
	}
}
