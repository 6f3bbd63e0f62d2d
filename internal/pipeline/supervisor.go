package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"trustrank/internal/config"
	"trustrank/internal/core"
	"trustrank/internal/metrics"
)

// Supervisor fans the batch out across channels, up to the configured
// concurrency. Every branch produces a result, never an error: one
// channel's failure cannot cancel or contaminate its siblings.
type Supervisor struct {
	Logger   *slog.Logger
	Config   *config.Config
	Channels core.ChannelRepository
	Pipeline *Pipeline

	// Collector is optional; when present it samples table metrics for
	// the duration of the batch.
	Collector *metrics.Collector
}

func (s *Supervisor) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "supervisor")
	return nil
}

func (s *Supervisor) Run(ctx context.Context) error {
	ids, err := s.channelIDs(ctx)
	if err != nil {
		return err
	}

	// The collector stops with the batch, so the command terminates on
	// its own instead of waiting for a signal.
	if s.Collector != nil {
		collectCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			if err := s.Collector.Collect(collectCtx); err != nil {
				s.Logger.Error("metrics collection stopped", "error", err)
			}
		}()
	}

	s.Logger.Info("starting batch", "channels", len(ids), "concurrency", s.Config.Concurrency)

	report := s.Process(ctx, ids)
	s.report(report)

	return nil
}

func (s *Supervisor) Process(ctx context.Context, channelIDs []int64) core.Report {
	concurrency := s.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		mu      sync.Mutex
		results []core.ChannelResult
	)

	sem := make(chan struct{}, concurrency)
	eg, ctx := errgroup.WithContext(ctx)

	for _, id := range channelIDs {
		channelID := id

		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			result := s.Pipeline.Process(ctx, channelID)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}

	eg.Wait() // nolint:errcheck

	sort.Slice(results, func(i, j int) bool { return results[i].ChannelID < results[j].ChannelID })

	return core.Report{Results: results}
}

func (s *Supervisor) channelIDs(ctx context.Context) ([]int64, error) {
	restrict, err := s.Config.ChannelIDs()
	if err != nil {
		return nil, err
	}
	if len(restrict) > 0 {
		return restrict, nil
	}

	channels, err := s.Channels.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(channels, func(c core.ChannelModel, _ int) int64 {
		return c.ChannelID
	}), nil
}

func (s *Supervisor) report(report core.Report) {
	succeeded := report.ByStatus(core.StatusSucceeded)
	skippedChannels := report.ByStatus(core.StatusSkipped)
	failedChannels := report.ByStatus(core.StatusFailed)

	for _, r := range skippedChannels {
		s.Logger.Info("skipped", "channel_id", r.ChannelID, "reason", r.Reason)
	}
	for _, r := range failedChannels {
		s.Logger.Error("failed", "channel_id", r.ChannelID, "run_id", r.RunID, "error", r.Err)
	}

	s.Logger.Info("batch finished",
		"succeeded", len(succeeded),
		"skipped", len(skippedChannels),
		"failed", len(failedChannels))
}
