package cmd

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"trustrank/internal/cmd/flags"
	"trustrank/internal/config"
	"trustrank/internal/core"
	"trustrank/internal/persistence"
	"trustrank/internal/persistence/channels"
	"trustrank/internal/persistence/runs"
	"trustrank/internal/persistence/scores"
	"trustrank/internal/ranking"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var exportCmd = &cli.Command{
	Name:  "export",
	Usage: "Aggregate stored scores, normalize to 0-1000 and write per-channel ranking files",
	Flags: []cli.Flag{
		flags.Workdir,
		flags.Channels,
		flags.RunsBack,
		flags.RawIDs,
		flags.MembersOnly,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide[core.DB](&persistence.DB{}),
			pal.Provide[core.ChannelRepository](&channels.Repository{}),
			pal.Provide[core.RunRepository](&runs.Repository{}),
			pal.Provide[core.ScoreRepository](&scores.Repository{}),
			pal.Provide(&exporter{}),
		)
	},
}

type exporter struct {
	Logger *slog.Logger
	Config *config.Config

	Channels core.ChannelRepository
	Runs     core.RunRepository
	Scores   core.ScoreRepository
}

func (e *exporter) Init(_ context.Context) error {
	e.Logger = e.Logger.With("component", "exporter")
	return os.MkdirAll(filepath.Join(e.Config.Workdir, "output"), 0o755)
}

func (e *exporter) Run(ctx context.Context) error {
	ids, err := e.channelIDs(ctx)
	if err != nil {
		return err
	}

	for _, channelID := range ids {
		if err := e.exportChannel(ctx, channelID); err != nil {
			e.Logger.Error("export failed", "channel_id", channelID, "error", err)
			continue
		}
	}

	return nil
}

func (e *exporter) exportChannel(ctx context.Context, channelID int64) error {
	runIDs, err := e.Runs.Latest(ctx, channelID, e.Config.RunsBack)
	if err != nil {
		return err
	}
	if len(runIDs) == 0 {
		e.Logger.Info("no runs to export", "channel_id", channelID)
		return nil
	}

	raw, err := e.Scores.ForRuns(ctx, channelID, runIDs)
	if err != nil {
		return err
	}

	directory, err := e.Channels.Directory(ctx, channelID)
	if err != nil {
		return err
	}

	aggregated := ranking.Aggregate(raw)
	if e.Config.MembersOnly {
		aggregated = ranking.ExcludeAdmins(aggregated, directory)
	}

	normalized := ranking.Normalize(aggregated)
	resolver := ranking.NewResolver(directory, e.Config.RawIDs)
	entries := ranking.Rank(normalized, resolver)

	path := filepath.Join(e.Config.Workdir, "output", strconv.FormatInt(channelID, 10)+".csv")
	if err := writeRanking(path, entries); err != nil {
		return err
	}

	e.Logger.Info("ranking exported",
		"channel_id", channelID, "runs", len(runIDs), "users", len(entries), "path", path)
	return nil
}

func (e *exporter) channelIDs(ctx context.Context) ([]int64, error) {
	restrict, err := e.Config.ChannelIDs()
	if err != nil {
		return nil, err
	}
	if len(restrict) > 0 {
		return restrict, nil
	}

	list, err := e.Channels.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ChannelID)
	}
	return ids, nil
}

func writeRanking(path string, entries []core.RankEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"i", "v"}); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := w.Write([]string{entry.Label, strconv.FormatInt(entry.Value, 10)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
