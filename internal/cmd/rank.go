package cmd

import (
	"context"

	"trustrank/internal/cmd/flags"
	"trustrank/internal/core"
	"trustrank/internal/engine"
	"trustrank/internal/metrics"
	"trustrank/internal/persistence"
	"trustrank/internal/persistence/channels"
	"trustrank/internal/persistence/interactions"
	"trustrank/internal/persistence/runs"
	"trustrank/internal/persistence/scores"
	"trustrank/internal/persistence/seeds"
	"trustrank/internal/pipeline"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var rankCmd = &cli.Command{
	Name:  "rank",
	Usage: "Build trust graphs, run the propagation engine and persist scores for each channel",
	Flags: []cli.Flag{
		flags.Workdir,
		flags.EngineBin,
		flags.EngineTimeout,
		flags.Alpha,
		flags.Delta,
		flags.DaysBack,
		flags.RunID,
		flags.Concurrency,
		flags.Channels,
		flags.SeedUsers,
		flags.ReplyWeight,
		flags.ReactionWeight,
		flags.MentionWeight,
		flags.ThreadWeight,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide[core.DB](&persistence.DB{}),
			pal.Provide[core.ChannelRepository](&channels.Repository{}),
			pal.Provide[core.InteractionReader](&interactions.Repository{}),
			pal.Provide[core.RunRepository](&runs.Repository{}),
			pal.Provide[core.SeedRepository](&seeds.Repository{}),
			pal.Provide[core.ScoreRepository](&scores.Repository{}),
			pal.Provide[core.Engine](&engine.ExecAdapter{}),
			pal.Provide(&metrics.HTTPServer{}),
			pal.Provide(&metrics.Collector{}),
			pal.Provide(&pipeline.Pipeline{}),
			pal.Provide(&pipeline.Supervisor{}),
		)
	},
}
