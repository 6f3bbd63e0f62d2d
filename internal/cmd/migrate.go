package cmd

import (
	"context"

	"trustrank/internal/core"
	"trustrank/internal/persistence"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the database schema",
	Commands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply pending migrations",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c,
					pal.Provide[core.DB](&persistence.DB{}),
					pal.Provide[core.Migrator](&persistence.Migrator{}),
					pal.Provide(&persistence.MigrationUpRunner{}),
				)
			},
		},
		{
			Name:  "down",
			Usage: "Roll back the latest migration",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c,
					pal.Provide[core.DB](&persistence.DB{}),
					pal.Provide[core.Migrator](&persistence.Migrator{}),
					pal.Provide(&persistence.MigrationDownRunner{}),
				)
			},
		},
	},
}
