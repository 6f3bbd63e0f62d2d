package flags

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var Workdir = &cli.StringFlag{
	Name:    "workdir",
	Aliases: []string{"w"},
	Usage:   "Directory for the edge, seed, score and ranking files",
	Value:   "data",
	Sources: cli.EnvVars("TRUSTRANK_WORKDIR"),
}

var EngineBin = &cli.StringFlag{
	Name:    "engine-bin",
	Usage:   "Path to the trust propagation engine binary",
	Value:   "eigentrust",
	Sources: cli.EnvVars("TRUSTRANK_ENGINE_BIN"),
}

var EngineTimeout = &cli.IntFlag{
	Name:    "engine-timeout",
	Usage:   "Per-channel engine timeout in seconds",
	Value:   300,
	Sources: cli.EnvVars("TRUSTRANK_ENGINE_TIMEOUT"),
}

var Alpha = &cli.Float64Flag{
	Name:    "alpha",
	Usage:   "Damping factor: probability mass returned to the seed each step",
	Value:   0.85,
	Sources: cli.EnvVars("TRUSTRANK_ALPHA"),
}

var Delta = &cli.Float64Flag{
	Name:    "delta",
	Usage:   "Convergence threshold for the engine's iteration",
	Value:   1e-6,
	Sources: cli.EnvVars("TRUSTRANK_DELTA"),
}

var DaysBack = &cli.IntFlag{
	Name:    "days-back",
	Aliases: []string{"d"},
	Usage:   "Length of the interaction window in days",
	Value:   30,
	Sources: cli.EnvVars("TRUSTRANK_DAYS_BACK"),
}

var RunID = &cli.IntFlag{
	Name:  "run-id",
	Usage: "Re-run a specific run id, overwriting its derived data. 0 allocates the next id",
	Value: 0,
}

var Concurrency = &cli.IntFlag{
	Name:    "concurrency",
	Aliases: []string{"c"},
	Usage:   "How many channels are processed in parallel",
	Value:   4,
	Sources: cli.EnvVars("TRUSTRANK_CONCURRENCY"),
}

var Channels = &cli.StringFlag{
	Name:  "channels",
	Usage: "Comma-separated channel ids to restrict the batch to",
}

var SeedUsers = &cli.StringFlag{
	Name:  "seed-users",
	Usage: "Comma-separated user ids to seed instead of the channel admins",
}

var ReplyWeight = &cli.Float64Flag{
	Name:  "reply-weight",
	Usage: "Trust weight of a reply",
	Value: 2.0,
}

var ReactionWeight = &cli.Float64Flag{
	Name:  "reaction-weight",
	Usage: "Trust weight of a reaction",
	Value: 1.0,
}

var MentionWeight = &cli.Float64Flag{
	Name:  "mention-weight",
	Usage: "Trust weight of an @username mention",
	Value: 1.5,
}

var ThreadWeight = &cli.Float64Flag{
	Name:  "thread-weight",
	Usage: "Trust weight of co-participation in a thread, 0 disables the signal",
	Value: 0.5,
}

var RunsBack = &cli.IntFlag{
	Name:  "runs-back",
	Usage: "How many of the latest runs to aggregate when exporting",
	Value: 1,
}

var RawIDs = &cli.BoolFlag{
	Name:  "raw-ids",
	Usage: "Export numeric user ids instead of display names",
	Value: false,
}

var MembersOnly = &cli.BoolFlag{
	Name:  "members-only",
	Usage: "Exclude channel admins from the exported ranking",
	Value: false,
}
