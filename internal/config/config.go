package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config enumerates every knob of the pipeline. Flag-tagged fields are
// bound from the CLI by clicfg, the rest come from the environment.
type Config struct {
	// Postgresql
	DATABASE_URL string `envconfig:"DATABASE_URL"`

	LogLevel string `flag:"log-level"`

	// Workdir holds the per-channel trust/, seed/, scores/ and output/
	// files exchanged with the engine.
	Workdir string `flag:"workdir"`

	EngineBin        string  `flag:"engine-bin"`
	EngineTimeoutSec int     `flag:"engine-timeout"`
	Alpha            float64 `flag:"alpha"`
	Delta            float64 `flag:"delta"`

	DaysBack    int    `flag:"days-back"`
	RunID       int64  `flag:"run-id"`
	Concurrency int    `flag:"concurrency"`
	Channels    string `flag:"channels"`
	SeedUsers   string `flag:"seed-users"`

	ReplyWeight    float64 `flag:"reply-weight"`
	ReactionWeight float64 `flag:"reaction-weight"`
	MentionWeight  float64 `flag:"mention-weight"`
	ThreadWeight   float64 `flag:"thread-weight"`

	RunsBack    int  `flag:"runs-back"`
	RawIDs      bool `flag:"raw-ids"`
	MembersOnly bool `flag:"members-only"`
}

func (c *Config) Init(_ context.Context) error {
	err := envconfig.Process("trustrank", c)
	return err
}

func (c *Config) EngineTimeout() time.Duration {
	return time.Duration(c.EngineTimeoutSec) * time.Second
}

// ChannelIDs parses the --channels restriction. Empty means all known
// channels.
func (c *Config) ChannelIDs() ([]int64, error) {
	return parseIDList(c.Channels)
}

// SeedUserIDs parses the explicit seed override. Empty means seed on
// channel admins.
func (c *Config) SeedUserIDs() ([]int64, error) {
	return parseIDList(c.SeedUsers)
}

func parseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id list %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
