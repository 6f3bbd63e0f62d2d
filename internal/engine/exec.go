package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"trustrank/internal/config"
	"trustrank/internal/core"
)

// ExecAdapter bridges to the external propagation engine: it writes the
// run's edge and seed files, invokes the binary and parses the score
// file back. It holds no state between invocations; two channels never
// touch the same files because every path is keyed by channel and run.
type ExecAdapter struct {
	Logger *slog.Logger
	Config *config.Config
}

func (a *ExecAdapter) Init(_ context.Context) error {
	a.Logger = a.Logger.With("component", "engine")

	for _, dir := range []string{"trust", "seed", "scores"} {
		if err := os.MkdirAll(filepath.Join(a.Config.Workdir, dir), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (a *ExecAdapter) Compute(ctx context.Context, graph core.Graph, seed core.SeedVector, params core.EngineParams) ([]core.RawScore, error) {
	edgesPath := a.runFile("trust", params)
	seedPath := a.runFile("seed", params)
	outputPath := a.runFile("scores", params)

	if err := writeFile(edgesPath, func(f *os.File) error { return writeEdges(f, graph.Edges) }); err != nil {
		return nil, err
	}
	if err := writeFile(seedPath, func(f *os.File) error { return writeSeed(f, seed) }); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, a.Config.EngineBin,
		"-edges", edgesPath,
		"-seed", seedPath,
		"-output", outputPath,
		"-alpha", formatValue(params.Alpha),
		"-delta", formatValue(params.Delta),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	a.Logger.Debug("invoking engine",
		"channel_id", params.ChannelID, "run_id", params.RunID,
		"edges", len(graph.Edges), "seed_users", len(seed))

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", core.ErrEngineFailure, detail)
	}

	f, err := os.Open(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: no output file: %s", core.ErrEngineFailure, outputPath)
	}
	defer f.Close()

	scores, err := parseScores(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrEngineFailure, err)
	}
	return scores, nil
}

func (a *ExecAdapter) runFile(kind string, params core.EngineParams) string {
	name := strconv.FormatInt(params.ChannelID, 10) + "_" + strconv.FormatInt(params.RunID, 10) + ".csv"
	return filepath.Join(a.Config.Workdir, kind, name)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
