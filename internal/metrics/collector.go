package metrics

import (
	"context"
	"log/slog"
	"time"

	"trustrank/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm/schema"
)

var (
	tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "trustrank_table_estimated_count",
		Help: "Estimated record count for a table.",
	}, []string{"table"})
)

// Collector samples table sizes while a batch is running. It is not a
// standalone runner: the supervisor starts it scoped to the batch and
// cancels it when the batch finishes, so the process can exit.
type Collector struct {
	Logger *slog.Logger
	DB     core.DB

	Interval time.Duration
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")

	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
	return nil
}

// Collect ticks until the context is cancelled.
func (c *Collector) Collect(ctx context.Context) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	tables := []schema.Tabler{
		core.MessageModel{},
		core.MessageReactionModel{},
		core.ScoreModel{},
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, table := range tables {
				if err := c.collectTableEstimatedCount(table); err != nil {
					return err
				}
			}
		}
	}
}

func (c *Collector) collectTableEstimatedCount(tabler schema.Tabler) error {
	count, err := c.DB.EstimatedCount(tabler.TableName())
	if err != nil {
		return err
	}
	tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	return nil
}
