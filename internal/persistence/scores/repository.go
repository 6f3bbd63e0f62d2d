package scores

import (
	"context"

	"github.com/samber/lo"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"trustrank/internal/core"
)

const insertBatchSize = 500

type Repository struct {
	DB core.DB
}

// Replace drops the run's previous scores and inserts the new vector in
// batches.
func (r *Repository) Replace(ctx context.Context, channelID, runID int64, scores []core.RawScore) error {
	err := r.DB.
		Model(&core.ScoreModel{}).
		WithContext(ctx).
		Where("channel_id = ? AND run_id = ?", channelID, runID).
		Delete(&core.ScoreModel{}).Error
	if err != nil {
		return err
	}

	models := lo.Map(scores, func(s core.RawScore, _ int) core.ScoreModel {
		return core.ScoreModel{
			ChannelID: channelID,
			RunID:     runID,
			UserID:    s.UserID,
			Value:     s.Value,
		}
	})

	return insertBatched(ctx, models, func(ctx context.Context, batch []core.ScoreModel) error {
		return r.DB.Model(&core.ScoreModel{}).WithContext(ctx).Create(&batch).Error
	})
}

// insertBatched streams the models through a batching pipeline so large
// score vectors turn into a bounded number of inserts.
func insertBatched(ctx context.Context, models []core.ScoreModel, insert func(context.Context, []core.ScoreModel) error) error {
	input := lo.SliceToChannel(0, lo.Map(models, func(m core.ScoreModel, _ int) pips.D[core.ScoreModel] {
		return pips.NewD(m)
	}))

	return pips.New[core.ScoreModel, any]().
		Then(apply.Batch[core.ScoreModel](insertBatchSize)).
		Then(
			apply.Map(func(ctx context.Context, batch []core.ScoreModel) (any, error) {
				return nil, insert(ctx, batch)
			}),
		).
		Run(ctx, input).
		Wait(ctx)
}

// ForRuns returns the raw per-run rows; summing across runs is the
// aggregator's job.
func (r *Repository) ForRuns(ctx context.Context, channelID int64, runIDs []int64) ([]core.RawScore, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}

	var models []core.ScoreModel
	err := r.DB.
		Model(&core.ScoreModel{}).
		WithContext(ctx).
		Where("channel_id = ? AND run_id IN ?", channelID, runIDs).
		Order("run_id, user_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(models, func(m core.ScoreModel, _ int) core.RawScore {
		return core.RawScore{UserID: m.UserID, Value: m.Value}
	}), nil
}
