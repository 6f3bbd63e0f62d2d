package seeds

import (
	"context"

	"github.com/samber/lo"

	"trustrank/internal/core"
)

type Repository struct {
	DB core.DB
}

// Replace drops the run's previous seed and writes the new one, so a
// re-run with the same run id overwrites deterministically.
func (r *Repository) Replace(ctx context.Context, channelID, runID int64, seed core.SeedVector) error {
	err := r.DB.
		Model(&core.SeedModel{}).
		WithContext(ctx).
		Where("channel_id = ? AND run_id = ?", channelID, runID).
		Delete(&core.SeedModel{}).Error
	if err != nil {
		return err
	}

	if len(seed) == 0 {
		return nil
	}

	models := lo.Map(seed, func(w core.SeedWeight, _ int) core.SeedModel {
		return core.SeedModel{
			ChannelID: channelID,
			RunID:     runID,
			UserID:    w.UserID,
			Value:     w.Weight,
		}
	})

	return r.DB.Model(&core.SeedModel{}).WithContext(ctx).Create(&models).Error
}
