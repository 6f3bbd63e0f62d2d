package runs

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"trustrank/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Next(ctx context.Context, channelID int64) (int64, error) {
	var latest int64
	err := r.DB.
		Model(&core.RunModel{}).
		WithContext(ctx).
		Where("channel_id = ?", channelID).
		Select("COALESCE(MAX(run_id), 0)").
		Scan(&latest).Error
	return latest + 1, err
}

// Ensure makes (channelID, runID) exist. Re-running an existing run
// updates its window but keeps created_at, so derived data can be
// overwritten in place.
func (r *Repository) Ensure(ctx context.Context, channelID, runID int64, daysBack int) (core.RunModel, error) {
	run := core.RunModel{
		ChannelID: channelID,
		RunID:     runID,
		DaysBack:  daysBack,
		CreatedAt: time.Now().UTC(),
	}

	err := r.DB.
		Model(&core.RunModel{}).
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel_id"}, {Name: "run_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"days_back"}),
		}).
		Create(&run).Error
	return run, err
}

func (r *Repository) Latest(ctx context.Context, channelID int64, n int) ([]int64, error) {
	var ids []int64
	err := r.DB.
		Model(&core.RunModel{}).
		WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("run_id DESC").
		Limit(n).
		Pluck("run_id", &ids).Error
	return ids, err
}
