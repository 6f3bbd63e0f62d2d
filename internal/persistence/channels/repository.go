package channels

import (
	"context"

	"trustrank/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) List(ctx context.Context) ([]core.ChannelModel, error) {
	var channels []core.ChannelModel
	err := r.DB.
		Model(&core.ChannelModel{}).
		WithContext(ctx).
		Order("channel_id").
		Find(&channels).Error
	return channels, err
}

func (r *Repository) Directory(ctx context.Context, channelID int64) ([]core.ChannelUserModel, error) {
	var users []core.ChannelUserModel
	err := r.DB.
		Model(&core.ChannelUserModel{}).
		WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("user_id").
		Find(&users).Error
	return users, err
}
