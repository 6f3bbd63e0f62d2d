package interactions

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"trustrank/internal/core"
)

// Repository reads the raw interaction records for one channel and
// window. It is the only read path of the pipeline; the crawler owns
// the write path.
type Repository struct {
	DB core.DB
}

func (r *Repository) Read(ctx context.Context, channelID int64, since time.Time) (core.Interactions, error) {
	var messages []core.MessageModel
	err := r.DB.
		Model(&core.MessageModel{}).
		WithContext(ctx).
		Where("channel_id = ? AND date >= ?", channelID, since).
		Order("id").
		Find(&messages).Error
	if err != nil {
		return core.Interactions{}, err
	}

	if len(messages) == 0 {
		return core.Interactions{}, fmt.Errorf("%w: channel %d", core.ErrDataUnavailable, channelID)
	}

	// Reactions to messages outside the window are discarded with it.
	messageIDs := lo.Map(messages, func(m core.MessageModel, _ int) int64 {
		return m.ID
	})

	var reactions []core.MessageReactionModel
	err = r.DB.
		Model(&core.MessageReactionModel{}).
		WithContext(ctx).
		Where("channel_id = ? AND message_id IN ?", channelID, messageIDs).
		Order("id").
		Find(&reactions).Error
	if err != nil {
		return core.Interactions{}, err
	}

	var directory []core.ChannelUserModel
	err = r.DB.
		Model(&core.ChannelUserModel{}).
		WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("user_id").
		Find(&directory).Error
	if err != nil {
		return core.Interactions{}, err
	}

	return core.Interactions{
		Messages:  messages,
		Reactions: reactions,
		Directory: directory,
	}, nil
}
