package core

import "time"

// ChannelModel is a crawled channel the pipeline can rank.
type ChannelModel struct {
	ChannelID   int64 `gorm:"primaryKey"`
	Name        string
	Username    string
	IsGroup     bool
	MemberCount int
}

func (ChannelModel) TableName() string {
	return "channels"
}

// ChannelUserModel is a directory entry for one participant of a channel.
type ChannelUserModel struct {
	ChannelID int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey"`
	Username  string
	FirstName string
	LastName  string
	IsAdmin   bool
}

func (ChannelUserModel) TableName() string {
	return "channel_users"
}

// MessageModel is a raw crawled message. A zero FromID marks an
// anonymous channel announcement.
type MessageModel struct {
	ChannelID    int64 `gorm:"primaryKey"`
	ID           int64 `gorm:"primaryKey"`
	Date         time.Time
	FromID       int64
	Message      string
	ReplyToMsgID *int64
}

func (MessageModel) TableName() string {
	return "messages"
}

type MessageReactionModel struct {
	ID        int64 `gorm:"primaryKey"`
	ChannelID int64
	MessageID int64
	UserID    int64
	Emoji     string
	Date      time.Time
}

func (MessageReactionModel) TableName() string {
	return "message_reactions"
}

// RunModel scopes one pipeline execution: its time window and the
// derived seeds/scores keyed by (channel_id, run_id).
type RunModel struct {
	ChannelID int64 `gorm:"primaryKey"`
	RunID     int64 `gorm:"primaryKey"`
	DaysBack  int
	CreatedAt time.Time
}

func (RunModel) TableName() string {
	return "runs"
}

type SeedModel struct {
	ChannelID int64 `gorm:"primaryKey"`
	RunID     int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey"`
	Value     float64
}

func (SeedModel) TableName() string {
	return "seeds"
}

type ScoreModel struct {
	ChannelID int64 `gorm:"primaryKey"`
	RunID     int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey"`
	Value     float64
}

func (ScoreModel) TableName() string {
	return "scores"
}
