package models

import "time"

// BotStats holds the process-wide usage counters.
type BotStats struct {
	MessagesHandled int64     `bson:"messages_handled" json:"messages_handled"`
	MediaDownloaded int64     `bson:"media_downloaded" json:"media_downloaded"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
