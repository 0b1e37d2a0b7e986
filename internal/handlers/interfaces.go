package handlers

import (
	"context"

	"vxvideo-bot/internal/database/models"
	"vxvideo-bot/internal/tweets"
)

// PipelineInterface turns message text into reply actions, handing each one to emit as soon as it is ready.
type PipelineInterface interface {
	Stream(ctx context.Context, text string, emit func(tweets.ReplyAction))
}

// StatsInterface exposes the counters to the stats commands.
type StatsInterface interface {
	Snapshot() models.BotStats
	Reset(ctx context.Context) error
}
