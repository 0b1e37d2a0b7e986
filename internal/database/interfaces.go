package database

import (
	"context"
	"vxvideo-bot/internal/database/models"
)

// StatsRepository defines the interface for persisting bot statistics.
type StatsRepository interface {
	// LoadStats returns the stored counters, or zero values if nothing was stored yet.
	LoadStats(ctx context.Context) (models.BotStats, error)
	// SaveStats overwrites the stored counters.
	SaveStats(ctx context.Context, stats models.BotStats) error
	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
