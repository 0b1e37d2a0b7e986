package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"vxvideo-bot/internal/database/models"

	_ "modernc.org/sqlite"
)

// SQLiteStatsRepository implements StatsRepository on a local SQLite file.
type SQLiteStatsRepository struct {
	db *sql.DB
}

// NewSQLiteStatsRepository opens (creating if needed) the database at path.
func NewSQLiteStatsRepository(ctx context.Context, path string) (*SQLiteStatsRepository, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bot_stats (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			messages_handled INTEGER NOT NULL DEFAULT 0,
			media_downloaded INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStatsRepository{db: db}, nil
}

// LoadStats reads the single stats row. A missing row yields zero counters.
func (r *SQLiteStatsRepository) LoadStats(ctx context.Context) (models.BotStats, error) {
	var stats models.BotStats
	var updatedAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT messages_handled, media_downloaded, updated_at FROM bot_stats WHERE id = 1`,
	).Scan(&stats.MessagesHandled, &stats.MediaDownloaded, &updatedAt)
	if err == sql.ErrNoRows {
		return models.BotStats{}, nil
	}
	if err != nil {
		return models.BotStats{}, fmt.Errorf("failed to load stats: %w", err)
	}
	stats.UpdatedAt = time.Unix(updatedAt, 0)
	return stats, nil
}

// SaveStats upserts the single stats row.
func (r *SQLiteStatsRepository) SaveStats(ctx context.Context, stats models.BotStats) error {
	if stats.UpdatedAt.IsZero() {
		stats.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bot_stats (id, messages_handled, media_downloaded, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			messages_handled = excluded.messages_handled,
			media_downloaded = excluded.media_downloaded,
			updated_at = excluded.updated_at
	`, stats.MessagesHandled, stats.MediaDownloaded, stats.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (r *SQLiteStatsRepository) Close(_ context.Context) error {
	return r.db.Close()
}
