package database

import (
	"context"
	"path/filepath"
	"testing"

	"vxvideo-bot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStatsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("SQLite", func(t *testing.T) {
		cfg := &config.Config{StatsStore: config.StatsStoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "stats.db")}

		repo, err := OpenStatsRepository(ctx, cfg)

		require.NoError(t, err)
		assert.IsType(t, &SQLiteStatsRepository{}, repo)
		require.NoError(t, repo.Close(ctx))
	})

	t.Run("Memory", func(t *testing.T) {
		repo, err := OpenStatsRepository(ctx, &config.Config{StatsStore: config.StatsStoreMemory})

		require.NoError(t, err)
		assert.IsType(t, &MemoryStatsRepository{}, repo)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := OpenStatsRepository(ctx, &config.Config{StatsStore: "redis"})

		assert.Error(t, err)
	})
}
