package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vxvideo-bot/internal/config"
)

// ErrRepositoryClosed is returned when a repository is used after Close.
var ErrRepositoryClosed = errors.New("stats repository closed")

// OpenStatsRepository opens the stats backend selected by cfg.StatsStore.
func OpenStatsRepository(ctx context.Context, cfg *config.Config) (StatsRepository, error) {
	switch cfg.StatsStore {
	case config.StatsStoreSQLite:
		repo, err := NewSQLiteStatsRepository(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Printf("Using SQLite stats store at %s", cfg.SQLitePath)
		return repo, nil
	case config.StatsStoreMongo:
		client, db, err := ConnectDB(ctx, cfg.MongoDBURI, cfg.MongoDBDatabase)
		if err != nil {
			return nil, err
		}
		log.Printf("Using MongoDB stats store in database %s", cfg.MongoDBDatabase)
		return NewMongoStatsRepository(client, db), nil
	case config.StatsStoreMemory:
		log.Println("Using in-memory stats store")
		return NewMemoryStatsRepository(), nil
	default:
		return nil, fmt.Errorf("unknown stats store %q", cfg.StatsStore)
	}
}
