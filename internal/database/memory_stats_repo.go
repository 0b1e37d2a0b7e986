package database

import (
	"context"
	"sync"
	"vxvideo-bot/internal/database/models"
)

// MemoryStatsRepository keeps stats in process memory only.
type MemoryStatsRepository struct {
	mu     sync.Mutex
	stats  models.BotStats
	saves  int
	closed bool
}

// NewMemoryStatsRepository creates an empty in-memory repository.
func NewMemoryStatsRepository() *MemoryStatsRepository {
	return &MemoryStatsRepository{}
}

func (r *MemoryStatsRepository) LoadStats(_ context.Context) (models.BotStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return models.BotStats{}, ErrRepositoryClosed
	}
	return r.stats, nil
}

func (r *MemoryStatsRepository) SaveStats(_ context.Context, stats models.BotStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRepositoryClosed
	}
	r.stats = stats
	r.saves++
	return nil
}

// Saves reports how many times SaveStats succeeded.
func (r *MemoryStatsRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *MemoryStatsRepository) Close(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
