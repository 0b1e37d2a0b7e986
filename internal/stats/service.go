package stats

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
	"vxvideo-bot/internal/database"
	"vxvideo-bot/internal/database/models"
)

const flushTimeout = 5 * time.Second

// Service owns the bot's usage counters. Increments are lock-free;
// the repository only sees periodic snapshots.
type Service struct {
	repo database.StatsRepository

	messagesHandled atomic.Int64
	mediaDownloaded atomic.Int64
	dirty           atomic.Bool

	mu sync.Mutex // serializes Flush and Reset
}

// NewService loads the persisted counters from repo.
func NewService(ctx context.Context, repo database.StatsRepository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository cannot be nil")
	}
	stored, err := repo.LoadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	s := &Service{repo: repo}
	s.messagesHandled.Store(stored.MessagesHandled)
	s.mediaDownloaded.Store(stored.MediaDownloaded)
	log.Printf("[Stats] Loaded counters: messages_handled=%d media_downloaded=%d", stored.MessagesHandled, stored.MediaDownloaded)
	return s, nil
}

// IncMessagesHandled counts one processed message.
func (s *Service) IncMessagesHandled() {
	s.messagesHandled.Add(1)
	s.dirty.Store(true)
}

// IncMediaDownloaded counts one sent video link.
func (s *Service) IncMediaDownloaded() {
	s.mediaDownloaded.Add(1)
	s.dirty.Store(true)
}

// Snapshot returns the current counter values.
func (s *Service) Snapshot() models.BotStats {
	return models.BotStats{
		MessagesHandled: s.messagesHandled.Load(),
		MediaDownloaded: s.mediaDownloaded.Load(),
	}
}

// Reset sets both counters to zero and persists immediately.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messagesHandled.Store(0)
	s.mediaDownloaded.Store(0)
	s.dirty.Store(true)
	return s.flushLocked(ctx)
}

// Flush persists the counters if they changed since the last flush.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

func (s *Service) flushLocked(ctx context.Context) error {
	if !s.dirty.Swap(false) {
		return nil
	}
	snapshot := s.Snapshot()
	snapshot.UpdatedAt = time.Now()
	if err := s.repo.SaveStats(ctx, snapshot); err != nil {
		s.dirty.Store(true)
		return fmt.Errorf("failed to persist stats: %w", err)
	}
	return nil
}

// Run flushes every interval until ctx is done, then performs a final flush.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			if err := s.Flush(flushCtx); err != nil {
				log.Printf("[Stats] Final flush failed: %v", err)
			} else {
				log.Println("[Stats] Final flush complete.")
			}
			cancel()
			return
		case <-ticker.C:
			flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
			if err := s.Flush(flushCtx); err != nil {
				log.Printf("[Stats] Periodic flush failed: %v", err)
			}
			cancel()
		}
	}
}
