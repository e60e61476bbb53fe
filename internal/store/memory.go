package store

import (
	"context"
	"sync"
	"time"

	"github.com/tradelens/analytics-engine/internal/model"
)

// MemoryStore implements Store with an in-memory slice. Used for testing
// and development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu     sync.RWMutex
	trades []model.Trade
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertTrade(_ context.Context, t *model.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = append(s.trades, *t)
	return nil
}

func (s *MemoryStore) GetTradesByUser(_ context.Context, userID string, since time.Time) ([]model.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Trade, 0)
	for _, t := range s.trades {
		if t.UserID == userID && !t.TradeDate.Before(since) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *MemoryStore) GetTradesByStrategy(_ context.Context, strategyID string, since time.Time) ([]model.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Trade, 0)
	for _, t := range s.trades {
		if t.StrategyID == strategyID && !t.TradeDate.Before(since) {
			result = append(result, t)
		}
	}
	return result, nil
}
