package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tradelens/analytics-engine/internal/model"
)

// CachedStore wraps a primary Store (PostgreSQL) with a Redis read-through
// cache on the per-user trade window. Ingestion writes go to the primary
// store and invalidate the user's cached window; reads check Redis first
// then fall back to the primary.
//
// The cache key ignores the window lower bound: every caller queries the
// same fixed trailing window, and the TTL bounds how far a cached window's
// effective "now" can lag behind.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

func (s *CachedStore) InsertTrade(ctx context.Context, t *model.Trade) error {
	if err := s.primary.InsertTrade(ctx, t); err != nil {
		return err
	}
	// Invalidate this user's window; next read re-populates.
	s.rdb.Del(ctx, userTradesKey(t.UserID))
	return nil
}

func (s *CachedStore) GetTradesByUser(ctx context.Context, userID string, since time.Time) ([]model.Trade, error) {
	// Try cache. A hit may have been stored under an earlier "now", so the
	// caller's window bound is re-applied before returning.
	data, err := s.rdb.Get(ctx, userTradesKey(userID)).Bytes()
	if err == nil {
		var trades []model.Trade
		if json.Unmarshal(data, &trades) == nil {
			return tradesSince(trades, since), nil
		}
	}

	// Cache miss: read from primary.
	trades, err := s.primary.GetTradesByUser(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(trades); err == nil {
		s.rdb.Set(ctx, userTradesKey(userID), data, s.ttl)
	}
	return trades, nil
}

// GetTradesByStrategy is not cached: strategy listings are an operator
// surface, not on the per-request report path.
func (s *CachedStore) GetTradesByStrategy(ctx context.Context, strategyID string, since time.Time) ([]model.Trade, error) {
	return s.primary.GetTradesByStrategy(ctx, strategyID, since)
}

// tradesSince filters a cached window down to trades dated at or after
// since. Inclusive lower bound, no upper bound, matching the primary query.
func tradesSince(trades []model.Trade, since time.Time) []model.Trade {
	result := make([]model.Trade, 0, len(trades))
	for _, t := range trades {
		if !t.TradeDate.Before(since) {
			result = append(result, t)
		}
	}
	return result
}

func userTradesKey(userID string) string { return fmt.Sprintf("trades:user:%s", userID) }
