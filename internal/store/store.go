// Package store defines the persistence interface for the analytics engine.
// Implementations include PostgreSQL (source of truth), Redis (read-through
// cache), and in-memory (for testing).
package store

import (
	"context"
	"time"

	"github.com/tradelens/analytics-engine/internal/model"
)

// Store is the trade persistence interface. The analytics core treats it as
// a read-only queryable collection; only ingestion writes to it.
type Store interface {
	// InsertTrade appends a normalized trade record.
	InsertTrade(ctx context.Context, trade *model.Trade) error

	// GetTradesByUser returns all trades for a user with a trade date at or
	// after since. No upper bound on the trade date. An empty result is a
	// valid empty slice, never an error.
	GetTradesByUser(ctx context.Context, userID string, since time.Time) ([]model.Trade, error)

	// GetTradesByStrategy returns all trades for a strategy label with a
	// trade date at or after since.
	GetTradesByStrategy(ctx context.Context, strategyID string, since time.Time) ([]model.Trade, error)
}
