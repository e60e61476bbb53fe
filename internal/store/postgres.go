package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradelens/analytics-engine/internal/model"
)

// PostgresStore implements Store using PostgreSQL as the source of truth.
// All monetary values are stored as NUMERIC for exact decimal precision.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) InsertTrade(ctx context.Context, t *model.Trade) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO trades (id, user_id, strategy_id, risk_level, outcome, win, trade_date)
		 VALUES ($1, $2, $3, $4, $5::NUMERIC, $6, $7)`,
		t.ID, t.UserID, t.StrategyID, string(t.RiskLevel),
		t.Outcome.String(), t.Win, t.TradeDate,
	)
	return err
}

func (s *PostgresStore) GetTradesByUser(ctx context.Context, userID string, since time.Time) ([]model.Trade, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, strategy_id, risk_level, outcome::TEXT, win, trade_date
		 FROM trades
		 WHERE user_id = $1 AND trade_date >= $2
		 ORDER BY trade_date`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

func (s *PostgresStore) GetTradesByStrategy(ctx context.Context, strategyID string, since time.Time) ([]model.Trade, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, strategy_id, risk_level, outcome::TEXT, win, trade_date
		 FROM trades
		 WHERE strategy_id = $1 AND trade_date >= $2
		 ORDER BY trade_date`, strategyID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// scanTrades reads pgx rows into Trade slices.
type pgxRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanTrades(rows pgxRows) ([]model.Trade, error) {
	trades := make([]model.Trade, 0)
	for rows.Next() {
		var t model.Trade
		var level, outcomeS string

		if err := rows.Scan(&t.ID, &t.UserID, &t.StrategyID, &level,
			&outcomeS, &t.Win, &t.TradeDate); err != nil {
			return nil, err
		}

		t.RiskLevel = model.RiskLevel(level)
		t.Outcome, _ = decimal.NewFromString(outcomeS)

		trades = append(trades, t)
	}
	return trades, rows.Err()
}
