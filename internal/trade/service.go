// Package trade provides the HTTP handlers for trade ingestion and the
// strategy-optimization report.
//
// All monetary values use shopspring/decimal — never float64 for money.
package trade

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradelens/analytics-engine/internal/account"
	"github.com/tradelens/analytics-engine/internal/analytics"
	"github.com/tradelens/analytics-engine/internal/metrics"
	"github.com/tradelens/analytics-engine/internal/model"
	"github.com/tradelens/analytics-engine/internal/store"
)

// Service handles trade ingestion and report generation. Requests are
// independent and stateless: every report is computed fresh from the store,
// so no locking or cross-request coordination is needed.
type Service struct {
	store store.Store
	wsHub *WSHub // optional WebSocket hub for real-time broadcasts
}

// NewService creates a new trade service.
// Pass nil for hub if WebSocket broadcasting is not needed.
func NewService(st store.Store, hub *WSHub) *Service {
	return &Service{
		store: st,
		wsHub: hub,
	}
}

// --- Request types ---

// IngestTradeRequest is the JSON body for POST /api/trades: a normalized
// trade record from a broker adapter or direct entry.
type IngestTradeRequest struct {
	UserID     string          `json:"userId"`
	StrategyID string          `json:"strategyId"`
	RiskLevel  model.RiskLevel `json:"riskLevel"`
	Outcome    decimal.Decimal `json:"outcome"`
	Win        bool            `json:"win"`
	TradeDate  time.Time       `json:"tradeDate"` // zero → server time
}

// --- HTTP Handlers ---

// OptimizeStrategies handles GET /api/strategies/optimize/{userID}
// Builds the per-user strategy-optimization report over the trailing
// 30-day window.
func (s *Service) OptimizeStrategies(w http.ResponseWriter, r *http.Request) {
	userID, err := account.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, "Invalid userId", http.StatusBadRequest)
		return
	}

	since := analytics.WindowStart(time.Now().UTC())
	trades, err := s.store.GetTradesByUser(r.Context(), userID, since)
	if err != nil {
		slog.Error("trade query failed", "user", userID, "err", err)
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	report := analytics.BuildReport(userID, trades)

	metrics.ReportsGenerated.Inc()
	metrics.ReportTradesAnalyzed.Observe(float64(len(trades)))
	for _, sg := range report.Suggestions {
		metrics.SuggestionsEmitted.WithLabelValues(suggestionRule(sg)).Inc()
	}

	slog.Info("optimization report generated",
		"user", userID,
		"trades", len(trades),
		"underperforming", len(report.UnderperformingStrategies),
		"suggestions", len(report.Suggestions),
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// IngestTrade handles POST /api/trades
// Accepts one normalized trade record and appends it to the store.
func (s *Service) IngestTrade(w http.ResponseWriter, r *http.Request) {
	var req IngestTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// --- Input validation ---
	userID, err := account.ParseUserID(req.UserID)
	if err != nil {
		writeError(w, "Invalid userId", http.StatusBadRequest)
		return
	}
	if req.StrategyID == "" {
		writeError(w, "strategyId is required", http.StatusBadRequest)
		return
	}
	switch req.RiskLevel {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
	default:
		writeError(w, "riskLevel must be low, medium, or high", http.StatusBadRequest)
		return
	}

	tradeDate := req.TradeDate
	if tradeDate.IsZero() {
		tradeDate = time.Now().UTC()
	}

	entry := &model.Trade{
		ID:         uuid.New().String(),
		UserID:     userID,
		StrategyID: req.StrategyID,
		RiskLevel:  req.RiskLevel,
		Outcome:    req.Outcome,
		Win:        req.Win,
		TradeDate:  tradeDate,
	}

	if err := s.store.InsertTrade(r.Context(), entry); err != nil {
		slog.Error("trade insert failed", "user", userID, "err", err)
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	metrics.TradesIngested.WithLabelValues(string(entry.RiskLevel)).Inc()

	slog.Info("trade recorded",
		"trade_id", entry.ID,
		"user", userID,
		"strategy", entry.StrategyID,
		"risk", string(entry.RiskLevel),
		"outcome", entry.Outcome.String(),
		"win", entry.Win,
	)

	if s.wsHub != nil {
		s.wsHub.Broadcast(WSMessage{
			Type:       "trade_recorded",
			TradeID:    entry.ID,
			UserID:     entry.UserID,
			StrategyID: entry.StrategyID,
			RiskLevel:  string(entry.RiskLevel),
			Outcome:    entry.Outcome.String(),
			Win:        entry.Win,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// ListTrades handles GET /api/trades/{userID}
// Returns the user's trades inside the current analysis window.
func (s *Service) ListTrades(w http.ResponseWriter, r *http.Request) {
	userID, err := account.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, "Invalid userId", http.StatusBadRequest)
		return
	}

	since := analytics.WindowStart(time.Now().UTC())
	trades, err := s.store.GetTradesByUser(r.Context(), userID, since)
	if err != nil {
		slog.Error("trade query failed", "user", userID, "err", err)
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trades)
}

// ListStrategyTrades handles GET /api/strategies/{strategyID}/trades
// Returns all trades recorded under one strategy label inside the window.
func (s *Service) ListStrategyTrades(w http.ResponseWriter, r *http.Request) {
	strategyID := chi.URLParam(r, "strategyID")

	since := analytics.WindowStart(time.Now().UTC())
	trades, err := s.store.GetTradesByStrategy(r.Context(), strategyID, since)
	if err != nil {
		slog.Error("strategy query failed", "strategy", strategyID, "err", err)
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trades)
}

// suggestionRule maps an advisory line back to its rule label for metrics.
func suggestionRule(s string) string {
	switch {
	case strings.HasPrefix(s, "Refine"):
		return "refine_strategy"
	case strings.HasPrefix(s, "Increase"):
		return "increase_low_risk_size"
	case strings.HasPrefix(s, "Reduce"):
		return "reduce_high_risk_exposure"
	default:
		return "other"
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
