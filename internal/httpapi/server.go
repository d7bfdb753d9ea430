package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/domain"
	apimw "github.com/pbaches/stockwatch/internal/httpapi/middleware"
	"github.com/pbaches/stockwatch/internal/quote"
	"github.com/pbaches/stockwatch/internal/repo"
)

// Evaluator is one alert evaluation pass (see alerting.Evaluator).
type Evaluator interface {
	Run(ctx context.Context) []domain.Alert
}

type Server struct {
	Logger    *zap.Logger
	Alerts    repo.AlertStore
	Quotes    quote.Fetcher
	Evaluator Evaluator
	Watchlist []string

	FetchConcurrency int
	AllowedOrigins   []string // empty = allow all
	RateLimitRPM     int      // 0 disables
	RateLimitBurst   int
}

func NewServer(l *zap.Logger, store repo.AlertStore, fetcher quote.Fetcher, ev Evaluator, watchlist []string) *Server {
	return &Server{
		Logger:           l,
		Alerts:           store,
		Quotes:           fetcher,
		Evaluator:        ev,
		Watchlist:        watchlist,
		FetchConcurrency: 4,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}))
	} else {
		r.Use(cors.AllowAll().Handler)
	}
	r.Use(apimw.RateLimit(s.RateLimitRPM, s.RateLimitBurst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/api/stocks", s.handleDashboard)
	r.Get("/api/stocks/{symbol}", s.handleStockDetail)

	r.Get("/api/alerts", s.handleListAlerts)
	r.Post("/api/alerts", s.handleCreateAlert)
	r.Post("/api/alerts/check", s.handleCheckAlerts)
	r.Post("/api/alerts/{id}/dismiss", s.handleDismissAlert)

	return r
}

// ---- stocks ----

// handleDashboard returns one fail-soft quote per watch-list symbol,
// fetched concurrently, in the configured order.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := make([]domain.Quote, len(s.Watchlist))

	conc := s.FetchConcurrency
	if conc < 1 {
		conc = 1
	}
	sem := make(chan struct{}, conc)
	var wg sync.WaitGroup
	for i, sym := range s.Watchlist {
		i, sym := i, sym
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			out[i] = s.Quotes.Fetch(ctx, sym)
		}()
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, out)
}

type stockDetail struct {
	domain.Quote
	// Presentation-only labels; nothing downstream consumes them.
	Recommendation  string `json:"recommendation"`
	TradingStrategy string `json:"trading_strategy"`
}

func (s *Server) handleStockDetail(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "missing symbol")
		return
	}

	q := s.Quotes.Fetch(r.Context(), symbol)
	writeJSON(w, http.StatusOK, stockDetail{
		Quote:           q,
		Recommendation:  recommendation(q),
		TradingStrategy: tradingStrategy(q),
	})
}

func recommendation(q domain.Quote) string {
	switch {
	case q.Change != nil && *q.Change > 0:
		return "Compra"
	case q.Change != nil && *q.Change < 0:
		return "Venda"
	}
	return "Neutro"
}

// tradingStrategy flags volatile sessions: a high-low range wider than 2%
// of the latest price reads as a day-trade candidate.
func tradingStrategy(q domain.Quote) string {
	if q.High != nil && q.Low != nil && q.Price != nil && *q.Price != 0 {
		if (*q.High-*q.Low) / *q.Price > 0.02 {
			return "Day Trade"
		}
	}
	return "Buy & Hold"
}

// ---- alerts ----

type createAlertPayload struct {
	Symbol      string  `json:"symbol"`
	TargetPrice float64 `json:"target_price"`
	Condition   string  `json:"condition"`
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var p createAlertPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(p.Symbol))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if p.TargetPrice <= 0 {
		writeError(w, http.StatusBadRequest, "target_price must be positive")
		return
	}
	cond, err := domain.ParseCondition(p.Condition)
	if err != nil {
		writeError(w, http.StatusBadRequest, "condition must be ABOVE or BELOW")
		return
	}

	a, err := s.Alerts.Create(r.Context(), symbol, p.TargetPrice, cond)
	if err != nil {
		s.Logger.Error("create_alert_error", zap.String("symbol", symbol), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create alert")
		return
	}

	s.Logger.Info("alert_created",
		zap.Int64("alert_id", a.ID),
		zap.String("symbol", a.Symbol),
		zap.String("condition", string(a.Condition)),
		zap.Float64("target", a.TargetPrice),
	)
	writeJSON(w, http.StatusCreated, a)
}

// handleListAlerts swallows read failures: the dashboard must stay
// renderable, so a broken store shows as an empty list, not a 5xx.
func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.Alerts.ListActive(r.Context())
	if err != nil {
		s.Logger.Warn("list_alerts_error", zap.Error(err))
		alerts = nil
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// handleCheckAlerts is the page-load hook: one evaluation pass, returning
// only the alerts that triggered during this pass.
func (s *Server) handleCheckAlerts(w http.ResponseWriter, r *http.Request) {
	triggered := s.Evaluator.Run(r.Context())
	if triggered == nil {
		triggered = []domain.Alert{}
	}
	writeJSON(w, http.StatusOK, triggered)
}

func (s *Server) handleDismissAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad alert id")
		return
	}

	switch err := s.Alerts.Deactivate(r.Context(), id); {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "alert not found")
	case err != nil:
		s.Logger.Error("dismiss_alert_error", zap.Int64("alert_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update alert")
	default:
		s.Logger.Info("alert_dismissed", zap.Int64("alert_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
