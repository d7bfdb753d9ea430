package alerting

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/domain"
	"github.com/pbaches/stockwatch/internal/metrics"
	"github.com/pbaches/stockwatch/internal/notify"
	"github.com/pbaches/stockwatch/internal/quote"
	"github.com/pbaches/stockwatch/internal/repo"
)

// Evaluator runs one pass over the pending alerts: one quote fetch per
// distinct symbol, then a strict threshold compare per alert.
//
// Notifier and Metrics are optional; leave them nil to disable.
type Evaluator struct {
	Logger      *zap.Logger
	Store       repo.AlertStore
	Fetcher     quote.Fetcher
	Concurrency int

	Notifier notify.Notifier
	Metrics  *metrics.Metrics
}

func New(log *zap.Logger, store repo.AlertStore, fetcher quote.Fetcher, concurrency int) *Evaluator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Evaluator{
		Logger:      log,
		Store:       store,
		Fetcher:     fetcher,
		Concurrency: concurrency,
	}
}

// Run returns the alerts newly triggered by this pass. Alerts triggered in
// an earlier pass are excluded up front by the pending-set predicate.
//
// Failure policy: a store read failure degrades the whole pass to an empty
// result; a fetch failure for one symbol only skips that symbol's alerts,
// which stay pending for the next pass.
func (e *Evaluator) Run(ctx context.Context) []domain.Alert {
	if e.Metrics != nil {
		e.Metrics.EvaluationPasses.Inc()
	}

	pending, err := e.Store.ListPending(ctx)
	if err != nil {
		e.Logger.Warn("evaluate_list_error", zap.Error(err))
		return nil
	}
	if len(pending) == 0 {
		return nil
	}

	// One fetch per distinct symbol, no matter how many alerts share it.
	bySymbol := make(map[string][]domain.Alert)
	for _, a := range pending {
		bySymbol[a.Symbol] = append(bySymbol[a.Symbol], a)
	}
	quotes := e.fetchAll(ctx, bySymbol)

	now := time.Now().UTC()
	var triggered []domain.Alert
	for sym, alerts := range bySymbol {
		q := quotes[sym]
		if !q.HasPrice() {
			if e.Metrics != nil {
				e.Metrics.QuoteFailures.Inc()
			}
			e.Logger.Warn("evaluate_symbol_skipped",
				zap.String("symbol", sym),
				zap.Int("alerts", len(alerts)),
			)
			continue
		}
		price := *q.Price

		for _, a := range alerts {
			// Record the attempt whether or not it triggers.
			if err := e.Store.TouchChecked(ctx, a.ID); err != nil {
				e.Logger.Warn("evaluate_touch_error", zap.Int64("alert_id", a.ID), zap.Error(err))
			}
			if e.Metrics != nil {
				e.Metrics.AlertsChecked.Inc()
			}
			if !a.ShouldTrigger(price) {
				continue
			}
			if err := e.Store.MarkTriggered(ctx, a.ID); err != nil {
				e.Logger.Warn("evaluate_trigger_write_error", zap.Int64("alert_id", a.ID), zap.Error(err))
				continue
			}

			fired := a
			ts := now
			fired.TriggeredAt = &ts
			triggered = append(triggered, fired)

			if e.Metrics != nil {
				e.Metrics.AlertsTriggered.Inc()
			}
			e.Logger.Info("alert_triggered",
				zap.Int64("alert_id", a.ID),
				zap.String("symbol", a.Symbol),
				zap.String("condition", string(a.Condition)),
				zap.Float64("target", a.TargetPrice),
				zap.Float64("price", price),
			)
			if e.Notifier != nil {
				title, text := notify.AlertMessage(fired, q)
				if err := e.Notifier.Send(ctx, title, text); err != nil {
					e.Logger.Warn("alert_notify_error", zap.Int64("alert_id", a.ID), zap.Error(err))
				}
			}
		}
	}
	return triggered
}

// fetchAll fans out one fetch per symbol, bounded by Concurrency, and
// waits for every fetch before returning.
func (e *Evaluator) fetchAll(ctx context.Context, bySymbol map[string][]domain.Alert) map[string]domain.Quote {
	quotes := make(map[string]domain.Quote, len(bySymbol))
	var mu sync.Mutex
	sem := make(chan struct{}, e.Concurrency)
	var wg sync.WaitGroup

	for sym := range bySymbol {
		s := sym
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			if e.Metrics != nil {
				e.Metrics.QuoteFetches.Inc()
			}
			q := e.Fetcher.Fetch(ctx, s)
			mu.Lock()
			quotes[s] = q
			mu.Unlock()
		}()
	}
	wg.Wait()
	return quotes
}
