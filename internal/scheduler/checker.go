package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/domain"
)

// Runner is one alert evaluation pass (see alerting.Evaluator).
type Runner interface {
	Run(ctx context.Context) []domain.Alert
}

// Loop re-runs alert evaluation on a fixed interval. The dashboard's
// page-load check stays the primary trigger; the loop covers deployments
// where nobody opens the page for a while. Interval 0 disables it, which
// is the default.
type Loop struct {
	Logger    *zap.Logger
	Evaluator Runner
	Interval  time.Duration
}

func NewLoop(log *zap.Logger, ev Runner, interval time.Duration) *Loop {
	if interval < 0 {
		interval = 0
	}
	return &Loop{Logger: log, Evaluator: ev, Interval: interval}
}

// Run does an immediate pass, then one per tick. Stops when ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	if l.Interval == 0 {
		l.Logger.Info("check_loop_disabled")
		return
	}
	t := time.NewTicker(l.Interval)
	defer t.Stop()

	l.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			l.Logger.Info("check_loop_stopped")
			return
		case <-t.C:
			l.runOnce(ctx)
		}
	}
}

func (l *Loop) runOnce(ctx context.Context) {
	triggered := l.Evaluator.Run(ctx)
	if len(triggered) > 0 {
		l.Logger.Info("check_loop_triggered", zap.Int("count", len(triggered)))
	}
}
