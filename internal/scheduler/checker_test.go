package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/domain"
)

type countingRunner struct {
	mu sync.Mutex
	n  int
}

func (c *countingRunner) Run(context.Context) []domain.Alert {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
	return nil
}

func (c *countingRunner) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestLoop_RunsImmediatelyThenOnTicks(t *testing.T) {
	r := &countingRunner{}
	l := NewLoop(zap.NewNop(), r, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
	defer cancel()
	l.Run(ctx)

	if got := r.count(); got < 2 {
		t.Fatalf("want immediate pass plus at least one tick, got %d", got)
	}
}

func TestLoop_ZeroIntervalDisabled(t *testing.T) {
	r := &countingRunner{}
	l := NewLoop(zap.NewNop(), r, 0)

	done := make(chan struct{})
	go func() {
		l.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("disabled loop should return immediately")
	}
	if r.count() != 0 {
		t.Fatalf("disabled loop must not run passes, got %d", r.count())
	}
}
