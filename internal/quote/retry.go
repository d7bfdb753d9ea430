package quote

import (
	"context"
	"time"

	"github.com/pbaches/stockwatch/internal/domain"
)

// RetryFetcher re-fetches when a pass yields no usable price. With
// Attempts <= 1 it is a plain pass-through, which is the default: the
// on-demand evaluation path relies on the next page load as its retry.
type RetryFetcher struct {
	Inner    Fetcher
	Attempts int
	Backoff  time.Duration
}

func (r *RetryFetcher) Fetch(ctx context.Context, symbol string) domain.Quote {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last domain.Quote
	for i := 0; i < attempts; i++ {
		last = r.Inner.Fetch(ctx, symbol)
		if last.HasPrice() {
			return last
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(r.Backoff):
			}
		}
	}
	return last
}
