package quote

import (
	"context"

	"github.com/pbaches/stockwatch/internal/domain"
)

// Fetcher retrieves a price snapshot for one symbol.
//
// Fetch never returns an error: provider failures degrade to a Quote that
// carries only the symbol, with every price field nil. Callers decide what
// a missing price means for them (skip the alert, render a dash, ...).
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) domain.Quote
}
