package domain

import "time"

// Quote is an ephemeral price snapshot for one symbol. Every price field is
// a pointer: the fetcher is fail-soft and a failed fetch still yields a
// Quote carrying the symbol, so callers must treat all of them as optional.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	Price         *float64  `json:"price"`
	PreviousClose *float64  `json:"previous_close"`
	Change        *float64  `json:"change"`
	ChangePercent *float64  `json:"change_percent"`
	Open          *float64  `json:"open"`
	High          *float64  `json:"high"`
	Low           *float64  `json:"low"`
	Volume        *int64    `json:"volume"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// HasPrice reports whether the snapshot carries a usable latest price.
func (q Quote) HasPrice() bool { return q.Price != nil }
