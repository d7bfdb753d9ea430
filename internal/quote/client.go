package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pbaches/stockwatch/internal/domain"
)

const (
	// DefaultBaseURL is the Yahoo Finance v8 chart endpoint.
	DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	// DefaultRange asks for a window wide enough to contain the previous
	// trading session, so change can be computed from two real closes.
	DefaultRange  = "5d"
	DefaultRegion = "BR"
)

// Client fetches quotes from the Yahoo Finance chart API.
type Client struct {
	BaseURL string
	Region  string
	Range   string
	HTTP    *http.Client
	Logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Region:  DefaultRegion,
		Range:   DefaultRange,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  log,
	}
}

// Wire shape of the chart payload. Series values are pointers because the
// provider pads non-trading slots with JSON nulls.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Currency           string   `json:"currency"`
		Symbol             string   `json:"symbol"`
		ShortName          string   `json:"shortName"`
		LongName           string   `json:"longName"`
		RegularMarketPrice *float64 `json:"regularMarketPrice"`
		ChartPreviousClose *float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close  []*float64 `json:"close"`
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// Fetch issues one request for the symbol and normalizes the response.
// Any failure (transport, non-2xx, error-flagged or malformed payload)
// is logged and swallowed; the returned Quote then carries only the symbol.
func (c *Client) Fetch(ctx context.Context, symbol string) domain.Quote {
	q := domain.Quote{Symbol: symbol, FetchedAt: time.Now().UTC()}

	u := fmt.Sprintf("%s/%s?region=%s&interval=1d&range=%s",
		c.BaseURL, url.PathEscape(symbol), url.QueryEscape(c.Region), url.QueryEscape(c.Range))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.Logger.Warn("quote_request_build_error", zap.String("symbol", symbol), zap.Error(err))
		return q
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("quote_transport_error", zap.String("symbol", symbol), zap.Error(err))
		return q
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger.Warn("quote_bad_status", zap.String("symbol", symbol), zap.Int("status", resp.StatusCode))
		return q
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.Logger.Warn("quote_decode_error", zap.String("symbol", symbol), zap.Error(err))
		return q
	}
	if body.Chart.Error != nil {
		c.Logger.Warn("quote_payload_error",
			zap.String("symbol", symbol),
			zap.String("code", body.Chart.Error.Code),
			zap.String("description", body.Chart.Error.Description),
		)
		return q
	}
	if len(body.Chart.Result) == 0 {
		c.Logger.Warn("quote_empty_result", zap.String("symbol", symbol))
		return q
	}

	normalize(&q, body.Chart.Result[0])
	return q
}

// normalize flattens one chart result into q. Latest price is the last
// non-null close; the previous close is the entry immediately before it,
// falling back to meta.chartPreviousClose when the window is too short.
func normalize(q *domain.Quote, res chartResult) {
	meta := res.Meta
	q.Currency = meta.Currency
	q.Name = meta.ShortName
	if q.Name == "" {
		q.Name = meta.LongName
	}

	if len(res.Indicators.Quote) > 0 {
		series := res.Indicators.Quote[0]
		for i := len(series.Close) - 1; i >= 0; i-- {
			if series.Close[i] == nil {
				continue
			}
			q.Price = series.Close[i]
			q.Open = at(series.Open, i)
			q.High = at(series.High, i)
			q.Low = at(series.Low, i)
			q.Volume = at(series.Volume, i)
			if i > 0 && series.Close[i-1] != nil {
				q.PreviousClose = series.Close[i-1]
			} else {
				q.PreviousClose = meta.ChartPreviousClose
			}
			break
		}
	}

	// A window of pure nulls still has a live price in the metadata.
	if q.Price == nil {
		q.Price = meta.RegularMarketPrice
	}

	if q.Price != nil && q.PreviousClose != nil {
		change := *q.Price - *q.PreviousClose
		q.Change = &change
		if *q.PreviousClose != 0 {
			pct := change / *q.PreviousClose * 100
			q.ChangePercent = &pct
		}
	}
}

// at indexes a padded series; open/high/low can be shorter than close.
func at[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}
