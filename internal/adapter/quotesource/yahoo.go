// Package quotesource implements the external quote provider client.
// The provider is untrusted: missing fields, wrong types and transport
// errors are all normal outcomes that the price resolver absorbs.
package quotesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/usecase/pricing"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches quotes from a Yahoo-Finance-style chart endpoint.
// Implements pricing.QuoteSource.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient creates a quote provider client. An empty baseURL uses
// the public endpoint; tests point it at an httptest server.
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YahooClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// chartResponse mirrors the subset of the provider payload we read.
// Price fields are json.Number so decimal values survive the round trip
// without passing through float64.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string      `json:"currency"`
				Symbol             string      `json:"symbol"`
				CurrentPrice       json.Number `json:"currentPrice"`
				RegularMarketPrice json.Number `json:"regularMarketPrice"`
				Price              json.Number `json:"price"`
				LastPrice          json.Number `json:"lastPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []chartQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// chartQuote holds one daily-history series from the provider
type chartQuote struct {
	Close []json.Number `json:"close"`
}

// Fetch retrieves a raw quote for a symbol
func (c *YahooClient) Fetch(ctx context.Context, symbol string) (*pricing.RawQuote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request for %q: %w", symbol, err)
	}
	// The public endpoint rejects requests without a browser-ish agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stockfolio/1.0)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request for %q failed: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request for %q returned status %d", symbol, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quote response for %q: %w", symbol, err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("provider error for %q: %s (%s)",
			symbol, payload.Chart.Error.Description, payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty quote result for %q", symbol)
	}

	result := payload.Chart.Result[0]
	quote := &pricing.RawQuote{
		CurrentPrice:       parseNumber(result.Meta.CurrentPrice),
		RegularMarketPrice: parseNumber(result.Meta.RegularMarketPrice),
		Price:              parseNumber(result.Meta.Price),
		LastPrice:          parseNumber(result.Meta.LastPrice),
		HistoricalClose:    latestClose(result.Indicators.Quote),
	}

	return quote, nil
}

// parseNumber converts a provider number into a decimal, treating empty
// or malformed values as absent
func parseNumber(n json.Number) *decimal.Decimal {
	if n.String() == "" {
		return nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil
	}
	return &d
}

// latestClose returns the most recent non-null close from the provider's
// daily history, or nil when no usable close exists
func latestClose(quotes []chartQuote) *decimal.Decimal {
	for _, q := range quotes {
		for i := len(q.Close) - 1; i >= 0; i-- {
			if d := parseNumber(q.Close[i]); d != nil {
				return d
			}
		}
	}
	return nil
}
