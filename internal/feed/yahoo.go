package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stockterm/internal/quote"
)

const defaultYahooBaseURL = "https://query2.finance.yahoo.com"

// YahooClient fetches from the Yahoo v8 chart API. This is the default
// provider; it needs no credentials.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooClient creates a client against the public chart endpoint.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultYahooBaseURL,
	}
}

// NewYahooClientWithBaseURL creates a client against a custom endpoint
// (tests point this at a local server).
func NewYahooClientWithBaseURL(baseURL string) *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// Fetch retrieves the chart payload for the requested symbol and runs it
// through the quote transform. Pre/post-market points are always requested;
// session filtering happens at render time.
func (c *YahooClient) Fetch(ctx context.Context, req Request) (quote.Quote, quote.Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s&includePrePost=true",
		c.baseURL,
		url.PathEscape(req.Symbol),
		url.QueryEscape(req.Interval),
		url.QueryEscape(req.Period),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return quote.Quote{}, quote.Series{}, err
	}
	// The chart endpoint rejects requests without a browser user agent.
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return quote.Quote{}, quote.Series{}, fmt.Errorf("fetching chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return quote.Quote{}, quote.Series{}, &StatusError{Code: resp.StatusCode}
	}

	var payload quote.ChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return quote.Quote{}, quote.Series{}, fmt.Errorf("decoding chart response: %w", err)
	}
	return quote.Transform(&payload)
}
