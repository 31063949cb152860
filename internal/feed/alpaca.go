package feed

import (
	"context"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"stockterm/internal/quote"
)

// AlpacaClient fetches bars and the latest snapshot from the Alpaca
// market-data API. Selected when the config sets feed.provider to "alpaca"
// and API keys are present.
type AlpacaClient struct {
	client *marketdata.Client
}

// NewAlpacaClient creates a client with the given credentials. dataURL may
// be empty to use the SDK default.
func NewAlpacaClient(apiKey, apiSecret, dataURL string) *AlpacaClient {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaClient{client: marketdata.NewClient(opts)}
}

// Fetch maps the period/interval pair onto a bars request and assembles the
// same display model the chart-API path produces: quote fields from the
// daily snapshot, series from bar closes, open inference when the snapshot
// has no session open yet.
func (c *AlpacaClient) Fetch(_ context.Context, req Request) (quote.Quote, quote.Series, error) {
	now := time.Now()
	bars, err := c.client.GetBars(req.Symbol, marketdata.GetBarsRequest{
		TimeFrame: barTimeFrame(req.Interval),
		Start:     periodStart(req.Period, now),
		End:       now,
		Feed:      "iex",
	})
	if err != nil {
		return quote.Quote{}, quote.Series{}, err
	}

	var s quote.Series
	for _, b := range bars {
		s.Timestamps = append(s.Timestamps, b.Timestamp.Unix())
		s.Prices = append(s.Prices, b.Close)
	}

	snap, err := c.client.GetSnapshot(req.Symbol, marketdata.GetSnapshotRequest{Feed: "iex"})
	if err != nil {
		return quote.Quote{}, quote.Series{}, err
	}
	if snap == nil {
		return quote.Quote{}, quote.Series{}, quote.ErrMalformed
	}

	var price, prevClose, open, high, low float64
	var volume int64
	if snap.LatestTrade != nil {
		price = snap.LatestTrade.Price
	} else if s.Len() > 0 {
		price = s.Prices[s.Len()-1]
	}
	if snap.PrevDailyBar != nil {
		prevClose = snap.PrevDailyBar.Close
	}
	if snap.DailyBar != nil {
		open = snap.DailyBar.Open
		high = snap.DailyBar.High
		low = snap.DailyBar.Low
		volume = int64(snap.DailyBar.Volume)
	}

	q := quote.New(req.Symbol, "USD", price, prevClose, open, high, low, volume)
	if q.Open == 0 {
		q.Open = quote.InferOpen(s)
	}
	return q, s, nil
}

// barTimeFrame maps an interval option onto an Alpaca bar timeframe.
func barTimeFrame(interval string) marketdata.TimeFrame {
	switch interval {
	case "1m":
		return marketdata.OneMin
	case "2m":
		return marketdata.NewTimeFrame(2, marketdata.Min)
	case "5m":
		return marketdata.NewTimeFrame(5, marketdata.Min)
	case "15m":
		return marketdata.NewTimeFrame(15, marketdata.Min)
	case "1h":
		return marketdata.OneHour
	case "1d":
		return marketdata.OneDay
	case "1wk":
		return marketdata.NewTimeFrame(1, marketdata.Week)
	case "1mo":
		return marketdata.NewTimeFrame(1, marketdata.Month)
	case "3mo":
		return marketdata.NewTimeFrame(3, marketdata.Month)
	default:
		return marketdata.OneMin
	}
}

// periodStart maps a period option onto the start of the bars window.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "1d":
		return now.AddDate(0, 0, -1)
	case "1mo":
		return now.AddDate(0, -1, 0)
	case "3mo":
		return now.AddDate(0, -3, 0)
	case "6mo":
		return now.AddDate(0, -6, 0)
	case "1y":
		return now.AddDate(-1, 0, 0)
	case "2y":
		return now.AddDate(-2, 0, 0)
	case "5y":
		return now.AddDate(-5, 0, 0)
	case "10y":
		return now.AddDate(-10, 0, 0)
	case "ytd":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	case "max":
		return now.AddDate(-30, 0, 0)
	default:
		return now.AddDate(0, 0, -1)
	}
}
