// Package quote holds the display-ready market data model and the transform
// from the raw upstream chart payload into it.
package quote

import "errors"

// ErrMalformed reports a chart payload with no usable result envelope.
// Missing optional fields never produce this error.
var ErrMalformed = errors.New("quote: malformed chart response")

// Quote is a snapshot of the tracked instrument. Change and ChangePct are
// derived from Price and PreviousClose, never set directly. A Quote is
// replaced wholesale on each successful fetch.
type Quote struct {
	Symbol        string
	Currency      string
	Price         float64
	PreviousClose float64
	Open          float64
	High          float64
	Low           float64
	Volume        int64
	Change        float64
	ChangePct     float64
}

// Series holds the cleaned intraday points. Timestamps (epoch seconds) and
// Prices are equal length and index-aligned; order is as delivered upstream.
type Series struct {
	Timestamps []int64
	Prices     []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Timestamps) }

// New builds a Quote with the change fields derived. ChangePct is zero when
// the previous close is zero.
func New(symbol, currency string, price, prevClose, open, high, low float64, volume int64) Quote {
	if currency == "" {
		currency = "USD"
	}
	if volume < 0 {
		volume = 0
	}
	q := Quote{
		Symbol:        symbol,
		Currency:      currency,
		Price:         price,
		PreviousClose: prevClose,
		Open:          open,
		High:          high,
		Low:           low,
		Volume:        volume,
	}
	q.Change = price - prevClose
	if prevClose != 0 {
		q.ChangePct = (price - prevClose) / prevClose * 100
	}
	return q
}

// ChartResponse mirrors the upstream v8 chart API envelope. Only the fields
// the transform consumes are declared.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartError is the upstream error record inside an otherwise valid envelope.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult is a single result entry: metadata plus the intraday arrays.
type ChartResult struct {
	Meta       ChartMeta       `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators ChartIndicators `json:"indicators"`
}

// ChartMeta carries the quote-level fields of the payload.
type ChartMeta struct {
	Currency             string  `json:"currency"`
	Symbol               string  `json:"symbol"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	RegularMarketOpen    float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
	RegularMarketVolume  int64   `json:"regularMarketVolume"`
}

// ChartIndicators wraps the per-series arrays.
type ChartIndicators struct {
	Quote []ChartQuote `json:"quote"`
}

// ChartQuote holds the close series; entries are null for missing minutes.
type ChartQuote struct {
	Close []*float64 `json:"close"`
}

// Transform converts a raw chart payload into a Quote and a cleaned Series.
// It fails only when the result envelope is absent; absent numeric fields
// default to zero. An upstream open of exactly 0 triggers open inference
// (the upstream feed omits the open pre-market by reporting 0).
func Transform(resp *ChartResponse) (Quote, Series, error) {
	if resp == nil || len(resp.Chart.Result) == 0 {
		return Quote{}, Series{}, ErrMalformed
	}
	res := resp.Chart.Result[0]
	meta := res.Meta

	q := New(
		meta.Symbol,
		meta.Currency,
		meta.RegularMarketPrice,
		meta.ChartPreviousClose,
		meta.RegularMarketOpen,
		meta.RegularMarketDayHigh,
		meta.RegularMarketDayLow,
		meta.RegularMarketVolume,
	)

	s := cleanSeries(res.Timestamp, res.Indicators)
	if q.Open == 0 {
		q.Open = InferOpen(s)
	}
	return q, s, nil
}

// cleanSeries drops points whose close entry is null, preserving relative
// order and the timestamp/price alignment. Gaps pass through unchanged:
// no resampling or interpolation.
func cleanSeries(timestamps []int64, ind ChartIndicators) Series {
	var s Series
	if len(ind.Quote) == 0 {
		return s
	}
	closes := ind.Quote[0].Close
	for i, p := range closes {
		if p == nil || i >= len(timestamps) {
			continue
		}
		s.Timestamps = append(s.Timestamps, timestamps[i])
		s.Prices = append(s.Prices, *p)
	}
	return s
}

// InferOpen picks the opening price from a cleaned series: the first point
// at or after 09:30 ET, else the first point, else 0 for an empty series.
func InferOpen(s Series) float64 {
	for i, ts := range s.Timestamps {
		if MinuteOfDay(ts) >= RegularOpenMinute {
			return s.Prices[i]
		}
	}
	if len(s.Prices) > 0 {
		return s.Prices[0]
	}
	return 0
}
