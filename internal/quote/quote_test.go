package quote

import (
	"errors"
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }

// etStamp returns an epoch-seconds timestamp for the given clock time on a
// fixed trading day, in the exchange-local zone.
func etStamp(hour, min int) int64 {
	return time.Date(2024, 3, 14, hour, min, 0, 0, MarketLocation()).Unix()
}

func TestTransformCleansNullPoints(t *testing.T) {
	resp := &ChartResponse{}
	resp.Chart.Result = []ChartResult{{
		Meta: ChartMeta{
			Symbol:             "AAPL",
			Currency:           "USD",
			RegularMarketPrice: 101,
			ChartPreviousClose: 100,
			RegularMarketOpen:  99,
		},
		Timestamp: []int64{etStamp(9, 30), etStamp(9, 31), etStamp(9, 32), etStamp(9, 33)},
		Indicators: ChartIndicators{Quote: []ChartQuote{{
			Close: []*float64{fp(100.5), nil, fp(100.7), nil},
		}}},
	}}

	_, s, err := Transform(resp)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if len(s.Timestamps) != len(s.Prices) {
		t.Fatalf("timestamps/prices length mismatch: %d vs %d", len(s.Timestamps), len(s.Prices))
	}
	if len(s.Prices) != 2 {
		t.Fatalf("cleaned series has %d points, want 2", len(s.Prices))
	}
	if s.Prices[0] != 100.5 || s.Prices[1] != 100.7 {
		t.Errorf("prices = %v, want [100.5 100.7]", s.Prices)
	}
	if s.Timestamps[0] != etStamp(9, 30) || s.Timestamps[1] != etStamp(9, 32) {
		t.Errorf("timestamps not aligned with kept prices: %v", s.Timestamps)
	}
}

func TestTransformDerivesChange(t *testing.T) {
	resp := &ChartResponse{}
	resp.Chart.Result = []ChartResult{{
		Meta: ChartMeta{
			Symbol:             "MSFT",
			RegularMarketPrice: 110,
			ChartPreviousClose: 100,
			RegularMarketOpen:  105,
		},
	}}

	q, _, err := Transform(resp)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if q.Change != 10 {
		t.Errorf("Change = %v, want 10", q.Change)
	}
	if q.ChangePct != 10 {
		t.Errorf("ChangePct = %v, want 10", q.ChangePct)
	}
	if q.Currency != "USD" {
		t.Errorf("Currency = %q, want default USD", q.Currency)
	}
}

func TestChangePctZeroPreviousClose(t *testing.T) {
	q := New("X", "USD", 50, 0, 0, 0, 0, 0)
	if q.ChangePct != 0 {
		t.Errorf("ChangePct = %v, want 0 when previous close is 0", q.ChangePct)
	}
}

func TestTransformMalformed(t *testing.T) {
	if _, _, err := Transform(nil); !errors.Is(err, ErrMalformed) {
		t.Errorf("Transform(nil) error = %v, want ErrMalformed", err)
	}
	if _, _, err := Transform(&ChartResponse{}); !errors.Is(err, ErrMalformed) {
		t.Errorf("Transform(empty) error = %v, want ErrMalformed", err)
	}
}

func TestInferOpenFirstRegularPoint(t *testing.T) {
	s := Series{
		Timestamps: []int64{etStamp(9, 0), etStamp(9, 29), etStamp(9, 30), etStamp(10, 0)},
		Prices:     []float64{10, 11, 12, 13},
	}
	if got := InferOpen(s); got != 12 {
		t.Errorf("InferOpen = %v, want 12 (first point at or after 09:30)", got)
	}
}

func TestInferOpenPreMarketOnly(t *testing.T) {
	s := Series{
		Timestamps: []int64{etStamp(4, 15), etStamp(5, 0)},
		Prices:     []float64{7.5, 7.8},
	}
	if got := InferOpen(s); got != 7.5 {
		t.Errorf("InferOpen = %v, want first point's price 7.5", got)
	}
}

func TestInferOpenEmptySeries(t *testing.T) {
	if got := InferOpen(Series{}); got != 0 {
		t.Errorf("InferOpen = %v, want 0 for empty series", got)
	}
}

func TestTransformAppliesOpenInference(t *testing.T) {
	resp := &ChartResponse{}
	resp.Chart.Result = []ChartResult{{
		Meta: ChartMeta{
			Symbol:             "TSLA",
			RegularMarketPrice: 200,
			ChartPreviousClose: 195,
			RegularMarketOpen:  0, // upstream omits the open pre-market
		},
		Timestamp: []int64{etStamp(9, 29), etStamp(9, 31)},
		Indicators: ChartIndicators{Quote: []ChartQuote{{
			Close: []*float64{fp(198), fp(199)},
		}}},
	}}

	q, _, err := Transform(resp)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if q.Open != 199 {
		t.Errorf("Open = %v, want inferred 199", q.Open)
	}
}
