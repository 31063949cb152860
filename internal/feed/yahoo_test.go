package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "AAPL",
        "currency": "USD",
        "regularMarketPrice": 190.5,
        "chartPreviousClose": 189.0,
        "regularMarketOpen": 189.5,
        "regularMarketDayHigh": 191.0,
        "regularMarketDayLow": 188.5,
        "regularMarketVolume": 1234567
      },
      "timestamp": [1710423000, 1710423060, 1710423120],
      "indicators": {
        "quote": [{"close": [189.7, null, 190.1]}]
      }
    }],
    "error": null
  }
}`

func TestYahooFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("path = %s, want /v8/finance/chart/AAPL", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("interval") != "1m" || q.Get("range") != "1d" || q.Get("includePrePost") != "true" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "Mozilla/5.0" {
			t.Errorf("User-Agent = %q, want Mozilla/5.0", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(chartPayload))
	}))
	defer srv.Close()

	c := NewYahooClientWithBaseURL(srv.URL)
	q, s, err := c.Fetch(context.Background(), Request{Symbol: "AAPL", Period: "1d", Interval: "1m"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if q.Symbol != "AAPL" || q.Price != 190.5 {
		t.Errorf("quote = %+v", q)
	}
	if q.Change != 1.5 {
		t.Errorf("Change = %v, want 1.5", q.Change)
	}
	if s.Len() != 2 {
		t.Errorf("series has %d points after cleaning, want 2", s.Len())
	}
}

func TestYahooFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewYahooClientWithBaseURL(srv.URL)
	_, _, err := c.Fetch(context.Background(), Request{Symbol: "NOPE", Period: "1d", Interval: "1m"})

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want 404", se.Code)
	}
}

func TestYahooFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>rate limited</html>"))
	}))
	defer srv.Close()

	c := NewYahooClientWithBaseURL(srv.URL)
	if _, _, err := c.Fetch(context.Background(), Request{Symbol: "AAPL", Period: "1d", Interval: "1m"}); err == nil {
		t.Error("Fetch with a non-JSON body returned nil error")
	}
}
