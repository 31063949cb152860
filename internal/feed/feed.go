// Package feed fetches quote and intraday series data from a market data
// provider. Implementations receive already-validated period/interval
// values; validation is the state machine's responsibility.
package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stockterm/internal/quote"
)

// Request carries everything a provider or delegated chart generator needs
// for one fetch. It also tags the fetch so a late-arriving result for a
// since-superseded request can be discarded.
type Request struct {
	Symbol     string
	Width      int
	Height     int
	Indicators []string
	Use24h     bool
	PriceView  bool
	Period     string
	Interval   string
	ChartKind  string
}

// Key returns a stable identity string for the request parameters that
// affect the returned data. Used to match an async result against the
// state it was issued for.
func (r Request) Key() string {
	ind := append([]string(nil), r.Indicators...)
	sort.Strings(ind)
	return fmt.Sprintf("%s|%s|%s|%s|%s", r.Symbol, r.Period, r.Interval, r.ChartKind, strings.Join(ind, ","))
}

// Fetcher is the outbound data collaborator. At most one fetch is in flight
// at a time; the caller merges the result back on the event-loop goroutine.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (quote.Quote, quote.Series, error)
}

// StatusError reports a non-success HTTP status from the provider.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed: provider returned status %d", e.Code)
}
