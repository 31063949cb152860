package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stockterm/internal/app"
	"stockterm/internal/catalog"
	"stockterm/internal/config"
	"stockterm/internal/feed"
	"stockterm/internal/quote"
	"stockterm/internal/schedule"
)

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, req feed.Request) (quote.Quote, quote.Series, error) {
	return quote.Quote{Symbol: req.Symbol, Price: 100}, quote.Series{}, nil
}

func testModel() Model {
	cat := catalog.New([]catalog.Record{{Symbol: "AAPL", Name: "Apple Inc.", Kind: "Stock"}})
	state := app.NewState("AAPL", cat, nil, config.Default().UI)
	sched := schedule.New(60*time.Second, 1500*time.Millisecond, time.Now())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := New(state, sched, stubFetcher{}, logger, 200*time.Millisecond)
	m.width, m.height = 80, 24
	return m
}

func (m Model) key(t *testing.T, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestPollIssuesInitialFetch(t *testing.T) {
	m := testModel()
	next, cmd := m.Update(pollMsg(time.Now()))
	m = next.(Model)
	if !m.fetching {
		t.Error("fetching = false after first poll, want initial fetch in flight")
	}
	if cmd == nil {
		t.Error("poll returned nil cmd, want repost + fetch")
	}
}

func TestPollSuppressedInModal(t *testing.T) {
	m := testModel()
	m = m.key(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.state.InModal() {
		t.Fatal("ctrl+s did not open settings")
	}

	next, _ := m.Update(pollMsg(time.Now()))
	m = next.(Model)
	if m.fetching {
		t.Error("fetch issued while a modal menu is open")
	}
}

func TestPollSingleFlight(t *testing.T) {
	m := testModel()
	next, _ := m.Update(pollMsg(time.Now()))
	m = next.(Model)

	m.sched.Force()
	next, _ = m.Update(pollMsg(time.Now()))
	m = next.(Model)
	if !m.fetching {
		t.Fatal("fetching flag lost")
	}
	// The second poll must not have issued another fetch; a completed result
	// clears the flag exactly once.
	size := m.chartSize()
	next, _ = m.Update(fetchDoneMsg{
		key:   m.state.Request(size.Width, size.Height).Key(),
		size:  size,
		quote: quote.Quote{Symbol: "AAPL", Price: 100},
	})
	m = next.(Model)
	if m.fetching {
		t.Error("fetching = true after result merged")
	}
}

func TestFetchResultMerged(t *testing.T) {
	m := testModel()
	size := m.chartSize()
	next, _ := m.Update(fetchDoneMsg{
		key:   m.state.Request(size.Width, size.Height).Key(),
		size:  size,
		quote: quote.Quote{Symbol: "AAPL", Price: 190},
	})
	m = next.(Model)
	if m.state.Quote == nil || m.state.Quote.Price != 190 {
		t.Error("successful result not merged into state")
	}
}

func TestStaleFetchResultDiscarded(t *testing.T) {
	m := testModel()
	size := m.chartSize()
	staleKey := m.state.Request(size.Width, size.Height).Key()

	// The ticker changes while the fetch is in flight.
	m.state.Ticker = "MSFT"
	next, _ := m.Update(fetchDoneMsg{
		key:   staleKey,
		size:  size,
		quote: quote.Quote{Symbol: "AAPL", Price: 190},
	})
	m = next.(Model)
	if m.state.Quote != nil {
		t.Error("stale result merged, want discarded")
	}
}

func TestFetchErrorKeepsState(t *testing.T) {
	m := testModel()
	m.state.ApplyResult(quote.Quote{Symbol: "AAPL", Price: 190}, quote.Series{})

	size := m.chartSize()
	next, _ := m.Update(fetchDoneMsg{
		key:  m.state.Request(size.Width, size.Height).Key(),
		size: size,
		err:  errors.New("timeout"),
	})
	m = next.(Model)
	if m.state.Quote == nil || m.state.Quote.Price != 190 {
		t.Error("previous quote lost on fetch error")
	}
	if m.state.FetchErr != "timeout" {
		t.Errorf("FetchErr = %q, want timeout", m.state.FetchErr)
	}
}

func TestSearchConfirmForcesRefetch(t *testing.T) {
	m := testModel()
	m.sched.RecordFetch(time.Now(), m.chartSize())

	m = m.key(t, tea.KeyMsg{Type: tea.KeyCtrlO})
	if m.state.Mode != app.ModeSearch {
		t.Fatal("ctrl+o did not enter search")
	}
	m = m.key(t, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Mode != app.ModeBrowsing {
		t.Fatal("enter did not leave search")
	}
	if !m.sched.IsDue(time.Now(), m.chartSize()) {
		t.Error("confirm did not force a refetch")
	}
}

func TestSearchCancelDoesNotForceRefetch(t *testing.T) {
	m := testModel()
	m.sched.RecordFetch(time.Now(), m.chartSize())

	m = m.key(t, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = m.key(t, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Mode != app.ModeBrowsing {
		t.Fatal("esc did not leave search")
	}
	if m.sched.IsDue(time.Now(), m.chartSize()) {
		t.Error("cancel forced a refetch, want none")
	}
}

func TestSettingsExitForcesRefetch(t *testing.T) {
	m := testModel()
	m.sched.RecordFetch(time.Now(), m.chartSize())

	m = m.key(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = m.key(t, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Mode != app.ModeBrowsing {
		t.Fatal("esc did not leave settings")
	}
	if !m.sched.IsDue(time.Now(), m.chartSize()) {
		t.Error("leaving settings did not force a refetch")
	}
}

func TestQuitKeysOnlyInBrowsing(t *testing.T) {
	m := testModel()
	m = m.key(t, tea.KeyMsg{Type: tea.KeyCtrlS})

	// q inside a menu navigates back, it does not quit.
	next, cmd := m.Update(keyRune('q'))
	m = next.(Model)
	if cmd != nil {
		t.Error("q in settings produced a command, want plain mode change")
	}
	if m.state.Mode != app.ModeBrowsing {
		t.Errorf("mode = %v, want Browsing", m.state.Mode)
	}
}
