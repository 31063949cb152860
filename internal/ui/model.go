// Package ui is the bubbletea front end: it feeds key and timer events into
// the application state machine, runs fetches as commands, and renders the
// view model.
package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stockterm/internal/app"
	"stockterm/internal/feed"
	"stockterm/internal/quote"
	"stockterm/internal/schedule"
)

// pollMsg drives the periodic scheduler check. The poll interval keeps the
// loop responsive to timer expiry without busy-spinning.
type pollMsg time.Time

// fetchDoneMsg carries an async fetch result back to the update loop,
// tagged with the request identity it was issued for so stale results can
// be discarded.
type fetchDoneMsg struct {
	key    string
	size   schedule.Size
	quote  quote.Quote
	series quote.Series
	err    error
}

func pollCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Model is the bubbletea model. All state mutation happens in Update, on
// the program goroutine; fetch commands run elsewhere but only touch their
// own request/result values.
type Model struct {
	state   *app.State
	sched   *schedule.Scheduler
	fetcher feed.Fetcher
	logger  *slog.Logger
	poll    time.Duration

	width  int
	height int

	// At most one fetch in flight at a time.
	fetching bool
}

// New wires the model together.
func New(state *app.State, sched *schedule.Scheduler, fetcher feed.Fetcher, logger *slog.Logger, poll time.Duration) Model {
	return Model{
		state:   state,
		sched:   sched,
		fetcher: fetcher,
		logger:  logger,
		poll:    poll,
	}
}

// Init starts the poll ticker; the scheduler reports due on the first pass,
// which issues the initial fetch.
func (m Model) Init() tea.Cmd {
	return pollCmd(m.poll)
}

// chartSize returns the inner chart area in cells, the size the scheduler
// debounces on.
func (m Model) chartSize() schedule.Size {
	headerH := 0
	if m.state.ShowHeader {
		headerH = headerHeight
	}
	w := m.width - 2
	h := m.height - headerH - 2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return schedule.Size{Width: w, Height: h}
}

// Update is the single event loop: input, timer, and fetch results are
// merged here in strict sequence.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sched.ObserveSize(time.Now(), m.chartSize())
		return m, nil

	case pollMsg:
		now := time.Time(msg)
		cmds := []tea.Cmd{pollCmd(m.poll)}
		size := m.chartSize()
		// No background refetch while a menu or the search popup is open.
		if !m.state.InModal() && !m.fetching && m.sched.IsDue(now, size) {
			m.fetching = true
			cmds = append(cmds, m.fetchCmd(size))
		}
		return m, tea.Batch(cmds...)

	case fetchDoneMsg:
		m.fetching = false
		if cur := m.state.Request(msg.size.Width, msg.size.Height); msg.key != cur.Key() {
			// Result for a since-superseded ticker or option set.
			m.logger.Info("discarding stale fetch result", "key", msg.key)
			return m, nil
		}
		if msg.err != nil {
			// Sticky annotation; previous quote and series stay displayed.
			m.logger.Warn("fetch failed", "ticker", m.state.Ticker, "error", msg.err)
			m.state.ApplyError(msg.err)
			return m, nil
		}
		m.state.ApplyResult(msg.quote, msg.series)
		m.sched.RecordFetch(time.Now(), msg.size)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// fetchCmd issues the outbound fetch for the current state. The command
// holds no reference into the state; it returns a plain result value merged
// back on the loop goroutine.
func (m Model) fetchCmd(size schedule.Size) tea.Cmd {
	req := m.state.Request(size.Width, size.Height)
	fetcher := m.fetcher
	return func() tea.Msg {
		q, s, err := fetcher.Fetch(context.Background(), req)
		return fetchDoneMsg{key: req.Key(), size: size, quote: q, series: s, err: err}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state.Mode {
	case app.ModeBrowsing:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "ctrl+o":
			m.state.EnterSearch()
		case "ctrl+s":
			m.state.EnterSettings()
		case "ctrl+p":
			m.state.TogglePreMarket()
		case "ctrl+h":
			m.state.ToggleHelp()
		}
		return m, nil

	case app.ModeSearch:
		switch msg.String() {
		case "esc":
			m.state.CancelSearch()
		case "enter":
			if m.state.ConfirmSearch() {
				m.sched.Force()
			}
		case "up":
			m.state.MoveSearchCursor(-1)
		case "down":
			m.state.MoveSearchCursor(1)
		default:
			var cmd tea.Cmd
			m.state.Search, cmd = m.state.Search.Update(msg)
			m.state.RefreshFilter()
			return m, cmd
		}
		return m, nil

	case app.ModeSettingsRoot:
		switch msg.String() {
		case "esc", "q":
			m.state.LeaveSettings()
			m.sched.Force()
		case "up":
			m.state.MoveRootCursor(-1)
		case "down":
			m.state.MoveRootCursor(1)
		case "enter", " ":
			if m.state.ActivateRoot() {
				m.sched.Force()
			}
		}
		return m, nil

	case app.ModeSettingsIndicators:
		switch msg.String() {
		case "esc", "q", "backspace":
			m.state.BackToRoot()
		case "up":
			m.state.MoveIndicatorCursor(-1)
		case "down":
			m.state.MoveIndicatorCursor(1)
		case "enter", " ":
			m.state.ActivateIndicator()
		}
		return m, nil

	case app.ModeSettingsTimeframe:
		switch msg.String() {
		case "esc", "q", "backspace":
			m.state.BackToRoot()
		case "up":
			m.state.MoveTimeframeCursor(-1)
		case "down":
			m.state.MoveTimeframeCursor(1)
		case "enter", " ":
			m.state.SelectTimeframe()
		}
		return m, nil

	case app.ModeSettingsInterval:
		switch msg.String() {
		case "esc", "q", "backspace":
			m.state.BackToRoot()
		case "up":
			m.state.MoveIntervalCursor(-1)
		case "down":
			m.state.MoveIntervalCursor(1)
		case "enter", " ":
			m.state.SelectInterval()
		}
		return m, nil
	}

	return m, nil
}

// View assembles the read-only view model and renders it.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	vm := m.state.Snapshot(m.sched.Remaining(time.Now()))
	return render(vm, m.width, m.height)
}
