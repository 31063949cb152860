// Package app owns the dashboard's application state: the input-mode state
// machine, the settings menus, and the projection handed to the renderer.
// All mutation happens on the event-loop goroutine.
package app

import (
	"sort"

	"github.com/charmbracelet/bubbles/textinput"

	"stockterm/internal/catalog"
	"stockterm/internal/config"
	"stockterm/internal/feed"
	"stockterm/internal/quote"
)

// Mode is the current input mode. Browsing is the initial mode; every other
// mode is modal and suppresses background refreshes.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeSearch
	ModeSettingsRoot
	ModeSettingsIndicators
	ModeSettingsTimeframe
	ModeSettingsInterval
)

// Modal reports whether the mode is a modal input mode.
func (m Mode) Modal() bool { return m != ModeBrowsing }

// Chart kinds.
const (
	ChartKindLine   = "line"
	ChartKindCandle = "candle"
)

// Timeframes is the fixed period option list, in menu order.
var Timeframes = []string{"1d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

// Intervals is the fixed interval option list, in menu order.
var Intervals = []string{"1m", "2m", "5m", "15m", "1h", "1d", "1wk", "1mo", "3mo"}

// ValidTimeframe reports whether tf is one of the enumerated periods.
func ValidTimeframe(tf string) bool { return contains(Timeframes, tf) }

// ValidInterval reports whether iv is one of the enumerated intervals.
func ValidInterval(iv string) bool { return contains(Intervals, iv) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultIntervalFor returns the interval paired with a timeframe
// selection: intraday stays at 1m, long ranges coarsen to weekly/monthly.
func DefaultIntervalFor(tf string) string {
	switch tf {
	case "1d":
		return "1m"
	case "2y":
		return "1wk"
	case "5y", "10y":
		return "1mo"
	default:
		return "1d"
	}
}

// State is the dashboard's mutable application state, owned exclusively by
// the event loop.
type State struct {
	Ticker string
	Mode   Mode

	// Search.
	Search       textinput.Model
	Catalog      *catalog.Catalog
	Filtered     []catalog.Record
	SearchCursor int

	// Indicators.
	Indicators []IndicatorMeta
	Enabled    map[string]bool

	// Settings menus.
	Items      []SettingsItem
	RootCursor int
	IndCursor  int
	TFCursor   int
	IntCursor  int

	// Display options.
	Timeframe     string
	Interval      string
	ChartKind     string
	PriceView     bool
	Use24h        bool
	ShowHeader    bool
	ShowHelp      bool
	ShowPreMarket bool

	// Latest successful fetch; nil/empty until the first one completes.
	Quote  *quote.Quote
	Series quote.Series

	// Sticky error annotation, cleared by the next successful fetch.
	FetchErr string
}

// NewState builds the initial state. Timeframe/interval values from config
// are validated against the option lists; invalid values fall back to the
// intraday defaults.
func NewState(ticker string, cat *catalog.Catalog, indicators []IndicatorMeta, ui config.UIConfig) *State {
	ti := textinput.New()
	ti.Placeholder = "ticker or name"
	ti.CharLimit = 48

	tf := ui.Timeframe
	if !ValidTimeframe(tf) {
		tf = "1d"
	}
	iv := ui.Interval
	if !ValidInterval(iv) {
		iv = DefaultIntervalFor(tf)
	}
	kind := ui.ChartKind
	if kind != ChartKindCandle {
		kind = ChartKindLine
	}
	priceView := ui.PriceView
	if kind == ChartKindCandle {
		// Candles cannot render a percent baseline.
		priceView = true
	}

	return &State{
		Ticker:        ticker,
		Mode:          ModeBrowsing,
		Search:        ti,
		Catalog:       cat,
		Indicators:    indicators,
		Enabled:       make(map[string]bool),
		Items:         settingsItems(),
		Timeframe:     tf,
		Interval:      iv,
		ChartKind:     kind,
		PriceView:     priceView,
		Use24h:        ui.Use24h,
		ShowHeader:    ui.ShowHeader,
		ShowPreMarket: ui.ShowPreMarket,
	}
}

// InModal reports whether a modal input mode is active.
func (s *State) InModal() bool { return s.Mode.Modal() }

// Window returns the active session window per the pre-market toggle.
func (s *State) Window() quote.Window {
	if s.ShowPreMarket {
		return quote.Extended
	}
	return quote.Regular
}

// ---------------------------------------------------------------------------
// Search mode
// ---------------------------------------------------------------------------

// EnterSearch opens the ticker search popup with a cleared buffer and the
// full catalog listed.
func (s *State) EnterSearch() {
	s.Mode = ModeSearch
	s.Search.SetValue("")
	s.Search.Focus()
	s.RefreshFilter()
}

// RefreshFilter recomputes the filtered list from the current buffer and
// resets the selection to the first match. Called after every edit.
func (s *State) RefreshFilter() {
	s.Filtered = s.Catalog.Filter(s.Search.Value())
	s.SearchCursor = 0
}

// MoveSearchCursor moves the result selection cyclically.
func (s *State) MoveSearchCursor(delta int) {
	s.SearchCursor = cycle(s.SearchCursor, delta, len(s.Filtered))
}

// ConfirmSearch adopts the selected record's symbol and returns to
// Browsing. Returns true when a symbol was adopted (the caller forces an
// immediate refetch); with no results it is a no-op.
func (s *State) ConfirmSearch() bool {
	if s.SearchCursor < 0 || s.SearchCursor >= len(s.Filtered) {
		return false
	}
	s.Ticker = s.Filtered[s.SearchCursor].Symbol
	s.Search.Blur()
	s.Mode = ModeBrowsing
	return true
}

// CancelSearch discards the buffer and returns to Browsing without touching
// the ticker.
func (s *State) CancelSearch() {
	s.Search.Blur()
	s.Mode = ModeBrowsing
}

// ---------------------------------------------------------------------------
// Settings modes
// ---------------------------------------------------------------------------

// EnterSettings opens the root settings menu at its first item.
func (s *State) EnterSettings() {
	s.Mode = ModeSettingsRoot
	s.RootCursor = 0
}

// LeaveSettings returns to Browsing. The caller forces a refetch so option
// changes made in the menu take effect immediately.
func (s *State) LeaveSettings() {
	s.Mode = ModeBrowsing
}

// MoveRootCursor moves the root menu selection cyclically.
func (s *State) MoveRootCursor(delta int) {
	s.RootCursor = cycle(s.RootCursor, delta, len(s.Items))
}

// ActivateRoot performs the selected root item's action. Returns true when
// the action was Save & Exit, i.e. the menu closed.
func (s *State) ActivateRoot() bool {
	if s.RootCursor < 0 || s.RootCursor >= len(s.Items) {
		return false
	}
	switch s.Items[s.RootCursor].Kind {
	case ItemSubmenuIndicators:
		s.Mode = ModeSettingsIndicators
		s.IndCursor = 0
	case ItemSubmenuTimeframe:
		s.Mode = ModeSettingsTimeframe
		s.TFCursor = 0
	case ItemSubmenuInterval:
		s.Mode = ModeSettingsInterval
		s.IntCursor = 0
	case ItemToggleView:
		s.PriceView = !s.PriceView
	case ItemToggleChartKind:
		if s.ChartKind == ChartKindLine {
			s.ChartKind = ChartKindCandle
			// Candles imply the absolute price view. One-directional:
			// switching back to line does not revert it.
			s.PriceView = true
		} else {
			s.ChartKind = ChartKindLine
		}
	case ItemToggle24h:
		s.Use24h = !s.Use24h
	case ItemToggleHeader:
		s.ShowHeader = !s.ShowHeader
	case ItemSaveExit:
		s.LeaveSettings()
		return true
	}
	return false
}

// BackToRoot returns from a nested menu to the root settings menu without
// side effects beyond any selection already committed.
func (s *State) BackToRoot() {
	s.Mode = ModeSettingsRoot
}

// MoveIndicatorCursor moves over the indicator entries plus the trailing
// Back row, cyclically.
func (s *State) MoveIndicatorCursor(delta int) {
	s.IndCursor = cycle(s.IndCursor, delta, len(s.Indicators)+1)
}

// ActivateIndicator toggles the selected indicator, or returns to the root
// menu when the Back row is selected. Enabling an indicator that requires
// the absolute price view forces PriceView on; disabling it later leaves
// PriceView unchanged.
func (s *State) ActivateIndicator() {
	if s.IndCursor >= len(s.Indicators) {
		s.BackToRoot()
		return
	}
	meta := s.Indicators[s.IndCursor]
	if s.Enabled[meta.Name] {
		delete(s.Enabled, meta.Name)
		return
	}
	s.Enabled[meta.Name] = true
	if meta.RequiresPrice {
		s.PriceView = true
	}
}

// MoveTimeframeCursor moves the timeframe selection cyclically.
func (s *State) MoveTimeframeCursor(delta int) {
	s.TFCursor = cycle(s.TFCursor, delta, len(Timeframes))
}

// SelectTimeframe commits the selected timeframe, auto-selects its default
// interval, and returns to the root menu.
func (s *State) SelectTimeframe() {
	s.Timeframe = Timeframes[s.TFCursor]
	s.Interval = DefaultIntervalFor(s.Timeframe)
	s.BackToRoot()
}

// MoveIntervalCursor moves the interval selection cyclically.
func (s *State) MoveIntervalCursor(delta int) {
	s.IntCursor = cycle(s.IntCursor, delta, len(Intervals))
}

// SelectInterval commits the selected interval and returns to the root menu.
func (s *State) SelectInterval() {
	s.Interval = Intervals[s.IntCursor]
	s.BackToRoot()
}

// ---------------------------------------------------------------------------
// Browsing toggles
// ---------------------------------------------------------------------------

// TogglePreMarket flips the session window between regular and extended.
func (s *State) TogglePreMarket() { s.ShowPreMarket = !s.ShowPreMarket }

// ToggleHelp shows or hides the help popup.
func (s *State) ToggleHelp() { s.ShowHelp = !s.ShowHelp }

// ---------------------------------------------------------------------------
// Fetch plumbing
// ---------------------------------------------------------------------------

// EnabledIndicators returns the enabled indicator names, sorted for a
// stable request identity.
func (s *State) EnabledIndicators() []string {
	if len(s.Enabled) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Enabled))
	for name := range s.Enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Request builds the fetch request for the current state and the given
// chart area size.
func (s *State) Request(width, height int) feed.Request {
	return feed.Request{
		Symbol:     s.Ticker,
		Width:      width,
		Height:     height,
		Indicators: s.EnabledIndicators(),
		Use24h:     s.Use24h,
		PriceView:  s.PriceView,
		Period:     s.Timeframe,
		Interval:   s.Interval,
		ChartKind:  s.ChartKind,
	}
}

// ApplyResult merges a successful fetch back in: the quote and series are
// replaced wholesale and the sticky error clears.
func (s *State) ApplyResult(q quote.Quote, series quote.Series) {
	s.Quote = &q
	s.Series = series
	s.FetchErr = ""
}

// ApplyError records a fetch failure. The mode, the previous quote, and the
// previous series all stay untouched; only the sticky annotation is set.
func (s *State) ApplyError(err error) {
	if err == nil {
		return
	}
	s.FetchErr = err.Error()
}
