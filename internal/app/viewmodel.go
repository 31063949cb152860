package app

import (
	"time"

	"stockterm/internal/catalog"
	"stockterm/internal/quote"
)

// MenuEntry is one row of whichever menu popup is open, label resolved and
// markers applied.
type MenuEntry struct {
	Label    string
	Selected bool // cursor row
	Checked  bool // [x] / [*] marker
	Starred  bool // requires-price flag on indicators
	Back     bool // trailing back row
}

// ViewModel is the read-only projection of the application state consumed
// by the renderer each frame. The renderer never reaches back into State.
type ViewModel struct {
	Mode   Mode
	Ticker string

	// Catalog lookup for the header; "Unknown" when the symbol is not in
	// the reference table.
	TickerName string
	TickerKind string

	Quote  *quote.Quote
	Points []quote.Point
	Window quote.Window

	Timeframe string
	Interval  string
	ChartKind string

	PriceView     bool
	Use24h        bool
	ShowHeader    bool
	ShowHelp      bool
	ShowPreMarket bool

	Err         string
	NextRefresh time.Duration

	// Search popup.
	SearchView   string
	Results      []catalog.Record
	ResultCursor int

	// Whichever settings menu is open.
	Menu      []MenuEntry
	MenuTitle string
}

// Snapshot assembles the view model from the current state. remaining is
// the scheduler's countdown to the next tick-driven refresh.
func (s *State) Snapshot(remaining time.Duration) ViewModel {
	vm := ViewModel{
		Mode:          s.Mode,
		Ticker:        s.Ticker,
		TickerName:    "Unknown",
		TickerKind:    "Unknown",
		Quote:         s.Quote,
		Window:        s.Window(),
		Timeframe:     s.Timeframe,
		Interval:      s.Interval,
		ChartKind:     s.ChartKind,
		PriceView:     s.PriceView,
		Use24h:        s.Use24h,
		ShowHeader:    s.ShowHeader,
		ShowHelp:      s.ShowHelp,
		ShowPreMarket: s.ShowPreMarket,
		Err:           s.FetchErr,
		NextRefresh:   remaining,
	}

	for _, r := range s.Catalog.Records() {
		if r.Symbol == s.Ticker {
			vm.TickerName, vm.TickerKind = r.Name, r.Kind
			break
		}
	}

	if s.Quote != nil {
		vm.Points = quote.ChartPoints(s.Series, s.Quote.PreviousClose, vm.Window, s.PriceView)
	}

	switch s.Mode {
	case ModeSearch:
		vm.SearchView = s.Search.View()
		vm.Results = s.Filtered
		vm.ResultCursor = s.SearchCursor
	case ModeSettingsRoot:
		vm.MenuTitle = "Settings"
		for i, it := range s.Items {
			vm.Menu = append(vm.Menu, MenuEntry{
				Label:    it.Label(s),
				Selected: i == s.RootCursor,
			})
		}
	case ModeSettingsIndicators:
		vm.MenuTitle = "Indicators (* Requires Price)"
		for i, ind := range s.Indicators {
			vm.Menu = append(vm.Menu, MenuEntry{
				Label:    ind.Name,
				Selected: i == s.IndCursor,
				Checked:  s.Enabled[ind.Name],
				Starred:  ind.RequiresPrice,
			})
		}
		vm.Menu = append(vm.Menu, MenuEntry{
			Label:    "<< Back",
			Selected: s.IndCursor == len(s.Indicators),
			Back:     true,
		})
	case ModeSettingsTimeframe:
		vm.MenuTitle = "Select Timeframe"
		for i, tf := range Timeframes {
			vm.Menu = append(vm.Menu, MenuEntry{
				Label:    tf,
				Selected: i == s.TFCursor,
				Checked:  tf == s.Timeframe,
			})
		}
	case ModeSettingsInterval:
		vm.MenuTitle = "Select Interval"
		for i, iv := range Intervals {
			vm.Menu = append(vm.Menu, MenuEntry{
				Label:    iv,
				Selected: i == s.IntCursor,
				Checked:  iv == s.Interval,
			})
		}
	}

	return vm
}
