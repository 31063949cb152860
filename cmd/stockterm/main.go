// Command stockterm is an interactive terminal dashboard tracking a single
// financial instrument: live quote stats on top, an intraday chart below,
// with ticker search and display settings behind popup menus.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stockterm/internal/app"
	"stockterm/internal/catalog"
	"stockterm/internal/config"
	"stockterm/internal/feed"
	"stockterm/internal/schedule"
	"stockterm/internal/ui"
	"stockterm/internal/util"
)

func main() {
	configPath := flag.String("config", "stockterm.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, logClose, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logClose.Close()

	ticker := cfg.UI.DefaultTicker
	if flag.NArg() > 0 {
		ticker = flag.Arg(0)
	}

	// A missing or broken reference table degrades to an empty catalog;
	// search simply yields no results.
	var records []catalog.Record
	if cfg.Catalog.SQLitePath != "" {
		records, err = catalog.LoadSQLite(cfg.Catalog.SQLitePath)
	} else {
		records, err = catalog.LoadCSV(cfg.Catalog.CSVPath)
	}
	if err != nil {
		logger.Warn("loading ticker catalog", "error", err)
		records = nil
	}
	logger.Info("catalog loaded", "tickers", len(records))

	indicators := app.DiscoverIndicators(cfg.UI.IndicatorsDir)
	logger.Info("indicators discovered", "count", len(indicators))

	var fetcher feed.Fetcher
	if cfg.Feed.Provider == "alpaca" && cfg.Feed.APIKey != "" {
		fetcher = feed.NewAlpacaClient(cfg.Feed.APIKey, cfg.Feed.APISecret, cfg.Feed.DataURL)
		logger.Info("using alpaca market data")
	} else {
		fetcher = feed.NewYahooClient()
	}

	state := app.NewState(ticker, catalog.New(records), indicators, cfg.UI)
	sched := schedule.New(cfg.Refresh.TickInterval.Std(), cfg.Refresh.ResizeDebounce.Std(), time.Now())

	p := tea.NewProgram(
		ui.New(state, sched, fetcher, logger, cfg.Refresh.PollTimeout.Std()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
