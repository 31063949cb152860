// Package config loads the stockterm YAML configuration and applies
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the dashboard.
type Config struct {
	Refresh RefreshConfig `yaml:"refresh"`
	Catalog CatalogConfig `yaml:"catalog"`
	Feed    FeedConfig    `yaml:"feed"`
	Logging Logging       `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// RefreshConfig holds the timing constants of the refresh engine.
type RefreshConfig struct {
	TickInterval   Duration `yaml:"tick_interval"`
	ResizeDebounce Duration `yaml:"resize_debounce"`
	PollTimeout    Duration `yaml:"poll_timeout"`
}

// CatalogConfig points at the ticker reference table. When SQLitePath is
// set it takes precedence over the CSV file.
type CatalogConfig struct {
	CSVPath    string `yaml:"csv_path"`
	SQLitePath string `yaml:"sqlite_path"`
}

// FeedConfig selects and configures the market-data provider.
type FeedConfig struct {
	Provider  string `yaml:"provider"` // "yahoo" (default) or "alpaca"
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger. The TUI owns the terminal, so
// logs go to a file.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UIConfig holds the initial display settings.
type UIConfig struct {
	DefaultTicker string `yaml:"default_ticker"`
	Timeframe     string `yaml:"timeframe"`
	Interval      string `yaml:"interval"`
	ChartKind     string `yaml:"chart_kind"` // "line" or "candle"
	Use24h        bool   `yaml:"use_24h"`
	PriceView     bool   `yaml:"price_view"`
	ShowHeader    bool   `yaml:"show_header"`
	ShowPreMarket bool   `yaml:"show_pre_market"`
	IndicatorsDir string `yaml:"indicators_dir"`
}

// Duration wraps time.Duration so YAML values can be written as "60s" or
// "1500ms".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		Refresh: RefreshConfig{
			TickInterval:   Duration(60 * time.Second),
			ResizeDebounce: Duration(1500 * time.Millisecond),
			PollTimeout:    Duration(200 * time.Millisecond),
		},
		Catalog: CatalogConfig{
			CSVPath: "top-tickers.csv",
		},
		Feed: FeedConfig{
			Provider: "yahoo",
		},
		Logging: Logging{
			Level: "info",
		},
		UI: UIConfig{
			DefaultTicker: "AAPL",
			Timeframe:     "1d",
			Interval:      "1m",
			ChartKind:     "line",
			ShowHeader:    true,
			IndicatorsDir: "indicators",
		},
	}
}

// Load reads the YAML configuration at path over the defaults and applies
// environment overrides. A missing file is not an error: the defaults
// apply unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCKTERM_CATALOG"); v != "" {
		cfg.Catalog.CSVPath = v
	}
	if v := os.Getenv("STOCKTERM_CATALOG_DB"); v != "" {
		cfg.Catalog.SQLitePath = v
	}
	if v := os.Getenv("STOCKTERM_PROVIDER"); v != "" {
		cfg.Feed.Provider = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars (canonical names used by the SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Feed.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Feed.APISecret = v
	}
	if v := os.Getenv("APCA_API_DATA_URL"); v != "" {
		cfg.Feed.DataURL = v
	}
}
