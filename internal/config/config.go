package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is loaded once at startup
// and passed by value to each component; nothing mutates it afterwards.
type Config struct {
	Fetch struct {
		MaxRetries      int `yaml:"max_retries"`       // total attempts per resource unit
		RetryWaitSec    int `yaml:"retry_wait_sec"`    // sleep after a 429 before retrying
		InterRequestSec int `yaml:"inter_request_sec"` // pacing between resource units
		TimeoutSec      int `yaml:"timeout_sec"`       // per-request HTTP timeout
	} `yaml:"fetch"`
	Crypto struct {
		MarketsURL     string   `yaml:"markets_url"`      // paginated listing, {page} placeholder
		MarketChartURL string   `yaml:"market_chart_url"` // per-coin series, {coin_id} placeholder
		Pages          int      `yaml:"pages"`
		CoinIDs        []string `yaml:"coin_ids"`
	} `yaml:"crypto"`
	Oil struct {
		CSVURL    string `yaml:"csv_url"`
		DateStart string `yaml:"date_start"` // inclusive, YYYY-MM-DD
		DateEnd   string `yaml:"date_end"`   // inclusive, YYYY-MM-DD
	} `yaml:"oil"`
	Stocks struct {
		ChartURL  string   `yaml:"chart_url"` // {ticker} placeholder
		Tickers   []string `yaml:"tickers"`
		DateStart string   `yaml:"date_start"`
		DateEnd   string   `yaml:"date_end"`
	} `yaml:"stocks"`
	Schedule struct {
		CoinsCron        string `yaml:"coins_cron"`
		CryptoPricesCron string `yaml:"crypto_prices_cron"`
		OilCron          string `yaml:"oil_cron"`
		StocksCron       string `yaml:"stocks_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	SnapshotDir string `yaml:"snapshot_dir"`
	Proxy       string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SNAPSHOT_DIR"); v != "" {
		cfg.SnapshotDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FETCH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Fetch.MaxRetries = n
		}
	}
	if v := os.Getenv("FETCH_RETRY_WAIT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Fetch.RetryWaitSec = n
		}
	}
	if v := os.Getenv("FETCH_INTER_REQUEST_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Fetch.InterRequestSec = n
		}
	}

	// Defaults
	if cfg.Fetch.MaxRetries == 0 {
		cfg.Fetch.MaxRetries = 3
	}
	if cfg.Fetch.RetryWaitSec == 0 {
		cfg.Fetch.RetryWaitSec = 60
	}
	if cfg.Fetch.InterRequestSec == 0 {
		cfg.Fetch.InterRequestSec = 15
	}
	if cfg.Fetch.TimeoutSec == 0 {
		cfg.Fetch.TimeoutSec = 30
	}
	if cfg.Crypto.MarketsURL == "" {
		cfg.Crypto.MarketsURL = "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd&per_page=250&order=market_cap_desc&page={page}&sparkline=false"
	}
	if cfg.Crypto.MarketChartURL == "" {
		cfg.Crypto.MarketChartURL = "https://api.coingecko.com/api/v3/coins/{coin_id}/market_chart?vs_currency=usd&days=365"
	}
	if cfg.Crypto.Pages == 0 {
		cfg.Crypto.Pages = 5
	}
	if len(cfg.Crypto.CoinIDs) == 0 {
		cfg.Crypto.CoinIDs = []string{
			"bitcoin", "ethereum", "tether", "binancecoin", "solana",
			"ripple", "usd-coin", "cardano", "avalanche-2", "dogecoin",
		}
	}
	if cfg.Oil.CSVURL == "" {
		cfg.Oil.CSVURL = "https://raw.githubusercontent.com/datasets/oil-prices/main/data/wti-daily.csv"
	}
	if cfg.Oil.DateStart == "" {
		cfg.Oil.DateStart = "2020-01-01"
	}
	if cfg.Oil.DateEnd == "" {
		cfg.Oil.DateEnd = "2026-01-31"
	}
	if cfg.Stocks.ChartURL == "" {
		cfg.Stocks.ChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/{ticker}?interval=1d&range=5y"
	}
	if len(cfg.Stocks.Tickers) == 0 {
		cfg.Stocks.Tickers = []string{"^GSPC", "^IXIC", "^NSEI"}
	}
	if cfg.Stocks.DateStart == "" {
		cfg.Stocks.DateStart = "2020-01-01"
	}
	if cfg.Stocks.DateEnd == "" {
		cfg.Stocks.DateEnd = "2025-10-01"
	}
	if cfg.Schedule.CoinsCron == "" {
		cfg.Schedule.CoinsCron = "0 0 6 * * *"
	}
	if cfg.Schedule.CryptoPricesCron == "" {
		cfg.Schedule.CryptoPricesCron = "0 30 6 * * *"
	}
	if cfg.Schedule.OilCron == "" {
		cfg.Schedule.OilCron = "0 0 7 * * *"
	}
	if cfg.Schedule.StocksCron == "" {
		cfg.Schedule.StocksCron = "0 15 7 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_ledger.db"
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = "data/snapshots"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Fetch.MaxRetries <= 0 {
		return fmt.Errorf("fetch.max_retries must be positive")
	}
	if c.Fetch.RetryWaitSec < 0 || c.Fetch.InterRequestSec < 0 {
		return fmt.Errorf("fetch delays must be non-negative")
	}
	if c.Crypto.Pages <= 0 {
		return fmt.Errorf("crypto.pages must be positive")
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	for _, w := range [][2]string{
		{c.Oil.DateStart, c.Oil.DateEnd},
		{c.Stocks.DateStart, c.Stocks.DateEnd},
	} {
		start, err := time.Parse("2006-01-02", w[0])
		if err != nil {
			return fmt.Errorf("invalid window start %q: %w", w[0], err)
		}
		end, err := time.Parse("2006-01-02", w[1])
		if err != nil {
			return fmt.Errorf("invalid window end %q: %w", w[1], err)
		}
		if end.Before(start) {
			return fmt.Errorf("date window %s..%s is inverted", w[0], w[1])
		}
	}
	return nil
}

// FetchTimeout returns the per-request HTTP timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSec) * time.Second
}

// RetryWait returns the configured 429 backoff as a duration.
func (c *Config) RetryWait() time.Duration {
	return time.Duration(c.Fetch.RetryWaitSec) * time.Second
}

// InterRequestDelay returns the configured pacing between resource units.
func (c *Config) InterRequestDelay() time.Duration {
	return time.Duration(c.Fetch.InterRequestSec) * time.Second
}
