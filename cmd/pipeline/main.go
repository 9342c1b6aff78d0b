package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketLedger/internal/config"
	"MarketLedger/internal/fetch"
	"MarketLedger/internal/ingest"
	"MarketLedger/internal/scheduler"
	"MarketLedger/internal/source"
	"MarketLedger/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketLedger starting...")

	once := flag.Bool("once", false, "run every ingestion job once and exit")
	replay := flag.String("replay", "", "replay coin daily prices from a snapshot file and exit")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Open store
	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	// Init fetch client and ingestors
	client := fetch.NewClient(
		cfg.FetchTimeout(),
		cfg.Fetch.MaxRetries,
		cfg.RetryWait(),
		cfg.Proxy,
	)
	crypto := &ingest.Crypto{
		Source: &source.CoinGecko{
			Client:         client,
			MarketsURL:     cfg.Crypto.MarketsURL,
			MarketChartURL: cfg.Crypto.MarketChartURL,
		},
		Store:       st,
		Pacing:      cfg.InterRequestDelay(),
		Pages:       cfg.Crypto.Pages,
		CoinIDs:     cfg.Crypto.CoinIDs,
		SnapshotDir: cfg.SnapshotDir,
	}
	commodity := &ingest.Commodity{
		Source:    &source.WTI{Client: client, CSVURL: cfg.Oil.CSVURL},
		Store:     st,
		DateStart: cfg.Oil.DateStart,
		DateEnd:   cfg.Oil.DateEnd,
	}
	equity := &ingest.Equity{
		Source:    &source.YahooChart{Client: client, ChartURL: cfg.Stocks.ChartURL},
		Store:     st,
		Pacing:    cfg.InterRequestDelay(),
		Tickers:   cfg.Stocks.Tickers,
		DateStart: cfg.Stocks.DateStart,
		DateEnd:   cfg.Stocks.DateEnd,
	}

	if *replay != "" {
		if err := crypto.ReplayDailyPrices(*replay); err != nil {
			log.Fatalf("[FATAL] replay: %v", err)
		}
		return
	}

	sched := scheduler.New(crypto, commodity, equity)

	if *once {
		log.Println("[INFO] running all ingestion jobs once")
		sched.RunAllNow()
		return
	}

	if err := sched.RegisterAll(
		cfg.Schedule.CoinsCron,
		cfg.Schedule.CryptoPricesCron,
		cfg.Schedule.OilCron,
		cfg.Schedule.StocksCron,
	); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing all jobs now")
		go sched.RunAllNow()
	}

	log.Println("[INFO] MarketLedger is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] MarketLedger stopped")
}
