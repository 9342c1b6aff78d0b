package ingest

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"MarketLedger/internal/fetch"
	"MarketLedger/internal/model"
	"MarketLedger/internal/normalize"
	"MarketLedger/internal/source"
	"MarketLedger/internal/store"
)

// Equity ingests daily OHLCV bars for the configured tickers.
type Equity struct {
	Source    *source.YahooChart
	Store     *store.Store
	Pacing    time.Duration
	Tickers   []string
	DateStart string
	DateEnd   string
}

// Collect fetches each ticker's series with pacing, validates the bars and
// upserts everything as one batch. A failed ticker is logged and skipped.
func (e *Equity) Collect() error {
	runID := uuid.NewString()
	log.Printf("[INFO] run %s: collecting OHLCV for %d tickers", runID, len(e.Tickers))

	pacer := fetch.NewPacer(e.Pacing)
	var rows []model.EquityDailyPrice
	for _, ticker := range e.Tickers {
		pacer.Wait()
		bars, err := e.Source.DailyBars(ticker)
		if err != nil {
			log.Printf("[WARN] run %s: skipping %s: %v", runID, ticker, err)
			continue
		}
		normalized := normalize.EquityPrices(ticker, bars, e.DateStart, e.DateEnd)
		if len(normalized) == 0 {
			log.Printf("[INFO] run %s: %s returned no usable bars", runID, ticker)
			continue
		}
		rows = append(rows, normalized...)
	}

	if err := e.Store.UpsertStockPrices(rows); err != nil {
		return fmt.Errorf("upsert stock prices: %w", err)
	}
	log.Printf("[INFO] run %s: stored %d stock price rows", runID, len(rows))
	return nil
}
