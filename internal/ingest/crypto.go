// Package ingest orchestrates fetch → normalize → store for each source.
// Fetch failures are contained per resource unit (page, coin, ticker): the
// unit is logged and skipped, the batch continues. Store failures abort the
// batch and are returned.
package ingest

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"MarketLedger/internal/fetch"
	"MarketLedger/internal/model"
	"MarketLedger/internal/normalize"
	"MarketLedger/internal/snapshot"
	"MarketLedger/internal/source"
	"MarketLedger/internal/store"
)

// Crypto ingests the CoinGecko market listing and per-coin daily prices.
type Crypto struct {
	Source      *source.CoinGecko
	Store       *store.Store
	Pacing      time.Duration
	Pages       int
	CoinIDs     []string
	SnapshotDir string // empty disables snapshot files
}

// RefreshCoins fetches all listing pages and fully replaces the
// cryptocurrencies snapshot table. A failed page is skipped; the refresh
// proceeds with whatever pages succeeded. No pages at all is an error so a
// fully throttled run cannot wipe the snapshot.
func (c *Crypto) RefreshCoins() error {
	runID := uuid.NewString()
	log.Printf("[INFO] run %s: refreshing coin snapshot (%d pages)", runID, c.Pages)

	pacer := fetch.NewPacer(c.Pacing)
	var listing []source.CoinMarket
	fetched := 0
	for page := 1; page <= c.Pages; page++ {
		pacer.Wait()
		entries, err := c.Source.Markets(page)
		if err != nil {
			log.Printf("[WARN] run %s: skipping page %d: %v", runID, page, err)
			continue
		}
		listing = append(listing, entries...)
		fetched++
	}
	if fetched == 0 {
		return fmt.Errorf("coin snapshot refresh: no pages fetched")
	}

	if c.SnapshotDir != "" {
		path := filepath.Join(c.SnapshotDir, "coingecko_markets.json")
		if err := snapshot.Save(path, listing); err != nil {
			log.Printf("[WARN] run %s: save raw snapshot: %v", runID, err)
		}
	}

	coins := normalize.Coins(listing)
	if err := c.Store.ReplaceCoins(coins); err != nil {
		return fmt.Errorf("replace coin snapshot: %w", err)
	}
	log.Printf("[INFO] run %s: coin snapshot refreshed (%d coins from %d/%d pages)",
		runID, len(coins), fetched, c.Pages)
	return nil
}

// CollectDailyPrices fetches the market chart per configured coin, collapses
// it to daily rows and upserts everything as one batch. A failed coin is
// simply absent from the batch.
func (c *Crypto) CollectDailyPrices() error {
	runID := uuid.NewString()
	log.Printf("[INFO] run %s: collecting daily prices for %d coins", runID, len(c.CoinIDs))

	pacer := fetch.NewPacer(c.Pacing)
	var rows []model.CoinDailyPrice
	charts := make(map[string]*source.MarketChart)
	for _, coinID := range c.CoinIDs {
		pacer.Wait()
		chart, err := c.Source.MarketChart(coinID)
		if err != nil {
			log.Printf("[WARN] run %s: skipping %s: %v", runID, coinID, err)
			continue
		}
		charts[coinID] = chart
		rows = append(rows, normalize.CoinDailyPrices(coinID, chart)...)
	}

	// Raw charts are kept alongside the normalized rows so normalization
	// can be re-run over a past fetch.
	if c.SnapshotDir != "" {
		rawPath := filepath.Join(c.SnapshotDir, "coin_daily_prices_raw.json")
		if err := snapshot.Save(rawPath, charts); err != nil {
			log.Printf("[WARN] run %s: save raw snapshot: %v", runID, err)
		}
		path := filepath.Join(c.SnapshotDir, "coin_daily_prices.json")
		if err := snapshot.Save(path, rows); err != nil {
			log.Printf("[WARN] run %s: save normalized snapshot: %v", runID, err)
		}
	}

	if err := c.Store.UpsertCoinPrices(rows); err != nil {
		return fmt.Errorf("upsert coin prices: %w", err)
	}
	log.Printf("[INFO] run %s: stored %d coin price rows", runID, len(rows))
	return nil
}

// ReplayDailyPrices loads a previously saved normalized snapshot and stores
// it, without touching the network.
func (c *Crypto) ReplayDailyPrices(path string) error {
	var rows []model.CoinDailyPrice
	if err := snapshot.Load(path, &rows); err != nil {
		return err
	}
	if err := c.Store.UpsertCoinPrices(rows); err != nil {
		return fmt.Errorf("upsert coin prices: %w", err)
	}
	log.Printf("[INFO] replayed %d coin price rows from %s", len(rows), path)
	return nil
}
