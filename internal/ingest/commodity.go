package ingest

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"MarketLedger/internal/normalize"
	"MarketLedger/internal/source"
	"MarketLedger/internal/store"
)

// Commodity ingests the crude-oil daily CSV series.
type Commodity struct {
	Source    *source.WTI
	Store     *store.Store
	DateStart string
	DateEnd   string
}

// Collect fetches the CSV, filters it to the configured window and upserts
// the result as one batch. The series is a single resource unit, so a fetch
// failure fails the run for this source.
func (c *Commodity) Collect() error {
	runID := uuid.NewString()
	log.Printf("[INFO] run %s: collecting oil prices (%s..%s)", runID, c.DateStart, c.DateEnd)

	points, err := c.Source.DailyPrices()
	if err != nil {
		return fmt.Errorf("fetch oil prices: %w", err)
	}

	rows := normalize.CommodityPrices(points, c.DateStart, c.DateEnd)
	if err := c.Store.UpsertOilPrices(rows); err != nil {
		return fmt.Errorf("upsert oil prices: %w", err)
	}
	log.Printf("[INFO] run %s: stored %d oil price rows", runID, len(rows))
	return nil
}
