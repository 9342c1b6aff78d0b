package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"MarketLedger/internal/fetch"
)

// WTI fetches the crude-oil daily price series published as a Date,Price CSV.
type WTI struct {
	Client *fetch.Client
	CSVURL string
}

// RawPricePoint is one parsed CSV record before window filtering.
type RawPricePoint struct {
	Date  string
	Price float64
}

// DailyPrices downloads and parses the CSV. Malformed records are logged
// and skipped; a header row is detected and dropped.
func (w *WTI) DailyPrices() ([]RawPricePoint, error) {
	body, err := w.Client.Get(w.CSVURL)
	if err != nil {
		return nil, fmt.Errorf("wti csv: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1

	var points []RawPricePoint
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[WARN] wti csv line %d: %v", line, err)
			continue
		}
		if len(rec) < 2 {
			continue
		}
		date := strings.TrimSpace(rec[0])
		if line == 1 && strings.EqualFold(date, "date") {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			log.Printf("[WARN] wti csv line %d: bad price %q", line, rec[1])
			continue
		}
		points = append(points, RawPricePoint{Date: date, Price: price})
	}
	return points, nil
}
