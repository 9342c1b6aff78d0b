// Package normalize maps raw source payloads to canonical per-day rows.
// Every function here is pure: no I/O, no clock, deterministic output.
package normalize

import (
	"sort"
	"time"

	"MarketLedger/internal/model"
	"MarketLedger/internal/source"
)

// CoinDailyPrices collapses a market-chart series to one row per UTC
// calendar day, keeping the chronologically last sample of each day, and
// returns rows sorted ascending by date. Samples missing either element of
// the [timestamp_ms, price] pair are ignored.
func CoinDailyPrices(coinID string, chart *source.MarketChart) []model.CoinDailyPrice {
	if chart == nil || len(chart.Prices) == 0 {
		return nil
	}

	type sample struct {
		ts    int64
		price float64
	}
	byDay := make(map[string]sample)
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		ts := int64(p[0])
		day := time.UnixMilli(ts).UTC().Format(model.DateLayout)
		if prev, ok := byDay[day]; ok && prev.ts >= ts {
			continue
		}
		byDay[day] = sample{ts: ts, price: p[1]}
	}

	if len(byDay) == 0 {
		return nil
	}
	rows := make([]model.CoinDailyPrice, 0, len(byDay))
	for day, s := range byDay {
		rows = append(rows, model.CoinDailyPrice{
			CoinID:   coinID,
			Date:     day,
			PriceUSD: model.Round6(s.price),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}
