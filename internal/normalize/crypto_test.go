package normalize

import (
	"testing"
	"time"

	"MarketLedger/internal/source"
)

func ms(y int, mo time.Month, d, h, min int) float64 {
	return float64(time.Date(y, mo, d, h, min, 0, 0, time.UTC).UnixMilli())
}

func TestCoinDailyPrices_CollapsesToLastSamplePerDay(t *testing.T) {
	chart := &source.MarketChart{Prices: [][]float64{
		{ms(2025, time.January, 1, 2, 0), 100.123456789},
		{ms(2025, time.January, 1, 23, 0), 101.5},
	}}

	rows := CoinDailyPrices("bitcoin", chart)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.CoinID != "bitcoin" || r.Date != "2025-01-01" {
		t.Errorf("unexpected key: %s/%s", r.CoinID, r.Date)
	}
	if r.PriceUSD != 101.5 {
		t.Errorf("expected last sample of the day (101.5), got %v", r.PriceUSD)
	}
}

func TestCoinDailyPrices_SortedAndRounded(t *testing.T) {
	chart := &source.MarketChart{Prices: [][]float64{
		{ms(2025, time.March, 2, 12, 0), 3.9999999},
		{ms(2025, time.March, 1, 12, 0), 1.1234567891},
	}}

	rows := CoinDailyPrices("cardano", chart)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date != "2025-03-01" || rows[1].Date != "2025-03-02" {
		t.Errorf("rows not sorted by date: %v", rows)
	}
	if rows[0].PriceUSD != 1.123457 {
		t.Errorf("expected 6-decimal rounding, got %v", rows[0].PriceUSD)
	}
	if rows[1].PriceUSD != 4.0 {
		t.Errorf("expected 4.0 after rounding, got %v", rows[1].PriceUSD)
	}
}

func TestCoinDailyPrices_OutOfOrderSamples(t *testing.T) {
	// Later timestamp wins regardless of input order.
	chart := &source.MarketChart{Prices: [][]float64{
		{ms(2025, time.June, 10, 20, 0), 200},
		{ms(2025, time.June, 10, 4, 0), 100},
	}}
	rows := CoinDailyPrices("ethereum", chart)
	if len(rows) != 1 || rows[0].PriceUSD != 200 {
		t.Fatalf("expected the chronologically last sample, got %v", rows)
	}
}

func TestCoinDailyPrices_UTCDayBoundary(t *testing.T) {
	chart := &source.MarketChart{Prices: [][]float64{
		{ms(2025, time.May, 1, 23, 59), 10},
		{ms(2025, time.May, 2, 0, 1), 20},
	}}
	rows := CoinDailyPrices("solana", chart)
	if len(rows) != 2 {
		t.Fatalf("samples either side of UTC midnight must not collapse: %v", rows)
	}
}

func TestCoinDailyPrices_Empty(t *testing.T) {
	if rows := CoinDailyPrices("bitcoin", nil); rows != nil {
		t.Errorf("nil chart should yield no rows, got %v", rows)
	}
	if rows := CoinDailyPrices("bitcoin", &source.MarketChart{}); rows != nil {
		t.Errorf("empty chart should yield no rows, got %v", rows)
	}
	// Malformed sample pairs are skipped, not fatal.
	rows := CoinDailyPrices("bitcoin", &source.MarketChart{Prices: [][]float64{{1}}})
	if rows != nil {
		t.Errorf("short pairs should be ignored, got %v", rows)
	}
}
