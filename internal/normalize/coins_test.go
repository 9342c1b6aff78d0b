package normalize

import (
	"testing"

	"MarketLedger/internal/source"
)

func ip(v int64) *int64 { return &v }

func TestCoins_MapsRecognizedColumns(t *testing.T) {
	listing := []source.CoinMarket{
		{
			ID: "bitcoin", Symbol: "btc", Name: "Bitcoin",
			CurrentPrice: fp(67000.123456789), MarketCap: fp(1.3e12),
			MarketCapRank: ip(1), TotalVolume: fp(3.5e10),
			CirculatingSupply: fp(19_700_000), TotalSupply: fp(21_000_000),
			ATH: fp(73800), ATL: fp(67.81),
			LastUpdated: "2025-06-01T14:22:05.123Z",
		},
	}
	coins := Coins(listing)
	if len(coins) != 1 {
		t.Fatalf("expected 1 coin, got %d", len(coins))
	}
	c := coins[0]
	if c.CurrentPrice != 67000.123457 {
		t.Errorf("current_price not rounded: %v", c.CurrentPrice)
	}
	if c.MarketCapRank != 1 {
		t.Errorf("unexpected rank: %d", c.MarketCapRank)
	}
	if c.LastUpdated != "2025-06-01" {
		t.Errorf("last_updated should be reduced to the UTC date: %q", c.LastUpdated)
	}
}

func TestCoins_DropsEntriesWithoutID(t *testing.T) {
	listing := []source.CoinMarket{
		{Symbol: "???"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
	}
	coins := Coins(listing)
	if len(coins) != 1 || coins[0].ID != "ethereum" {
		t.Fatalf("expected only ethereum, got %v", coins)
	}
	// Missing numeric fields become zeros, not an error.
	if coins[0].CurrentPrice != 0 || coins[0].MarketCapRank != 0 {
		t.Errorf("missing fields should default to zero: %+v", coins[0])
	}
}

func TestCoins_Empty(t *testing.T) {
	if coins := Coins(nil); coins != nil {
		t.Errorf("empty listing should yield no coins, got %v", coins)
	}
}
