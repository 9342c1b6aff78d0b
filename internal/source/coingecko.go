package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"MarketLedger/internal/fetch"
)

// CoinGecko fetches market listings and per-coin price series.
type CoinGecko struct {
	Client         *fetch.Client
	MarketsURL     string // contains a {page} placeholder
	MarketChartURL string // contains a {coin_id} placeholder
}

// CoinMarket is one entry of the paginated /coins/markets listing. Nullable
// numeric fields stay pointers so the normalizer can decide what a missing
// value means; extra fields in the payload are ignored.
type CoinMarket struct {
	ID                string   `json:"id"`
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	CurrentPrice      *float64 `json:"current_price"`
	MarketCap         *float64 `json:"market_cap"`
	MarketCapRank     *int64   `json:"market_cap_rank"`
	TotalVolume       *float64 `json:"total_volume"`
	CirculatingSupply *float64 `json:"circulating_supply"`
	TotalSupply       *float64 `json:"total_supply"`
	ATH               *float64 `json:"ath"`
	ATL               *float64 `json:"atl"`
	LastUpdated       string   `json:"last_updated"`
}

// MarketChart is the per-coin series payload: [timestamp_ms, price] pairs.
type MarketChart struct {
	Prices [][]float64 `json:"prices"`
}

// Markets fetches one page of the market listing.
func (c *CoinGecko) Markets(page int) ([]CoinMarket, error) {
	u := strings.ReplaceAll(c.MarketsURL, "{page}", strconv.Itoa(page))
	body, err := c.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("markets page %d: %w", page, err)
	}
	var out []CoinMarket
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("markets page %d: decode: %w", page, err)
	}
	return out, nil
}

// MarketChart fetches the daily price series for one coin.
func (c *CoinGecko) MarketChart(coinID string) (*MarketChart, error) {
	u := strings.ReplaceAll(c.MarketChartURL, "{coin_id}", coinID)
	body, err := c.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("market chart %s: %w", coinID, err)
	}
	var chart MarketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("market chart %s: decode: %w", coinID, err)
	}
	return &chart, nil
}
