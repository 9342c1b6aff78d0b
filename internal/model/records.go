package model

// DateLayout is the canonical storage form for all dates: UTC calendar day.
const DateLayout = "2006-01-02"

// Coin is one row of the cryptocurrencies snapshot table. The table holds
// only the latest market listing; every refresh replaces all rows.
type Coin struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	MarketCapRank     int64   `json:"market_cap_rank"`
	TotalVolume       float64 `json:"total_volume"`
	CirculatingSupply float64 `json:"circulating_supply"`
	TotalSupply       float64 `json:"total_supply"`
	ATH               float64 `json:"ath"`
	ATL               float64 `json:"atl"`
	LastUpdated       string  `json:"last_updated"`
}

// CoinDailyPrice is one (coin, day) fact in the crypto_prices history.
// CoinID refers to Coin.ID but the reference is not enforced: prices may be
// ingested before (or without) a matching snapshot row.
type CoinDailyPrice struct {
	CoinID   string  `json:"coin_id"`
	Date     string  `json:"date"`
	PriceUSD float64 `json:"price_usd"`
}

// CommodityDailyPrice is one day of the single commodity series (oil_price).
type CommodityDailyPrice struct {
	Date     string  `json:"date"`
	PriceUSD float64 `json:"price_usd"`
}

// EquityDailyPrice is one (ticker, day) OHLCV row in stock_price.
// Ticker is the canonical symbol and part of the key; DisplayTicker is the
// same symbol with any non-alphanumeric prefix stripped and is never stored.
type EquityDailyPrice struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        int64   `json:"volume"`
	Ticker        string  `json:"ticker"`
	DisplayTicker string  `json:"-"`
}
