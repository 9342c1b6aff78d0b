package normalize

import (
	"time"

	"MarketLedger/internal/model"
	"MarketLedger/internal/source"
)

// Coins maps a market listing to snapshot rows, keeping only recognized
// columns. Entries without an id are dropped; missing numeric fields become
// zero values. last_updated is reduced to the UTC calendar date.
func Coins(listing []source.CoinMarket) []model.Coin {
	coins := make([]model.Coin, 0, len(listing))
	for _, m := range listing {
		if m.ID == "" {
			continue
		}
		coins = append(coins, model.Coin{
			ID:                m.ID,
			Symbol:            m.Symbol,
			Name:              m.Name,
			CurrentPrice:      model.Round6(deref(m.CurrentPrice)),
			MarketCap:         model.Round6(deref(m.MarketCap)),
			MarketCapRank:     derefInt(m.MarketCapRank),
			TotalVolume:       model.Round6(deref(m.TotalVolume)),
			CirculatingSupply: model.Round6(deref(m.CirculatingSupply)),
			TotalSupply:       model.Round6(deref(m.TotalSupply)),
			ATH:               model.Round6(deref(m.ATH)),
			ATL:               model.Round6(deref(m.ATL)),
			LastUpdated:       lastUpdatedDate(m.LastUpdated),
		})
	}
	if len(coins) == 0 {
		return nil
	}
	return coins
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// lastUpdatedDate extracts the UTC date from an RFC3339 timestamp. An
// unparseable value is kept verbatim rather than lost.
func lastUpdatedDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(model.DateLayout)
}
