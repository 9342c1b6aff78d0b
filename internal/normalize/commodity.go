package normalize

import (
	"sort"

	"MarketLedger/internal/model"
	"MarketLedger/internal/source"
)

// CommodityPrices filters raw date/price records to the inclusive
// [start, end] window and returns rows sorted ascending by date. Dates are
// compared lexicographically, which is equivalent for YYYY-MM-DD; records
// with a date in any other form are dropped.
func CommodityPrices(points []source.RawPricePoint, start, end string) []model.CommodityDailyPrice {
	rows := make([]model.CommodityDailyPrice, 0, len(points))
	for _, p := range points {
		if len(p.Date) != len(model.DateLayout) {
			continue
		}
		if p.Date < start || p.Date > end {
			continue
		}
		rows = append(rows, model.CommodityDailyPrice{
			Date:     p.Date,
			PriceUSD: model.Round6(p.Price),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	if len(rows) == 0 {
		return nil
	}
	return rows
}
