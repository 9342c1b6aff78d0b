package normalize

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"MarketLedger/internal/model"
	"MarketLedger/internal/source"
)

// EquityPrices validates raw bars for one ticker and maps them to canonical
// rows within the inclusive [start, end] date window. Bars with any missing
// OHLCV field are dropped (holidays, halted sessions). The canonical ticker
// is kept as the key; DisplayTicker carries the symbol with its index
// prefix stripped (^GSPC -> GSPC) for presentation only.
func EquityPrices(ticker string, bars []source.RawBar, start, end string) []model.EquityDailyPrice {
	display := strings.TrimLeftFunc(ticker, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	rows := make([]model.EquityDailyPrice, 0, len(bars))
	for _, b := range bars {
		if b.Open == nil || b.High == nil || b.Low == nil || b.Close == nil || b.Volume == nil {
			continue
		}
		date := time.Unix(b.Timestamp, 0).UTC().Format(model.DateLayout)
		if date < start || date > end {
			continue
		}
		vol := int64(*b.Volume)
		if vol < 0 {
			continue
		}
		rows = append(rows, model.EquityDailyPrice{
			Date:          date,
			Open:          model.Round6(*b.Open),
			High:          model.Round6(*b.High),
			Low:           model.Round6(*b.Low),
			Close:         model.Round6(*b.Close),
			Volume:        vol,
			Ticker:        ticker,
			DisplayTicker: display,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	if len(rows) == 0 {
		return nil
	}
	return rows
}
