package model

import "github.com/shopspring/decimal"

// Round6 rounds a price to 6 fractional digits through decimal arithmetic,
// so repeated ingestion of the same value always stores the same number.
func Round6(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(6).Float64()
	return f
}
