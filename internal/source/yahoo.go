package source

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"MarketLedger/internal/fetch"
)

// YahooChart fetches daily OHLCV bars per ticker from the Yahoo chart API.
type YahooChart struct {
	Client   *fetch.Client
	ChartURL string // contains a {ticker} placeholder
}

// RawBar is one bar as delivered by the chart API. Yahoo emits JSON nulls
// for holidays and halted sessions, so every field stays a pointer until
// the normalizer validates the row.
type RawBar struct {
	Timestamp int64
	Open      *float64
	High      *float64
	Low       *float64
	Close     *float64
	Volume    *float64
}

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyBars fetches the daily series for one ticker. A ticker with no data
// is not an error: it yields an empty slice.
func (y *YahooChart) DailyBars(ticker string) ([]RawBar, error) {
	u := strings.ReplaceAll(y.ChartURL, "{ticker}", url.QueryEscape(ticker))
	body, err := y.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("chart %s: decode: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: api error: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	at := func(vals []*float64, i int) *float64 {
		if i < len(vals) {
			return vals[i]
		}
		return nil
	}

	bars := make([]RawBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, RawBar{
			Timestamp: ts,
			Open:      at(quote.Open, i),
			High:      at(quote.High, i),
			Low:       at(quote.Low, i),
			Close:     at(quote.Close, i),
			Volume:    at(quote.Volume, i),
		})
	}
	return bars, nil
}
