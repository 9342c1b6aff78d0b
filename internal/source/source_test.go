package source

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MarketLedger/internal/fetch"
)

func client() *fetch.Client {
	return fetch.NewClient(5*time.Second, 1, 0, "")
}

func TestCoinGeckoMarkets_DecodesRecognizedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("page placeholder not substituted: %s", r.URL.RawQuery)
		}
		// Extra fields (image, roi) must be tolerated; nulls stay nil.
		fmt.Fprint(w, `[{
			"id":"bitcoin","symbol":"btc","name":"Bitcoin",
			"image":"https://example.com/btc.png",
			"current_price":67000.5,"market_cap":1300000000000,
			"market_cap_rank":1,"total_volume":null,
			"roi":{"times":2},
			"last_updated":"2025-06-01T14:22:05Z"
		}]`)
	}))
	defer srv.Close()

	cg := &CoinGecko{Client: client(), MarketsURL: srv.URL + "?page={page}"}
	entries, err := cg.Markets(2)
	if err != nil {
		t.Fatalf("markets: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != "bitcoin" || *e.CurrentPrice != 67000.5 || *e.MarketCapRank != 1 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.TotalVolume != nil {
		t.Errorf("null field must decode to nil, got %v", *e.TotalVolume)
	}
}

func TestCoinGeckoMarketChart_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" {
			t.Errorf("coin_id placeholder not substituted: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"prices":[[1704067200000, 42000.5]],"market_caps":[],"total_volumes":[]}`)
	}))
	defer srv.Close()

	cg := &CoinGecko{Client: client(), MarketChartURL: srv.URL + "/coins/{coin_id}/market_chart"}
	chart, err := cg.MarketChart("bitcoin")
	if err != nil {
		t.Fatalf("market chart: %v", err)
	}
	if len(chart.Prices) != 1 || chart.Prices[0][1] != 42000.5 {
		t.Errorf("unexpected chart: %+v", chart)
	}
}

func TestWTIDailyPrices_SkipsHeaderAndBadLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Date,Price\n2024-01-02,71.25\n2024-01-03,not-a-number\n2024-01-04,72.0\n")
	}))
	defer srv.Close()

	wti := &WTI{Client: client(), CSVURL: srv.URL}
	points, err := wti.DailyPrices()
	if err != nil {
		t.Fatalf("daily prices: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 parseable records, got %d", len(points))
	}
	if points[0].Date != "2024-01-02" || points[0].Price != 71.25 {
		t.Errorf("unexpected first record: %+v", points[0])
	}
}

func TestYahooDailyBars_NullsStayNil(t *testing.T) {
	ts1 := time.Date(2024, time.July, 1, 14, 30, 0, 0, time.UTC).Unix()
	ts2 := ts1 + 86400
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d],"indicators":{"quote":[{
			"open":[100.5,null],"high":[110,null],"low":[95,null],
			"close":[105,null],"volume":[1000,null]
		}]}}]}}`, ts1, ts2)
	}))
	defer srv.Close()

	y := &YahooChart{Client: client(), ChartURL: srv.URL + "/{ticker}"}
	bars, err := y.DailyBars("^GSPC")
	if err != nil {
		t.Fatalf("daily bars: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Open == nil || *bars[0].Open != 100.5 {
		t.Errorf("unexpected first bar: %+v", bars[0])
	}
	if bars[1].Close != nil {
		t.Errorf("null bar fields must stay nil: %+v", bars[1])
	}
}

func TestYahooDailyBars_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	y := &YahooChart{Client: client(), ChartURL: srv.URL + "/{ticker}"}
	if _, err := y.DailyBars("^BOGUS"); err == nil {
		t.Error("expected error from chart api error payload")
	}
}

func TestYahooDailyBars_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[]}}`)
	}))
	defer srv.Close()

	y := &YahooChart{Client: client(), ChartURL: srv.URL + "/{ticker}"}
	bars, err := y.DailyBars("^GSPC")
	if err != nil {
		t.Fatalf("no data must not be an error: %v", err)
	}
	if bars != nil {
		t.Errorf("expected empty result, got %v", bars)
	}
}
