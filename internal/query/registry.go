package query

// NamedQuery is one predefined, parameterized query. SQL text lives here as
// data; execution is lookup plus bind, so caller-supplied values can never
// alter the statement.
type NamedQuery struct {
	Name   string
	SQL    string
	Params []string // ordered positional parameter names, for documentation
}

var registry = map[string]NamedQuery{
	// --- snapshot table ---
	"top_coins_by_market_cap": {
		Name: "top_coins_by_market_cap",
		SQL: `SELECT id, symbol, name, current_price, market_cap, market_cap_rank
			FROM cryptocurrencies
			WHERE market_cap_rank IS NOT NULL AND market_cap_rank > 0
			ORDER BY market_cap_rank ASC
			LIMIT ?`,
		Params: []string{"limit"},
	},
	"coins_near_ath": {
		Name: "coins_near_ath",
		SQL: `SELECT id, symbol, name, current_price, ath,
			       ROUND(100.0 * current_price / ath, 2) AS pct_of_ath
			FROM cryptocurrencies
			WHERE ath > 0 AND current_price > 0
			  AND (1.0 * current_price / ath) >= ?
			ORDER BY pct_of_ath DESC`,
		Params: []string{"min_fraction_of_ath"},
	},
	"high_circulation_coins": {
		Name: "high_circulation_coins",
		SQL: `SELECT id, symbol, name, circulating_supply, total_supply,
			       ROUND(100.0 * circulating_supply / total_supply, 2) AS pct_circulating
			FROM cryptocurrencies
			WHERE total_supply > 0
			  AND (1.0 * circulating_supply / total_supply) >= ?
			ORDER BY pct_circulating DESC`,
		Params: []string{"min_fraction_circulating"},
	},

	// --- coin price history ---
	"coin_prices_in_range": {
		Name: "coin_prices_in_range",
		SQL: `SELECT date, price_usd FROM crypto_prices
			WHERE coin_id = ? AND date >= ? AND date <= ?
			ORDER BY date`,
		Params: []string{"coin_id", "start", "end"},
	},
	"coin_price_stats_in_range": {
		Name: "coin_price_stats_in_range",
		SQL: `SELECT COUNT(*) AS days,
			       ROUND(AVG(price_usd), 6) AS avg_price,
			       ROUND(MIN(price_usd), 6) AS min_price,
			       ROUND(MAX(price_usd), 6) AS max_price
			FROM crypto_prices
			WHERE coin_id = ? AND date >= ? AND date <= ?`,
		Params: []string{"coin_id", "start", "end"},
	},
	"top_coins_by_avg_price": {
		Name: "top_coins_by_avg_price",
		SQL: `SELECT coin_id, ROUND(AVG(price_usd), 6) AS avg_price
			FROM crypto_prices
			WHERE date >= ? AND date <= ?
			GROUP BY coin_id
			ORDER BY avg_price DESC
			LIMIT ?`,
		Params: []string{"start", "end", "limit"},
	},
	"coin_monthly_avg_price": {
		Name: "coin_monthly_avg_price",
		SQL: `SELECT strftime('%Y-%m', date) AS month,
			       ROUND(AVG(price_usd), 6) AS avg_price
			FROM crypto_prices
			WHERE coin_id = ?
			GROUP BY month
			ORDER BY month`,
		Params: []string{"coin_id"},
	},

	// --- commodity ---
	"oil_prices_in_range": {
		Name: "oil_prices_in_range",
		SQL: `SELECT date, price_usd FROM oil_price
			WHERE date >= ? AND date <= ?
			ORDER BY date`,
		Params: []string{"start", "end"},
	},
	"oil_yearly_stats": {
		Name: "oil_yearly_stats",
		SQL: `SELECT strftime('%Y', date) AS year,
			       COUNT(*) AS days,
			       ROUND(AVG(price_usd), 2) AS avg_price,
			       ROUND(MIN(price_usd), 2) AS min_price,
			       ROUND(MAX(price_usd), 2) AS max_price,
			       ROUND(MAX(price_usd) - MIN(price_usd), 2) AS volatility
			FROM oil_price
			GROUP BY year
			ORDER BY year`,
	},

	// --- equity ---
	"stock_prices_for_ticker": {
		Name: "stock_prices_for_ticker",
		SQL: `SELECT date, open, high, low, close, volume FROM stock_price
			WHERE ticker = ? AND date >= ? AND date <= ?
			ORDER BY date`,
		Params: []string{"ticker", "start", "end"},
	},
	"widest_range_days": {
		Name: "widest_range_days",
		SQL: `SELECT date, open, high, low, close,
			       ROUND(high - low, 6) AS day_range
			FROM stock_price
			WHERE ticker = ?
			ORDER BY (high - low) DESC
			LIMIT ?`,
		Params: []string{"ticker", "limit"},
	},
	"monthly_avg_close": {
		Name: "monthly_avg_close",
		SQL: `SELECT ticker, strftime('%Y-%m', date) AS month,
			       ROUND(AVG(close), 2) AS avg_close
			FROM stock_price
			GROUP BY ticker, month
			ORDER BY ticker, month`,
	},

	// --- cross-source joins on the shared date axis ---
	"coin_vs_stock_daily": {
		Name: "coin_vs_stock_daily",
		SQL: `SELECT c.date, c.price_usd AS coin_price, s.close AS stock_close
			FROM (SELECT date, price_usd FROM crypto_prices WHERE coin_id = ?) c
			INNER JOIN (SELECT date, close FROM stock_price WHERE ticker = ?) s
			  ON c.date = s.date
			ORDER BY c.date`,
		Params: []string{"coin_id", "ticker"},
	},
	"coin_vs_oil_daily": {
		Name: "coin_vs_oil_daily",
		SQL: `SELECT c.date, c.price_usd AS coin_price, o.price_usd AS oil_price
			FROM (SELECT date, price_usd FROM crypto_prices WHERE coin_id = ?) c
			INNER JOIN oil_price o ON c.date = o.date
			ORDER BY c.date`,
		Params: []string{"coin_id"},
	},
	// Commodity and equity calendars differ (different market holidays),
	// so every commodity date is preserved and the equity side may be null.
	"oil_vs_stock_daily": {
		Name: "oil_vs_stock_daily",
		SQL: `SELECT o.date, o.price_usd AS oil_price, s.close AS stock_close
			FROM oil_price o
			LEFT JOIN (SELECT date, close FROM stock_price WHERE ticker = ?) s
			  ON o.date = s.date
			ORDER BY o.date`,
		Params: []string{"ticker"},
	},
	"top_coins_vs_stock": {
		Name: "top_coins_vs_stock",
		SQL: `WITH top_coins AS (
			    SELECT id FROM cryptocurrencies
			    WHERE market_cap_rank IS NOT NULL AND market_cap_rank > 0
			    ORDER BY market_cap_rank ASC
			    LIMIT ?
			)
			SELECT p.coin_id, p.date, p.price_usd, s.close AS stock_close
			FROM crypto_prices p
			INNER JOIN top_coins t ON p.coin_id = t.id
			LEFT JOIN (SELECT date, close FROM stock_price WHERE ticker = ?) s
			  ON p.date = s.date
			ORDER BY p.coin_id, p.date`,
		Params: []string{"limit", "ticker"},
	},
	"market_snapshot_daily": {
		Name: "market_snapshot_daily",
		SQL: `SELECT o.date,
			       c.price_usd AS coin_price,
			       o.price_usd AS oil_price,
			       s.close     AS stock_close
			FROM oil_price o
			LEFT JOIN (SELECT date, price_usd FROM crypto_prices WHERE coin_id = ?) c
			  ON o.date = c.date
			LEFT JOIN (SELECT date, close FROM stock_price WHERE ticker = ?) s
			  ON o.date = s.date
			WHERE o.date >= ? AND o.date <= ?
			ORDER BY o.date`,
		Params: []string{"coin_id", "ticker", "start", "end"},
	},
}

// Lookup returns the named query, if registered.
func Lookup(name string) (NamedQuery, bool) {
	q, ok := registry[name]
	return q, ok
}

// Names lists all registered query names.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
