package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"MarketLedger/internal/model"
)

// Store persists canonical market rows to a SQLite database. It is a
// single-writer resource: batch writes are serialized with a mutex, readers
// may run concurrently thanks to WAL mode. Alongside the write handle it
// holds a second, query_only connection pool for the query layer, so read
// callers cannot mutate the database no matter what SQL they submit.
type Store struct {
	db  *sql.DB
	rdb *sql.DB
	mu  sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the dashboard can read while an ingestion job writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// The _pragma DSN parameter is applied to every connection in the
	// pool, so query_only holds for all reads, not just the first one.
	rdb, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=query_only(1)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open read-only sqlite: %w", err)
	}
	s.rdb = rdb

	log.Printf("[INFO] store opened: %s", dbPath)
	return s, nil
}

// migrate is idempotent and safe to run before every batch.
func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cryptocurrencies (
			id                 TEXT PRIMARY KEY,
			symbol             TEXT NOT NULL,
			name               TEXT NOT NULL,
			current_price      REAL,
			market_cap         REAL,
			market_cap_rank    INTEGER,
			total_volume       REAL,
			circulating_supply REAL,
			total_supply       REAL,
			ath                REAL,
			atl                REAL,
			last_updated       TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS crypto_prices (
			coin_id   TEXT NOT NULL,
			date      TEXT NOT NULL,
			price_usd REAL NOT NULL,
			PRIMARY KEY (coin_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crypto_prices_date ON crypto_prices(date)`,

		`CREATE TABLE IF NOT EXISTS oil_price (
			date      TEXT PRIMARY KEY,
			price_usd REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS stock_price (
			date   TEXT NOT NULL,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume INTEGER NOT NULL,
			ticker TEXT NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_price_date ON stock_price(date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// DB exposes the read-write handle.
func (s *Store) DB() *sql.DB { return s.db }

// ReadDB exposes the query_only handle. SQLite rejects any statement that
// would write through it, including mutations hidden behind a WITH prefix,
// so it is the handle the query layer must be built on.
func (s *Store) ReadDB() *sql.DB { return s.rdb }

// ReplaceCoins refreshes the cryptocurrencies snapshot: delete-all then
// insert-all inside one transaction, so readers see either the previous
// complete snapshot or the new one, never a mix.
func (s *Store) ReplaceCoins(coins []model.Coin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cryptocurrencies"); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO cryptocurrencies
		(id, symbol, name, current_price, market_cap, market_cap_rank,
		 total_volume, circulating_supply, total_supply, ath, atl, last_updated)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range coins {
		if _, err := stmt.Exec(c.ID, c.Symbol, c.Name, c.CurrentPrice, c.MarketCap,
			c.MarketCapRank, c.TotalVolume, c.CirculatingSupply, c.TotalSupply,
			c.ATH, c.ATL, c.LastUpdated); err != nil {
			return fmt.Errorf("insert coin %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// UpsertCoinPrices merges daily coin prices into crypto_prices. Existing
// (coin_id, date) rows are replaced; rows for other keys are untouched.
// The whole batch commits atomically.
func (s *Store) UpsertCoinPrices(rows []model.CoinDailyPrice) error {
	if len(rows) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("REPLACE INTO crypto_prices (coin_id, date, price_usd) VALUES (?,?,?)")
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.CoinID, r.Date, r.PriceUSD); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", r.CoinID, r.Date, err)
		}
	}
	return tx.Commit()
}

// UpsertOilPrices merges commodity daily prices into oil_price.
func (s *Store) UpsertOilPrices(rows []model.CommodityDailyPrice) error {
	if len(rows) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("REPLACE INTO oil_price (date, price_usd) VALUES (?,?)")
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Date, r.PriceUSD); err != nil {
			return fmt.Errorf("upsert %s: %w", r.Date, err)
		}
	}
	return tx.Commit()
}

// UpsertStockPrices merges equity OHLCV rows into stock_price.
func (s *Store) UpsertStockPrices(rows []model.EquityDailyPrice) error {
	if len(rows) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`REPLACE INTO stock_price
		(date, open, high, low, close, volume, ticker) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Date, r.Open, r.High, r.Low, r.Close, r.Volume, r.Ticker); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", r.Ticker, r.Date, err)
		}
	}
	return tx.Commit()
}

// Close closes both database handles.
func (s *Store) Close() error {
	log.Println("[INFO] closing store")
	rerr := s.rdb.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return rerr
}
