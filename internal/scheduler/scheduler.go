package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"MarketLedger/internal/ingest"
)

// Scheduler manages the cron-driven ingestion jobs.
type Scheduler struct {
	Cron      *cron.Cron
	Crypto    *ingest.Crypto
	Commodity *ingest.Commodity
	Equity    *ingest.Equity
}

// New creates a Scheduler around the three ingestors.
func New(crypto *ingest.Crypto, commodity *ingest.Commodity, equity *ingest.Equity) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Crypto:    crypto,
		Commodity: commodity,
		Equity:    equity,
	}
}

// RegisterAll registers the snapshot refresh and the three price collections.
func (s *Scheduler) RegisterAll(coinsCron, cryptoPricesCron, oilCron, stocksCron string) error {
	if _, err := s.Cron.AddFunc(coinsCron, s.refreshCoins); err != nil {
		return fmt.Errorf("register coin snapshot task: %w", err)
	}
	if _, err := s.Cron.AddFunc(cryptoPricesCron, s.collectCryptoPrices); err != nil {
		return fmt.Errorf("register crypto prices task: %w", err)
	}
	if _, err := s.Cron.AddFunc(oilCron, s.collectOil); err != nil {
		return fmt.Errorf("register oil task: %w", err)
	}
	if _, err := s.Cron.AddFunc(stocksCron, s.collectStocks); err != nil {
		return fmt.Errorf("register stocks task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAllNow executes every ingestion job once, sequentially (for manual
// trigger / RUN_ON_START). Jobs are independent: one failing does not stop
// the others.
func (s *Scheduler) RunAllNow() {
	s.refreshCoins()
	s.collectCryptoPrices()
	s.collectOil()
	s.collectStocks()
}

func (s *Scheduler) refreshCoins() {
	if err := s.Crypto.RefreshCoins(); err != nil {
		log.Printf("[ERROR] coin snapshot refresh: %v", err)
	}
}

func (s *Scheduler) collectCryptoPrices() {
	if err := s.Crypto.CollectDailyPrices(); err != nil {
		log.Printf("[ERROR] crypto price collection: %v", err)
	}
}

func (s *Scheduler) collectOil() {
	if err := s.Commodity.Collect(); err != nil {
		log.Printf("[ERROR] oil price collection: %v", err)
	}
}

func (s *Scheduler) collectStocks() {
	if err := s.Equity.Collect(); err != nil {
		log.Printf("[ERROR] stock price collection: %v", err)
	}
}
