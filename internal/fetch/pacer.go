package fetch

import "time"

// Pacer enforces a fixed delay between successive resource units in a batch
// (pages, coins, tickers), independent of any retry sleeps. The first call
// never waits.
type Pacer struct {
	Interval time.Duration

	started bool
	sleep   func(time.Duration)
}

// NewPacer creates a pacer with the given inter-request interval.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{Interval: interval, sleep: time.Sleep}
}

// Wait blocks for the configured interval, except before the first unit.
func (p *Pacer) Wait() {
	if !p.started {
		p.started = true
		return
	}
	if p.Interval > 0 {
		p.sleep(p.Interval)
	}
}
