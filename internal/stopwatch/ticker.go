package stopwatch

import "time"

// Ticker 周期触发源
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc 按间隔创建 Ticker
type TickerFunc func(interval time.Duration) Ticker

type RealTicker struct {
	ticker *time.Ticker
}

var _ Ticker = (*RealTicker)(nil)

func NewRealTicker(interval time.Duration) Ticker {
	return &RealTicker{ticker: time.NewTicker(interval)}
}

func (r *RealTicker) C() <-chan time.Time {
	return r.ticker.C
}

func (r *RealTicker) Stop() {
	r.ticker.Stop()
}
