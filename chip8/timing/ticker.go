package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but good enough for most ROMs.
type TickerLimiter struct {
	ticker    *time.Ticker
	frameTime time.Duration
}

func NewTickerLimiter(rate int) *TickerLimiter {
	frameTime := FrameDurationAt(rate)
	return &TickerLimiter{
		ticker:    time.NewTicker(frameTime),
		frameTime: frameTime,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.frameTime)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
