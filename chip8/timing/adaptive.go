package timing

import (
	"log/slog"
	"time"
)

// AdaptiveLimiter sleeps for most of the frame and busy-waits the rest.
// Once per second of wall time it compares the achieved rate with the target
// and nudges the schedule to absorb accumulated drift.
type AdaptiveLimiter struct {
	rate            int
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	windowStart     time.Time
	frameCounter    int64
}

// NewAdaptiveLimiter paces rate frames per second, see FrameDurationAt.
func NewAdaptiveLimiter(rate int) *AdaptiveLimiter {
	rate = normalizeRate(rate)
	now := time.Now()
	return &AdaptiveLimiter{
		rate:            rate,
		targetFrameTime: FrameDurationAt(rate),
		nextFrameTime:   now,
		windowStart:     now,
	}
}

// Rate returns the target frames per second.
func (a *AdaptiveLimiter) Rate() int {
	return a.rate
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	sleepTime := a.nextFrameTime.Sub(now)

	switch {
	case sleepTime > 0:
		if sleepTime >= 2*time.Millisecond {
			time.Sleep(sleepTime - time.Millisecond)
		}
		for time.Now().Before(a.nextFrameTime) {
			// busy-wait the last millisecond
		}
	case sleepTime < -a.targetFrameTime/3:
		// more than a third of a frame behind, drop the backlog
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)
	a.frameCounter++

	if a.frameCounter%int64(a.rate) == 0 {
		a.correctDrift(time.Now())
	}
}

// correctDrift runs once per rate frames.
func (a *AdaptiveLimiter) correctDrift(now time.Time) {
	elapsed := now.Sub(a.windowStart)
	a.windowStart = now
	if elapsed <= 0 {
		return
	}

	drift := now.Sub(a.nextFrameTime)
	if drift.Abs() > a.targetFrameTime/2 {
		a.nextFrameTime = a.nextFrameTime.Add(drift / 10)
		slog.Debug("Frame timing drift correction",
			"drift_ms", drift.Milliseconds(),
			"target_fps", a.rate,
			"fps", float64(a.rate)/elapsed.Seconds())
	}
}

func (a *AdaptiveLimiter) Reset() {
	now := time.Now()
	a.nextFrameTime = now
	a.windowStart = now
	a.frameCounter = 0
}
