package timing

import "time"

// Limiter paces the host loop at the 60 Hz timer rate.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame is due.
	// Returns immediately when running behind.
	WaitForNextFrame()

	// Reset restarts the schedule, called after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// TargetFPS is the CHIP-8 timer frequency, one frame per timer tick.
const TargetFPS = 60

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return FrameDurationAt(TargetFPS)
}

// FrameDurationAt returns the frame duration when running rate frames per
// second. Rates above TargetFPS fast-forward, zero or less means TargetFPS.
func FrameDurationAt(rate int) time.Duration {
	return time.Second / time.Duration(normalizeRate(rate))
}

func normalizeRate(rate int) int {
	if rate <= 0 {
		return TargetFPS
	}
	return rate
}

// New returns the limiter for the given name: "adaptive", "ticker" or "none",
// pacing rate frames per second.
func New(kind string, rate int) (Limiter, bool) {
	switch kind {
	case "", "adaptive":
		return NewAdaptiveLimiter(rate), true
	case "ticker":
		return NewTickerLimiter(rate), true
	case "none":
		return NewNoOpLimiter(), true
	default:
		return nil, false
	}
}
