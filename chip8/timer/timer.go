package timer

import (
	"sync"
	"time"
)

// Frequency is the rate at which both timers count down.
const Frequency = 60

// TickDuration is the wall-clock length of one timer tick.
const TickDuration = time.Second / Frequency

// ToneListener is notified when the sound timer starts or stops the tone.
// Listeners run before Tick or SetSound return and must not call either of them.
type ToneListener func(active bool)

// Timers holds the CHIP-8 delay and sound timers.
// All methods are safe for concurrent use, so a host may tick from a separate goroutine.
type Timers struct {
	// toneMu orders sound timer changes together with their notifications,
	// so listeners observe transitions in the order they happened.
	toneMu sync.Mutex

	mu        sync.Mutex
	delay     uint8
	sound     uint8
	ticks     uint64
	listeners []ToneListener
}

// New returns timers set to zero.
func New() *Timers {
	return &Timers{}
}

// OnToneChange registers a listener invoked on tone transitions.
func (t *Timers) OnToneChange(l ToneListener) {
	t.mu.Lock()
	t.listeners = append(t.listeners, l)
	t.mu.Unlock()
}

// Tick advances both timers by one 60 Hz step.
func (t *Timers) Tick() {
	t.toneMu.Lock()
	defer t.toneMu.Unlock()

	t.mu.Lock()
	t.ticks++
	if t.delay > 0 {
		t.delay--
	}
	stopped := false
	if t.sound > 0 {
		t.sound--
		stopped = t.sound == 0
	}
	listeners := t.listeners
	t.mu.Unlock()

	if stopped {
		notify(listeners, false)
	}
}

// Delay returns the delay timer value.
func (t *Timers) Delay() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delay
}

// SetDelay sets the delay timer.
func (t *Timers) SetDelay(value uint8) {
	t.mu.Lock()
	t.delay = value
	t.mu.Unlock()
}

// Sound returns the sound timer value.
func (t *Timers) Sound() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sound
}

// SetSound sets the sound timer, notifying listeners if the tone state changes.
func (t *Timers) SetSound(value uint8) {
	t.toneMu.Lock()
	defer t.toneMu.Unlock()

	t.mu.Lock()
	wasActive := t.sound != 0
	t.sound = value
	isActive := t.sound != 0
	listeners := t.listeners
	t.mu.Unlock()

	if wasActive != isActive {
		notify(listeners, isActive)
	}
}

// ToneActive reports whether the tone should be audible.
func (t *Timers) ToneActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sound != 0
}

// Ticks returns the number of ticks since creation.
func (t *Timers) Ticks() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

func notify(listeners []ToneListener, active bool) {
	for _, l := range listeners {
		l(active)
	}
}
