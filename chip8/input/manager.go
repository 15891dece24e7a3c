package input

import (
	"sync"
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Keypad receives the state of the 16 logical CHIP-8 keys.
type Keypad interface {
	PressKey(key uint8)
	ReleaseKey(key uint8)
}

// Manager handles input actions and their associated callbacks
type Manager struct {
	mu            sync.Mutex
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]time.Time
	keypad        Keypad
	now           func() time.Time
}

func NewManager(k Keypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]time.Time),
		keypad:        k,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
// Keypad actions go straight to the keypad and are never debounced.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if act.IsKeypad() {
		if m.keypad == nil {
			return
		}
		switch evt {
		case event.Press:
			m.keypad.PressKey(act.Key())
		case event.Release:
			m.keypad.ReleaseKey(act.Key())
		}
		return
	}

	m.mu.Lock()
	if evt == event.Press {
		now := m.now()
		if now.Sub(m.lastTriggered[act]) < debounceDuration {
			m.mu.Unlock()
			return
		}
		m.lastTriggered[act] = now
	}
	callbacks := append([]func(){}, m.handlers[act][evt]...)
	m.mu.Unlock()

	// callbacks may register more handlers
	for _, callback := range callbacks {
		callback()
	}
}
