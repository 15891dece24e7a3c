package memory

import "sync"

// KeyCount is the number of keys on the CHIP-8 hex keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 logical keys (0x0-0xF).
// Key codes are masked to their low nibble.
type Keypad struct {
	mu    sync.RWMutex
	state uint16
}

// NewKeypad creates a keypad with all keys released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks a key as held down.
func (k *Keypad) Press(key uint8) {
	k.mu.Lock()
	k.state |= 1 << (key & 0x0F)
	k.mu.Unlock()
}

// Release marks a key as released.
func (k *Keypad) Release(key uint8) {
	k.mu.Lock()
	k.state &^= 1 << (key & 0x0F)
	k.mu.Unlock()
}

// IsPressed reports whether a key is currently held down.
func (k *Keypad) IsPressed(key uint8) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.state&(1<<(key&0x0F)) != 0
}

// Pressed returns the currently held keys in ascending order.
func (k *Keypad) Pressed() []uint8 {
	k.mu.RLock()
	state := k.state
	k.mu.RUnlock()

	var keys []uint8
	for i := uint8(0); i < KeyCount; i++ {
		if state&(1<<i) != 0 {
			keys = append(keys, i)
		}
	}
	return keys
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.mu.Lock()
	k.state = 0
	k.mu.Unlock()
}
