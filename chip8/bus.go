package chip8

import (
	"math/rand/v2"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timer"
	"github.com/valerio/go-chip8/chip8/video"
)

// Bus connects the CPU to the rest of the machine.
type Bus struct {
	Memory *memory.Memory
	Frame  *video.FrameBuffer
	Keypad *memory.Keypad
	Timers *timer.Timers

	rng *rand.Rand
}

func NewBus(seed uint64) *Bus {
	return &Bus{
		Memory: memory.New(),
		Frame:  video.NewFrameBuffer(),
		Keypad: memory.NewKeypad(),
		Timers: timer.New(),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

var _ cpu.Bus = (*Bus)(nil)

func (b *Bus) ReadWord(address uint16) (uint16, error) {
	return b.Memory.ReadWord(address)
}

func (b *Bus) ReadRange(address uint16, length int) ([]byte, error) {
	return b.Memory.ReadRange(address, length)
}

func (b *Bus) WriteRange(address uint16, values []byte) error {
	return b.Memory.WriteRange(address, values)
}

func (b *Bus) ClearScreen() {
	b.Frame.Clear()
}

func (b *Bus) DrawSprite(x, y int, rows []byte) bool {
	return b.Frame.DrawSprite(x, y, rows)
}

func (b *Bus) IsKeyPressed(key uint8) bool {
	return b.Keypad.IsPressed(key)
}

func (b *Bus) DelayTimer() uint8         { return b.Timers.Delay() }
func (b *Bus) SetDelayTimer(value uint8) { b.Timers.SetDelay(value) }
func (b *Bus) SetSoundTimer(value uint8) { b.Timers.SetSound(value) }

func (b *Bus) RandomByte() uint8 {
	return uint8(b.rng.UintN(256))
}
