package cpu

import (
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timer"
	"github.com/valerio/go-chip8/chip8/video"
)

type testBus struct {
	*memory.Memory
	fb     *video.FrameBuffer
	keys   *memory.Keypad
	timers *timer.Timers
	random uint8
}

func newTestBus() *testBus {
	return &testBus{
		Memory: memory.New(),
		fb:     video.NewFrameBuffer(),
		keys:   memory.NewKeypad(),
		timers: timer.New(),
	}
}

func (b *testBus) ClearScreen()                         { b.fb.Clear() }
func (b *testBus) DrawSprite(x, y int, rows []byte) bool { return b.fb.DrawSprite(x, y, rows) }
func (b *testBus) IsKeyPressed(key uint8) bool          { return b.keys.IsPressed(key) }
func (b *testBus) DelayTimer() uint8                    { return b.timers.Delay() }
func (b *testBus) SetDelayTimer(value uint8)            { b.timers.SetDelay(value) }
func (b *testBus) SetSoundTimer(value uint8)            { b.timers.SetSound(value) }
func (b *testBus) RandomByte() uint8                    { return b.random }

// newTestCPU returns a CPU with program loaded at 0x200.
func newTestCPU(program ...byte) (*CPU, *testBus) {
	bus := newTestBus()
	if len(program) > 0 {
		if err := bus.LoadROM(program); err != nil {
			panic(err)
		}
	}
	return New(bus, DefaultStackDepth), bus
}

// exec runs a single instruction without going through memory.
func exec(c *CPU, opcode uint16) error {
	in := Instruction(opcode)
	handler := Decode(in)
	if handler == nil {
		return &DecodeError{Opcode: in, PC: c.pc}
	}
	c.pc += 2
	return handler(c, in)
}
