package chip8

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Emulator is the interface for all emulator implementations
type Emulator interface {
	RunUntilFrame() error
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	ExtractDebugData() *debug.CompleteDebugData
	SetFrameLimiter(limiter timing.Limiter)
	GetFrameCount() uint64
}

var (
	_ Emulator = (*VM)(nil)
	_ Emulator = (*TestPatternEmulator)(nil)
)
