package chip8

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// TestPatternEmulator displays test patterns without actual emulation
type TestPatternEmulator struct {
	frameBuffer      *video.FrameBuffer
	pattern          video.TestPattern
	animationCounter int
	limiter          timing.Limiter
}

func NewTestPatternEmulator() *TestPatternEmulator {
	e := &TestPatternEmulator{
		frameBuffer: video.NewFrameBuffer(),
		limiter:     timing.NewNoOpLimiter(),
	}
	video.DrawTestPattern(e.frameBuffer, e.pattern, 0)
	return e
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.animationCounter++
	if e.animationCounter%display.TestPatternAnimationFrames == 0 {
		video.DrawTestPattern(e.frameBuffer, e.pattern, e.animationCounter/display.TestPatternAnimationFrames)
	}
	e.limiter.WaitForNextFrame()
	return nil
}

func (e *TestPatternEmulator) GetCurrentFrame() *video.FrameBuffer {
	return e.frameBuffer
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

func (e *TestPatternEmulator) ExtractDebugData() *debug.CompleteDebugData {
	return &debug.CompleteDebugData{
		DebuggerState: debug.DebuggerRunning,
		Frames:        uint64(e.animationCounter),
	}
}

// GetFrameCount returns the number of frames shown since the last pattern change.
func (e *TestPatternEmulator) GetFrameCount() uint64 {
	return uint64(e.animationCounter)
}

// Pattern returns the pattern currently displayed.
func (e *TestPatternEmulator) Pattern() video.TestPattern {
	return e.pattern
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.pattern = e.pattern.Next()
	e.animationCounter = 0
	video.DrawTestPattern(e.frameBuffer, e.pattern, 0)
	slog.Info("Switched to test pattern", "pattern", e.pattern)
}

func (e *TestPatternEmulator) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		e.limiter = timing.NewNoOpLimiter()
	} else {
		e.limiter = limiter
	}
}
