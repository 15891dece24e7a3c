package backend

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend represents a complete emulator platform (rendering + input).
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (debug panels, log filtering)
type Backend interface {
	// Init configures the backend, required before calling Update.
	Init(config BackendConfig) error

	// Update renders the frame and returns the input events collected since
	// the previous call. The caller routes them through the input manager.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// ActionHandler is implemented by backends with actions of their own,
// such as toggling a debug view. Called for emulator actions on press.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// InputEvent is a platform input translated to an action.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// DebugDataProvider gives backends read access to emulator state.
type DebugDataProvider interface {
	ExtractDebugData() *debug.CompleteDebugData
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title         string
	Scale         int
	ShowDebug     bool // Backends may ignore unsupported features
	TestPattern   bool // Frames come from the test pattern generator
	Palette       display.Palette
	DebugProvider DebugDataProvider
}
