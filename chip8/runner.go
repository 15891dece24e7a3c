package chip8

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// RunOptions configures the host loop.
type RunOptions struct {
	Backend       backend.Backend
	BackendConfig backend.BackendConfig
	// Recorder, if set, captures one frame of audio per completed emulated frame.
	Recorder *audio.Recorder
	// SnapshotLabel is appended to the names of snapshots taken with F12.
	SnapshotLabel string
}

// emulatorActions are forwarded to the emulator on press.
var emulatorActions = []action.Action{
	action.EmulatorPauseToggle,
	action.EmulatorStepFrame,
	action.EmulatorStepInstruction,
	action.EmulatorReset,
	action.EmulatorTestPatternCycle,
}

// backendActions are forwarded to backends implementing backend.ActionHandler.
var backendActions = []action.Action{
	action.EmulatorDebugToggle,
	action.DebugLogLevelIncrease,
	action.DebugLogLevelDecrease,
}

// Run drives emu with the backend until the backend requests to quit or the
// emulator fails. The backend is initialized and cleaned up here.
func Run(emu Emulator, opts RunOptions) error {
	b := opts.Backend
	config := opts.BackendConfig
	if config.DebugProvider == nil {
		config.DebugProvider = emu
	}
	if config.Palette == (display.Palette{}) {
		config.Palette = display.DefaultPalette
	}

	if err := b.Init(config); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	var keypad input.Keypad
	if k, ok := emu.(input.Keypad); ok {
		keypad = k
	}
	manager := input.NewManager(keypad)

	quit := false
	manager.On(action.EmulatorQuit, event.Press, func() {
		quit = true
	})
	manager.On(action.EmulatorSnapshot, event.Press, func() {
		debug.TakeSnapshot(emu.GetCurrentFrame(), config.Palette, opts.SnapshotLabel)
	})
	for _, act := range emulatorActions {
		manager.On(act, event.Press, func() {
			emu.HandleAction(act, true)
		})
	}
	if handler, ok := b.(backend.ActionHandler); ok {
		for _, act := range backendActions {
			manager.On(act, event.Press, func() {
				handler.HandleAction(act)
			})
		}
	}

	for !quit {
		before := emu.GetFrameCount()
		if err := emu.RunUntilFrame(); err != nil {
			return fmt.Errorf("emulation stopped: %w", err)
		}

		// paused or single stepped passes produce no audio
		if opts.Recorder != nil && emu.GetFrameCount() != before {
			if err := opts.Recorder.RecordFrame(); err != nil {
				return fmt.Errorf("failed to record audio: %w", err)
			}
		}

		events, err := b.Update(emu.GetCurrentFrame())
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}
		for _, ev := range events {
			manager.Trigger(ev.Action, ev.Type)
		}
	}

	slog.Info("Emulator stopped")
	return nil
}
