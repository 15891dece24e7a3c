package terminal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

func newSimulatedBackend(t *testing.T) (*Backend, tcell.SimulationScreen) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 30)

	b := New()
	require.NoError(t, b.initWithScreen(screen, backend.BackendConfig{
		Title:   "test",
		Palette: display.DefaultPalette,
	}))
	t.Cleanup(func() { _ = b.Cleanup() })
	return b, screen
}

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		r    rune
		want action.Action
	}{
		{'1', action.Keypad1},
		{'4', action.KeypadC},
		{'q', action.Keypad4},
		{'x', action.Keypad0},
		{'v', action.KeypadF},
		{' ', action.EmulatorPauseToggle},
		{'n', action.EmulatorStepInstruction},
		{'Q', action.Keypad4},
		{'W', action.Keypad5},
		{'V', action.KeypadF},
		{'P', action.EmulatorPauseToggle},
	}
	for _, tt := range tests {
		got, ok := runeMapping[tt.r]
		require.True(t, ok, "rune %q", tt.r)
		assert.Equal(t, tt.want, got, "rune %q", tt.r)
	}

	assert.Equal(t, action.EmulatorQuit, keyMapping[tcell.KeyEscape])
	assert.Equal(t, action.EmulatorReset, keyMapping[tcell.KeyF5])
	assert.Equal(t, action.EmulatorSnapshot, keyMapping[tcell.KeyF12])
}

func TestKeypadEvents_PressHoldRelease(t *testing.T) {
	b := &Backend{
		keyStates:  make(map[action.Action]time.Time),
		activeKeys: make(map[action.Action]bool),
	}
	start := time.Now()
	b.keyStates[action.Keypad5] = start

	events := b.keypadEvents(start)
	require.Len(t, events, 1)
	assert.Equal(t, backend.InputEvent{Action: action.Keypad5, Type: event.Press}, events[0])

	events = b.keypadEvents(start.Add(keyTimeout / 2))
	require.Len(t, events, 1)
	assert.Equal(t, event.Hold, events[0].Type)

	events = b.keypadEvents(start.Add(keyTimeout))
	require.Len(t, events, 1)
	assert.Equal(t, backend.InputEvent{Action: action.Keypad5, Type: event.Release}, events[0])
	assert.Empty(t, b.keyStates)

	assert.Empty(t, b.keypadEvents(start.Add(2*keyTimeout)))
}

func TestUpdate_QueuesEmulatorActions(t *testing.T) {
	b, screen := newSimulatedBackend(t)

	screen.InjectKey(tcell.KeyF12, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'W', tcell.ModShift)

	// injected events are delivered asynchronously
	var events []backend.InputEvent
	require.Eventually(t, func() bool {
		got, err := b.Update(video.NewFrameBuffer())
		assert.NoError(t, err)
		events = append(events, got...)
		return len(events) >= 2
	}, time.Second, 5*time.Millisecond)

	assert.Contains(t, events, backend.InputEvent{Action: action.EmulatorSnapshot, Type: event.Press})
	assert.Contains(t, events, backend.InputEvent{Action: action.Keypad5, Type: event.Press})
}

func TestUpdate_RendersHalfBlocks(t *testing.T) {
	b, screen := newSimulatedBackend(t)

	fb := video.NewFrameBuffer()
	fb.SetPixel(0, 0, true)
	fb.SetPixel(1, 1, true)
	fb.SetPixel(2, 0, true)
	fb.SetPixel(2, 1, true)

	_, err := b.Update(fb)
	require.NoError(t, err)

	cells, w, _ := screen.GetContents()
	cell := func(x, y int) rune {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			return ' '
		}
		return runes[0]
	}

	assert.Equal(t, '▀', cell(0, 1))
	assert.Equal(t, '▄', cell(1, 1))
	assert.Equal(t, '█', cell(2, 1))
	assert.Equal(t, ' ', cell(3, 1))
}

func TestHandleAction(t *testing.T) {
	b := New()

	b.HandleAction(action.EmulatorDebugToggle)
	assert.True(t, b.config.ShowDebug)
	b.HandleAction(action.EmulatorDebugToggle)
	assert.False(t, b.config.ShowDebug)

	b.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, slog.LevelDebug, b.logLevel)
	b.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, slog.LevelDebug, b.logLevel, "clamped at debug")

	for range 5 {
		b.HandleAction(action.DebugLogLevelDecrease)
	}
	assert.Equal(t, slog.LevelError, b.logLevel)
}

func TestRegisterLines(t *testing.T) {
	data := &debug.CompleteDebugData{
		CPU: &debug.CPUState{
			V:          [16]uint8{0x01, 0x02, 15: 0xFF},
			I:          0x2A0,
			PC:         0x204,
			Stack:      []uint16{0x200},
			State:      "AWAIT KEY",
			WaitingKey: true,
			WaitingReg: 5,
		},
		Timers:      debug.TimerState{Delay: 3, Sound: 1, ToneActive: true},
		PressedKeys: []uint8{0x1, 0xA},
	}

	lines := registerLines(data)
	assert.Equal(t, "Status: RUNNING  CPU: AWAIT KEY", lines[0])
	assert.Equal(t, "V0:01 V1:02 V2:00 V3:00", lines[1])
	assert.Equal(t, "VC:00 VD:00 VE:00 VF:FF", lines[4])
	assert.Equal(t, "I: 0x2A0  PC: 0x204  SP: 1", lines[5])
	assert.Equal(t, "DT:   3  ST:   1  Tone: true", lines[6])
	assert.Equal(t, "Keys: 1 A", lines[7])
	assert.Equal(t, "Waiting for key -> V5", lines[len(lines)-1])
	assert.LessOrEqual(t, len(lines), registerHeight)
}
