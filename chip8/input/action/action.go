package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 hex keypad, the value of each action is the key it maps to.
	Keypad0 Action = iota
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadA
	KeypadB
	KeypadC
	KeypadD
	KeypadE
	KeypadF

	// Emulator features
	EmulatorDebugToggle
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorTestPatternCycle
	EmulatorReset
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions for help screens and debouncing.
type Category int

const (
	CategoryKeypad Category = iota
	CategoryEmulator
	CategoryDebug
)

// Info describes an action for display purposes.
type Info struct {
	Name     string
	Category Category
}

var infos = map[Action]Info{
	EmulatorDebugToggle:      {"Toggle debug panel", CategoryEmulator},
	EmulatorSnapshot:         {"Save snapshot", CategoryEmulator},
	EmulatorPauseToggle:      {"Pause/resume", CategoryEmulator},
	EmulatorStepFrame:        {"Step frame", CategoryEmulator},
	EmulatorStepInstruction:  {"Step instruction", CategoryEmulator},
	EmulatorTestPatternCycle: {"Cycle test pattern", CategoryEmulator},
	EmulatorReset:            {"Reset", CategoryEmulator},
	EmulatorQuit:             {"Quit", CategoryEmulator},
	DebugLogLevelIncrease:    {"More verbose logs", CategoryDebug},
	DebugLogLevelDecrease:    {"Less verbose logs", CategoryDebug},
}

// IsKeypad reports whether the action is one of the 16 hex keys.
func (a Action) IsKeypad() bool {
	return a >= Keypad0 && a <= KeypadF
}

// Key returns the logical keypad key, only meaningful if IsKeypad is true.
func (a Action) Key() uint8 {
	return uint8(a) & 0x0F
}

// GetInfo returns the display information for the action.
func GetInfo(a Action) Info {
	if a.IsKeypad() {
		return Info{Name: fmt.Sprintf("Key %X", a.Key()), Category: CategoryKeypad}
	}
	if info, ok := infos[a]; ok {
		return info
	}
	return Info{Name: fmt.Sprintf("Action(%d)", int(a)), Category: CategoryEmulator}
}

func (a Action) String() string {
	return GetInfo(a).Name
}

// KeypadAction returns the action for a logical keypad key.
func KeypadAction(key uint8) Action {
	return Keypad0 + Action(key&0x0F)
}
