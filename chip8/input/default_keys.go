package input

import "github.com/valerio/go-chip8/chip8/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// The hex keypad uses the usual QWERTY layout of the COSMAC VIP keypad:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  q w e r
//	7 8 9 E      a s d f
//	A 0 B F      z x c v
var DefaultKeyMap = map[string]action.Action{
	"1": action.Keypad1,
	"2": action.Keypad2,
	"3": action.Keypad3,
	"4": action.KeypadC,
	"q": action.Keypad4,
	"w": action.Keypad5,
	"e": action.Keypad6,
	"r": action.KeypadD,
	"a": action.Keypad7,
	"s": action.Keypad8,
	"d": action.Keypad9,
	"f": action.KeypadE,
	"z": action.KeypadA,
	"x": action.Keypad0,
	"c": action.KeypadB,
	"v": action.KeypadF,

	// Emulator controls
	"Space":  action.EmulatorPauseToggle,
	"p":      action.EmulatorPauseToggle, // Alternative key
	"o":      action.EmulatorStepFrame,
	"n":      action.EmulatorStepInstruction,
	"F5":     action.EmulatorReset,
	"F9":     action.EmulatorTestPatternCycle,
	"F10":    action.EmulatorDebugToggle,
	"F12":    action.EmulatorSnapshot,
	"Escape": action.EmulatorQuit,

	// Debug controls
	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // Alternative without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease, // Alternative with shift
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
