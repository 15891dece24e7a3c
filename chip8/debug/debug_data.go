package debug

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V      [16]uint8
	I      uint16
	PC     uint16
	Stack  []uint16
	Opcode uint16
	Cycles uint64

	State       string
	WaitingKey  bool
	WaitingReg  uint8
	HaltedError string
}

// TimerState holds the current timer values.
type TimerState struct {
	Delay      uint8
	Sound      uint8
	ToneActive bool
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerRunning:
		return "RUNNING"
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerStepInstruction:
		return "STEP"
	case DebuggerStepFrame:
		return "STEP FRAME"
	default:
		return "UNKNOWN"
	}
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	CPU           *CPUState
	Timers        TimerState
	Memory        *MemorySnapshot
	PressedKeys   []uint8
	DebuggerState DebuggerState
	Frames        uint64
}
