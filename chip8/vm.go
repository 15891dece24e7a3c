package chip8

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timer"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// ErrNoROM is returned by Reset when no program was loaded.
var ErrNoROM = errors.New("no rom loaded")

const (
	// bytes of memory shown around PC by debug views
	debugWindowBefore = 32
	debugWindowSize   = 96
)

// VM is a complete CHIP-8 machine: CPU, memory, timers, framebuffer and keypad.
type VM struct {
	config Config
	seed   uint64
	rom    []byte

	bus *Bus
	cpu *cpu.CPU

	frames        uint64
	debuggerState debug.DebuggerState
	limiter       timing.Limiter
	listeners     []timer.ToneListener
}

// New creates a machine with the font loaded and no program.
func New(config Config) (*VM, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	vm := &VM{
		config:  config,
		seed:    seed,
		limiter: timing.NewNoOpLimiter(),
	}
	vm.init()
	return vm, nil
}

// NewWithFile creates a machine and loads the ROM at path into it.
func NewWithFile(path string, config Config) (*VM, error) {
	rom, err := memory.ReadROMFile(path)
	if err != nil {
		return nil, err
	}

	vm, err := New(config)
	if err != nil {
		return nil, err
	}
	if err := vm.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return vm, nil
}

func (vm *VM) init() {
	vm.bus = NewBus(vm.seed)
	vm.cpu = cpu.New(vm.bus, vm.config.StackDepth)
	for _, l := range vm.listeners {
		vm.bus.Timers.OnToneChange(l)
	}
}

// LoadROM copies the program at 0x200. Only one program can be loaded.
func (vm *VM) LoadROM(rom []byte) error {
	if err := vm.bus.Memory.LoadROM(rom); err != nil {
		return err
	}
	vm.rom = append([]byte(nil), rom...)
	slog.Info("Loaded program", "bytes", len(rom))
	return nil
}

// Reset rebuilds the machine and reloads the current program.
// The random source restarts from the same seed.
func (vm *VM) Reset() error {
	if vm.rom == nil {
		return ErrNoROM
	}

	toneWasActive := vm.bus.Timers.ToneActive()
	vm.init()
	if err := vm.bus.Memory.LoadROM(vm.rom); err != nil {
		return err
	}
	vm.frames = 0
	vm.debuggerState = debug.DebuggerRunning
	vm.limiter.Reset()

	if toneWasActive {
		for _, l := range vm.listeners {
			l(false)
		}
	}
	slog.Info("Machine reset")
	return nil
}

// Step executes a single instruction.
func (vm *VM) Step() error {
	return vm.cpu.Step()
}

// Tick advances the timers by one 60 Hz period.
func (vm *VM) Tick() {
	vm.bus.Timers.Tick()
}

// RunFrame runs InstructionsPerTick instructions followed by a timer tick.
// Stops at the first error, the timers are not ticked in that case.
func (vm *VM) RunFrame() error {
	for i := 0; i < vm.config.InstructionsPerTick; i++ {
		if err := vm.cpu.Step(); err != nil {
			return err
		}
	}
	vm.Tick()
	vm.frames++
	return nil
}

// RunUntilFrame advances the machine according to the debugger state and
// waits on the frame limiter.
func (vm *VM) RunUntilFrame() error {
	defer vm.limiter.WaitForNextFrame()

	switch vm.debuggerState {
	case debug.DebuggerPaused:
		return nil
	case debug.DebuggerStepInstruction:
		vm.debuggerState = debug.DebuggerPaused
		return vm.checked(vm.cpu.Step())
	case debug.DebuggerStepFrame:
		vm.debuggerState = debug.DebuggerPaused
	}
	return vm.checked(vm.RunFrame())
}

func (vm *VM) checked(err error) error {
	if err != nil {
		vm.debuggerState = debug.DebuggerPaused
		slog.Error("Execution halted", "pc", fmt.Sprintf("0x%03X", vm.cpu.GetPC()), "error", err)
	}
	return err
}

func (vm *VM) GetCurrentFrame() *video.FrameBuffer {
	return vm.bus.Frame
}

// PressKey marks key as held, completing a pending FX0A.
func (vm *VM) PressKey(key uint8) {
	vm.bus.Keypad.Press(key)
	if vm.cpu.ResolveKey(key) {
		slog.Debug("Key wait resolved", "key", key)
	}
}

func (vm *VM) ReleaseKey(key uint8) {
	vm.bus.Keypad.Release(key)
}

// HandleAction processes keypad and debugger actions.
func (vm *VM) HandleAction(act action.Action, pressed bool) {
	if act.IsKeypad() {
		if pressed {
			vm.PressKey(act.Key())
		} else {
			vm.ReleaseKey(act.Key())
		}
		return
	}
	if !pressed {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		if vm.debuggerState == debug.DebuggerPaused {
			vm.debuggerState = debug.DebuggerRunning
			vm.limiter.Reset()
		} else {
			vm.debuggerState = debug.DebuggerPaused
		}
		slog.Info("Debugger state changed", "state", vm.debuggerState)
	case action.EmulatorStepFrame:
		vm.debuggerState = debug.DebuggerStepFrame
	case action.EmulatorStepInstruction:
		vm.debuggerState = debug.DebuggerStepInstruction
	case action.EmulatorReset:
		if err := vm.Reset(); err != nil {
			slog.Error("Reset failed", "error", err)
		}
	}
}

// ToneActive reports whether the sound timer is running.
func (vm *VM) ToneActive() bool {
	return vm.bus.Timers.ToneActive()
}

// OnToneChange registers a listener for tone transitions. Listeners survive Reset.
func (vm *VM) OnToneChange(l timer.ToneListener) {
	vm.listeners = append(vm.listeners, l)
	vm.bus.Timers.OnToneChange(l)
}

func (vm *VM) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		vm.limiter = timing.NewNoOpLimiter()
	} else {
		vm.limiter = limiter
	}
}

func (vm *VM) ResetFrameTiming() {
	vm.limiter.Reset()
}

// DebuggerState returns the current debugger mode.
func (vm *VM) DebuggerState() debug.DebuggerState { return vm.debuggerState }

// CPU exposes the processor for inspection.
func (vm *VM) CPU() *cpu.CPU { return vm.cpu }

// Memory exposes the address space for inspection.
func (vm *VM) Memory() *memory.Memory { return vm.bus.Memory }

// Err returns the error that halted the CPU, if any.
func (vm *VM) Err() error { return vm.cpu.GetErr() }

// GetFrameCount returns the number of completed 60 Hz frames.
func (vm *VM) GetFrameCount() uint64 { return vm.frames }

// GetInstructionCount returns the number of executed instructions.
func (vm *VM) GetInstructionCount() uint64 { return vm.cpu.GetCycles() }

// ExtractDebugData captures the machine state for debug displays.
func (vm *VM) ExtractDebugData() *debug.CompleteDebugData {
	if vm.cpu == nil || vm.bus == nil {
		return nil
	}

	c := vm.cpu
	state := &debug.CPUState{
		V:      c.GetRegisters(),
		I:      c.GetI(),
		PC:     c.GetPC(),
		Stack:  c.GetStack(),
		Opcode: uint16(c.GetOpcode()),
		Cycles: c.GetCycles(),
		State:  c.GetState().String(),
	}
	if reg, ok := c.AwaitingKey(); ok {
		state.WaitingKey = true
		state.WaitingReg = reg
	}
	if err := c.GetErr(); err != nil {
		state.HaltedError = err.Error()
	}

	start := uint16(0)
	if c.GetPC() > debugWindowBefore {
		start = c.GetPC() - debugWindowBefore
	}

	timers := vm.bus.Timers
	return &debug.CompleteDebugData{
		CPU: state,
		Timers: debug.TimerState{
			Delay:      timers.Delay(),
			Sound:      timers.Sound(),
			ToneActive: timers.ToneActive(),
		},
		Memory: &debug.MemorySnapshot{
			StartAddr: start,
			Bytes:     vm.bus.Memory.Window(start, debugWindowSize),
		},
		PressedKeys:   vm.bus.Keypad.Pressed(),
		DebuggerState: vm.debuggerState,
		Frames:        vm.frames,
	}
}
