package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/memory"
)

// Bus provides the interface for component communication.
// Memory accesses are range checked and must not partially apply on error.
type Bus interface {
	ReadWord(address uint16) (uint16, error)
	ReadRange(address uint16, length int) ([]byte, error)
	WriteRange(address uint16, values []byte) error

	ClearScreen()
	DrawSprite(x, y int, rows []byte) (collision bool)

	IsKeyPressed(key uint8) bool

	DelayTimer() uint8
	SetDelayTimer(value uint8)
	SetSoundTimer(value uint8)

	RandomByte() uint8
}

// State is the execution state of the CPU.
type State int

const (
	// StateRunning fetches and executes on every Step.
	StateRunning State = iota
	// StateAwaitingKey is entered by FX0A, Step is a no-op until ResolveKey.
	StateAwaitingKey
	// StateHalted is entered after a fatal error.
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateAwaitingKey:
		return "AWAIT KEY"
	case StateHalted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

const flagRegister = 0xF

// DefaultStackDepth is the call stack limit used when none is configured.
const DefaultStackDepth = 16

// CPU holds the CHIP-8 interpreter state
type CPU struct {
	// registers
	v  [16]uint8
	i  uint16
	pc uint16

	stack      []uint16
	stackDepth int

	// metadata
	state         State
	waitRegister  uint8
	currentOpcode Instruction
	cycles        uint64
	err           error

	bus Bus
}

// New returns a CPU ready to execute from the program start address.
// A stackDepth <= 0 selects DefaultStackDepth.
func New(bus Bus, stackDepth int) *CPU {
	if stackDepth <= 0 {
		stackDepth = DefaultStackDepth
	}

	return &CPU{
		pc:         memory.ProgramStart,
		stack:      make([]uint16, 0, stackDepth),
		stackDepth: stackDepth,
		bus:        bus,
	}
}

// Step executes a single instruction. While awaiting a key it does nothing.
// Errors are fatal: the CPU halts and every later Step returns ErrHalted.
func (c *CPU) Step() error {
	switch c.state {
	case StateHalted:
		return fmt.Errorf("%w: %w", ErrHalted, c.err)
	case StateAwaitingKey:
		return nil
	}

	pc := c.pc
	word, err := c.bus.ReadWord(pc)
	if err != nil {
		return c.halt(&ExecError{PC: pc, Err: err})
	}

	instruction := Instruction(word)
	c.currentOpcode = instruction

	opcode := Decode(instruction)
	if opcode == nil {
		return c.halt(&DecodeError{Opcode: instruction, PC: pc})
	}

	c.pc += 2

	if err := opcode(c, instruction); err != nil {
		// handlers never mutate state before failing, only the fetch needs undoing
		c.pc = pc
		return c.halt(&ExecError{Opcode: instruction, PC: pc, Err: err})
	}

	c.cycles++
	return nil
}

func (c *CPU) halt(err error) error {
	c.state = StateHalted
	c.err = err
	return err
}

// ResolveKey completes a pending FX0A by storing key in the awaited register.
// Returns false if the CPU was not waiting for a key.
func (c *CPU) ResolveKey(key uint8) bool {
	if c.state != StateAwaitingKey {
		return false
	}

	c.v[c.waitRegister] = key & 0x0F
	c.pc += 2
	c.state = StateRunning
	return true
}

func (c *CPU) pushStack(address uint16) error {
	if len(c.stack) >= c.stackDepth {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, c.stackDepth)
	}
	c.stack = append(c.stack, address)
	return nil
}

func (c *CPU) popStack() (uint16, error) {
	if len(c.stack) == 0 {
		return 0, ErrStackUnderflow
	}
	address := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return address, nil
}

// setFlag writes the carry/borrow/collision flag into VF.
// Callers write the result register first, so the flag wins when X is F.
func (c *CPU) setFlag(condition bool) {
	if condition {
		c.v[flagRegister] = 1
		return
	}
	c.v[flagRegister] = 0
}

// Debug getter methods for register display
func (c *CPU) GetV(index uint8) uint8 { return c.v[index&0x0F] }
func (c *CPU) GetI() uint16           { return c.i }
func (c *CPU) GetPC() uint16          { return c.pc }
func (c *CPU) GetCycles() uint64      { return c.cycles }
func (c *CPU) GetState() State        { return c.state }
func (c *CPU) GetErr() error          { return c.err }

// GetOpcode returns the last fetched instruction.
func (c *CPU) GetOpcode() Instruction { return c.currentOpcode }

// GetRegisters returns a copy of V0-VF.
func (c *CPU) GetRegisters() [16]uint8 { return c.v }

// GetStack returns a copy of the call stack, oldest frame first.
func (c *CPU) GetStack() []uint16 {
	out := make([]uint16, len(c.stack))
	copy(out, c.stack)
	return out
}

// AwaitingKey returns the register targeted by a pending FX0A.
func (c *CPU) AwaitingKey() (register uint8, ok bool) {
	return c.waitRegister, c.state == StateAwaitingKey
}
