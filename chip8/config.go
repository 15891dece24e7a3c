package chip8

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/cpu"
)

const (
	// DefaultInstructionsPerTick gives roughly 600 instructions per second at 60 Hz.
	DefaultInstructionsPerTick = 10
	MaxInstructionsPerTick     = 1000
	MaxStackDepth              = 256
)

// Config holds the machine parameters chosen by the host.
type Config struct {
	// InstructionsPerTick is the number of instructions run per 60 Hz timer tick.
	InstructionsPerTick int
	// StackDepth bounds the call stack.
	StackDepth int
	// Seed for the random source used by CXNN. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		InstructionsPerTick: DefaultInstructionsPerTick,
		StackDepth:          cpu.DefaultStackDepth,
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.InstructionsPerTick < 1 || c.InstructionsPerTick > MaxInstructionsPerTick {
		return fmt.Errorf("instructions per tick must be between 1 and %d, got %d", MaxInstructionsPerTick, c.InstructionsPerTick)
	}
	if c.StackDepth < 1 || c.StackDepth > MaxStackDepth {
		return fmt.Errorf("stack depth must be between 1 and %d, got %d", MaxStackDepth, c.StackDepth)
	}
	return nil
}
