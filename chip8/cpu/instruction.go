package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

// Instruction is a raw 16 bit CHIP-8 opcode. Its methods expose the
// addressing fields, using the usual naming: 0xCXYN, NN = low byte, NNN = low 12 bits.
type Instruction uint16

// Class returns the opcode class, i.e. the top nibble.
func (in Instruction) Class() uint8 { return bit.Nibble(uint16(in), 3) }

// X returns the first register index (second nibble).
func (in Instruction) X() uint8 { return bit.Nibble(uint16(in), 2) }

// Y returns the second register index (third nibble).
func (in Instruction) Y() uint8 { return bit.Nibble(uint16(in), 1) }

// N returns the 4 bit immediate (fourth nibble).
func (in Instruction) N() uint8 { return bit.Nibble(uint16(in), 0) }

// NN returns the 8 bit immediate.
func (in Instruction) NN() uint8 { return bit.Low(uint16(in)) }

// NNN returns the 12 bit address immediate.
func (in Instruction) NNN() uint16 { return uint16(in) & 0x0FFF }

func (in Instruction) String() string {
	return fmt.Sprintf("0x%04X", uint16(in))
}
