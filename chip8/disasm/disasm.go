package disasm

import (
	"fmt"
	"io"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/cpu"
)

// InstructionSize is the size in bytes of every CHIP-8 instruction.
const InstructionSize = 2

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Opcode      uint16
	Instruction string
}

func (l DisassemblyLine) String() string {
	return fmt.Sprintf("0x%03X: %04X  %s", l.Address, l.Opcode, l.Instruction)
}

// Disassemble returns the mnemonic for a single opcode.
// Opcodes outside the instruction set are shown as data bytes.
func Disassemble(opcode uint16) string {
	in := cpu.Instruction(opcode)
	if cpu.Decode(in) == nil {
		return fmt.Sprintf("DW $%04X", opcode)
	}

	x, y := in.X(), in.Y()
	switch in.Class() {
	case 0x0:
		if in.N() == 0xE {
			return "RET"
		}
		return "CLS"
	case 0x1:
		return fmt.Sprintf("JP $%03X", in.NNN())
	case 0x2:
		return fmt.Sprintf("CALL $%03X", in.NNN())
	case 0x3:
		return fmt.Sprintf("SE V%X, $%02X", x, in.NN())
	case 0x4:
		return fmt.Sprintf("SNE V%X, $%02X", x, in.NN())
	case 0x5:
		return fmt.Sprintf("SE V%X, V%X", x, y)
	case 0x6:
		return fmt.Sprintf("LD V%X, $%02X", x, in.NN())
	case 0x7:
		return fmt.Sprintf("ADD V%X, $%02X", x, in.NN())
	case 0x8:
		return arithmetic(in)
	case 0x9:
		return fmt.Sprintf("SNE V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("LD I, $%03X", in.NNN())
	case 0xB:
		return fmt.Sprintf("JP V0, $%03X", in.NNN())
	case 0xC:
		return fmt.Sprintf("RND V%X, $%02X", x, in.NN())
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, $%X", x, y, in.N())
	case 0xE:
		if in.NN() == 0x9E {
			return fmt.Sprintf("SKP V%X", x)
		}
		return fmt.Sprintf("SKNP V%X", x)
	default:
		return misc(in)
	}
}

var arithmeticNames = [16]string{
	0x0: "LD", 0x1: "OR", 0x2: "AND", 0x3: "XOR",
	0x4: "ADD", 0x5: "SUB", 0x6: "SHR", 0x7: "SUBN", 0xE: "SHL",
}

func arithmetic(in cpu.Instruction) string {
	name := arithmeticNames[in.N()]
	if in.N() == 0x6 || in.N() == 0xE {
		return fmt.Sprintf("%s V%X", name, in.X())
	}
	return fmt.Sprintf("%s V%X, V%X", name, in.X(), in.Y())
}

func misc(in cpu.Instruction) string {
	x := in.X()
	switch in.NN() {
	case 0x07:
		return fmt.Sprintf("LD V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("LD V%X, K", x)
	case 0x15:
		return fmt.Sprintf("LD DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("LD ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("ADD I, V%X", x)
	case 0x29:
		return fmt.Sprintf("LD F, V%X", x)
	case 0x33:
		return fmt.Sprintf("LD B, V%X", x)
	case 0x55:
		return fmt.Sprintf("LD [I], V%X", x)
	default:
		return fmt.Sprintf("LD V%X, [I]", x)
	}
}

// DisassembleBytes disassembles the instruction at offset within data.
// A trailing odd byte is returned as a single data byte.
func DisassembleBytes(data []byte, offset int) (string, int) {
	if offset+1 >= len(data) {
		if offset < len(data) {
			return fmt.Sprintf("DB $%02X", data[offset]), 1
		}
		return "", 0
	}
	return Disassemble(bit.Combine(data[offset], data[offset+1])), InstructionSize
}

// DisassembleRange disassembles data as if it were loaded at base.
func DisassembleRange(data []byte, base uint16) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, len(data)/InstructionSize+1)
	for i := 0; i < len(data); {
		instruction, length := DisassembleBytes(data, i)
		opcode := uint16(data[i])
		if length == InstructionSize {
			opcode = bit.Combine(data[i], data[i+1])
		}
		lines = append(lines, DisassemblyLine{
			Address:     base + uint16(i),
			Opcode:      opcode,
			Instruction: instruction,
		})
		i += length
	}
	return lines
}

// WriteListing writes a linear listing of a ROM loaded at base to w.
func WriteListing(w io.Writer, rom []byte, base uint16) error {
	for _, line := range DisassembleRange(rom, base) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
