package cpu

// Opcode represents a function that executes an instruction.
// Handlers validate before mutating: a returned error means no state was changed.
type Opcode func(*CPU, Instruction) error

// Decode retrieves the handler for the given instruction, nil if the
// instruction is not part of the instruction set.
func Decode(in Instruction) Opcode {
	switch in.Class() {
	case 0x0:
		// 0NNN machine routines are not supported, only 00E0 and 00EE
		// (matched on the low nibble).
		if in.X() != 0 {
			return nil
		}
		return opcodes0[in.N()]
	case 0x5, 0x9:
		if in.N() != 0 {
			return nil
		}
	case 0x8:
		return opcodes8[in.N()]
	case 0xE:
		return opcodesE[in.NN()]
	case 0xF:
		return opcodesF[in.NN()]
	}

	return opcodes[in.Class()]
}

var opcodes = [16]Opcode{
	nil, opcode1NNN, opcode2NNN, opcode3XNN, opcode4XNN, opcode5XY0, opcode6XNN, opcode7XNN,
	nil, opcode9XY0, opcodeANNN, opcodeBNNN, opcodeCXNN, opcodeDXYN, nil, nil,
}

var opcodes0 = [16]Opcode{
	0x0: opcode00E0,
	0xE: opcode00EE,
}

var opcodes8 = [16]Opcode{
	0x0: opcode8XY0,
	0x1: opcode8XY1,
	0x2: opcode8XY2,
	0x3: opcode8XY3,
	0x4: opcode8XY4,
	0x5: opcode8XY5,
	0x6: opcode8XY6,
	0x7: opcode8XY7,
	0xE: opcode8XYE,
}

var opcodesE = map[uint8]Opcode{
	0x9E: opcodeEX9E,
	0xA1: opcodeEXA1,
}

var opcodesF = map[uint8]Opcode{
	0x07: opcodeFX07,
	0x0A: opcodeFX0A,
	0x15: opcodeFX15,
	0x18: opcodeFX18,
	0x1E: opcodeFX1E,
	0x29: opcodeFX29,
	0x33: opcodeFX33,
	0x55: opcodeFX55,
	0x65: opcodeFX65,
}
