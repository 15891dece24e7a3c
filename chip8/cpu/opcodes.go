package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

//CLS
//#0x00E0:
func opcode00E0(cpu *CPU, _ Instruction) error {
	cpu.bus.ClearScreen()
	return nil
}

//RET
//#0x00EE:
func opcode00EE(cpu *CPU, _ Instruction) error {
	address, err := cpu.popStack()
	if err != nil {
		return err
	}
	cpu.pc = address
	return nil
}

//JP addr
//#0x1NNN:
func opcode1NNN(cpu *CPU, in Instruction) error {
	cpu.pc = in.NNN()
	return nil
}

//CALL addr
//#0x2NNN:
func opcode2NNN(cpu *CPU, in Instruction) error {
	if err := cpu.pushStack(cpu.pc); err != nil {
		return err
	}
	cpu.pc = in.NNN()
	return nil
}

//SE Vx, byte
//#0x3XNN:
func opcode3XNN(cpu *CPU, in Instruction) error {
	cpu.skipIf(cpu.v[in.X()] == in.NN())
	return nil
}

//SNE Vx, byte
//#0x4XNN:
func opcode4XNN(cpu *CPU, in Instruction) error {
	cpu.skipIf(cpu.v[in.X()] != in.NN())
	return nil
}

//SE Vx, Vy
//#0x5XY0:
func opcode5XY0(cpu *CPU, in Instruction) error {
	cpu.skipIf(cpu.v[in.X()] == cpu.v[in.Y()])
	return nil
}

//LD Vx, byte
//#0x6XNN:
func opcode6XNN(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] = in.NN()
	return nil
}

//ADD Vx, byte
//#0x7XNN:
func opcode7XNN(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] += in.NN()
	return nil
}

//LD Vx, Vy
//#0x8XY0:
func opcode8XY0(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] = cpu.v[in.Y()]
	return nil
}

//OR Vx, Vy
//#0x8XY1:
func opcode8XY1(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] |= cpu.v[in.Y()]
	return nil
}

//AND Vx, Vy
//#0x8XY2:
func opcode8XY2(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] &= cpu.v[in.Y()]
	return nil
}

//XOR Vx, Vy
//#0x8XY3:
func opcode8XY3(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] ^= cpu.v[in.Y()]
	return nil
}

//ADD Vx, Vy
//#0x8XY4:
func opcode8XY4(cpu *CPU, in Instruction) error {
	result, carry := bit.CheckedAdd(cpu.v[in.X()], cpu.v[in.Y()])
	cpu.v[in.X()] = result
	cpu.setFlag(carry)
	return nil
}

//SUB Vx, Vy
//#0x8XY5:
func opcode8XY5(cpu *CPU, in Instruction) error {
	result, borrow := bit.CheckedSub(cpu.v[in.X()], cpu.v[in.Y()])
	cpu.v[in.X()] = result
	cpu.setFlag(!borrow)
	return nil
}

//SHR Vx
//#0x8XY6:
func opcode8XY6(cpu *CPU, in Instruction) error {
	value := cpu.v[in.X()]
	cpu.v[in.X()] = value >> 1
	cpu.setFlag(bit.IsSet(0, value))
	return nil
}

//SUBN Vx, Vy
//#0x8XY7:
func opcode8XY7(cpu *CPU, in Instruction) error {
	result, borrow := bit.CheckedSub(cpu.v[in.Y()], cpu.v[in.X()])
	cpu.v[in.X()] = result
	cpu.setFlag(!borrow)
	return nil
}

//SHL Vx
//#0x8XYE:
func opcode8XYE(cpu *CPU, in Instruction) error {
	value := cpu.v[in.X()]
	cpu.v[in.X()] = value << 1
	cpu.setFlag(bit.IsSet(7, value))
	return nil
}

//SNE Vx, Vy
//#0x9XY0:
func opcode9XY0(cpu *CPU, in Instruction) error {
	cpu.skipIf(cpu.v[in.X()] != cpu.v[in.Y()])
	return nil
}

//LD I, addr
//#0xANNN:
func opcodeANNN(cpu *CPU, in Instruction) error {
	cpu.i = in.NNN()
	return nil
}

//JP V0, addr
//#0xBNNN:
func opcodeBNNN(cpu *CPU, in Instruction) error {
	// mask first, then add: V0 + (opcode & 0x0FFF)
	target := uint32(cpu.v[0]) + uint32(in.NNN())
	if err := memory.CheckRange(target, 2); err != nil {
		return err
	}
	cpu.pc = uint16(target)
	return nil
}

//RND Vx, byte
//#0xCXNN:
func opcodeCXNN(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] = cpu.bus.RandomByte() & in.NN()
	return nil
}

//DRW Vx, Vy, nibble
//#0xDXYN:
func opcodeDXYN(cpu *CPU, in Instruction) error {
	height := int(in.N())
	if height == 0 {
		cpu.setFlag(false)
		return nil
	}

	rows, err := cpu.bus.ReadRange(cpu.i, height)
	if err != nil {
		return err
	}

	collision := cpu.bus.DrawSprite(int(cpu.v[in.X()]), int(cpu.v[in.Y()]), rows)
	cpu.setFlag(collision)
	return nil
}

//SKP Vx
//#0xEX9E:
func opcodeEX9E(cpu *CPU, in Instruction) error {
	cpu.skipIf(cpu.bus.IsKeyPressed(cpu.v[in.X()] & 0x0F))
	return nil
}

//SKNP Vx
//#0xEXA1:
func opcodeEXA1(cpu *CPU, in Instruction) error {
	cpu.skipIf(!cpu.bus.IsKeyPressed(cpu.v[in.X()] & 0x0F))
	return nil
}

//LD Vx, DT
//#0xFX07:
func opcodeFX07(cpu *CPU, in Instruction) error {
	cpu.v[in.X()] = cpu.bus.DelayTimer()
	return nil
}

//LD Vx, K
//#0xFX0A:
func opcodeFX0A(cpu *CPU, in Instruction) error {
	// PC stays on this instruction until ResolveKey
	cpu.pc -= 2
	cpu.waitRegister = in.X()
	cpu.state = StateAwaitingKey
	return nil
}

//LD DT, Vx
//#0xFX15:
func opcodeFX15(cpu *CPU, in Instruction) error {
	cpu.bus.SetDelayTimer(cpu.v[in.X()])
	return nil
}

//LD ST, Vx
//#0xFX18:
func opcodeFX18(cpu *CPU, in Instruction) error {
	cpu.bus.SetSoundTimer(cpu.v[in.X()])
	return nil
}

//ADD I, Vx
//#0xFX1E:
func opcodeFX1E(cpu *CPU, in Instruction) error {
	address := uint32(cpu.i) + uint32(cpu.v[in.X()])
	if err := memory.CheckRange(address, 1); err != nil {
		return err
	}
	cpu.i = uint16(address)
	return nil
}

//LD F, Vx
//#0xFX29:
func opcodeFX29(cpu *CPU, in Instruction) error {
	cpu.i = memory.GlyphAddress(cpu.v[in.X()])
	return nil
}

//LD B, Vx
//#0xFX33:
func opcodeFX33(cpu *CPU, in Instruction) error {
	value := cpu.v[in.X()]
	digits := []byte{value / 100, (value / 10) % 10, value % 10}
	return cpu.bus.WriteRange(cpu.i, digits)
}

//LD [I], Vx
//#0xFX55:
func opcodeFX55(cpu *CPU, in Instruction) error {
	count := int(in.X()) + 1
	return cpu.bus.WriteRange(cpu.i, cpu.v[:count])
}

//LD Vx, [I]
//#0xFX65:
func opcodeFX65(cpu *CPU, in Instruction) error {
	values, err := cpu.bus.ReadRange(cpu.i, int(in.X())+1)
	if err != nil {
		return err
	}
	copy(cpu.v[:], values)
	return nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}
