package debug

import "github.com/valerio/go-chip8/chip8/disasm"

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// CreateDisassembly returns up to maxLines lines of the snapshot, keeping pc
// roughly centered. Instructions are aligned on pc so the current line decodes correctly.
func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	end := int(snapshot.StartAddr) + len(snapshot.Bytes)
	if pc < snapshot.StartAddr || int(pc) >= end {
		lines := make([]DisasmLine, 0, 1)
		return append(lines, DisasmLine{
			Address:     pc,
			Instruction: "[PC outside snapshot range]",
			IsCurrent:   true,
		})
	}

	pcOffset := int(pc - snapshot.StartAddr)
	startOffset := pcOffset - (maxLines/2)*disasm.InstructionSize
	for startOffset < 0 {
		startOffset += disasm.InstructionSize
	}

	lines := make([]DisasmLine, 0, maxLines)
	for i := startOffset; i < len(snapshot.Bytes) && len(lines) < maxLines; {
		instruction, length := disasm.DisassembleBytes(snapshot.Bytes, i)
		lines = append(lines, DisasmLine{
			Address:     snapshot.StartAddr + uint16(i),
			Instruction: instruction,
			IsCurrent:   i == pcOffset,
		})
		i += length
	}
	return lines
}
