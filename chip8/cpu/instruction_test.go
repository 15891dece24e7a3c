package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_fields(t *testing.T) {
	in := Instruction(0xD4A7)

	assert.Equal(t, uint8(0xD), in.Class())
	assert.Equal(t, uint8(0x4), in.X())
	assert.Equal(t, uint8(0xA), in.Y())
	assert.Equal(t, uint8(0x7), in.N())
	assert.Equal(t, uint8(0xA7), in.NN())
	assert.Equal(t, uint16(0x4A7), in.NNN())
	assert.Equal(t, "0xD4A7", in.String())
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		opcode uint16
		known  bool
	}{
		{0x00E0, true},
		{0x00EE, true},
		{0x0000, true},
		{0x0123, false},
		{0x00E1, false},
		{0x1234, true},
		{0x5120, true},
		{0x5121, false},
		{0x9AB0, true},
		{0x9AB3, false},
		{0x8AB8, false},
		{0x8ABE, true},
		{0xE19E, true},
		{0xE1A2, false},
		{0xF10A, true},
		{0xF1FF, false},
		{0xFFFF, false},
	}
	for _, tC := range testCases {
		t.Run(Instruction(tC.opcode).String(), func(t *testing.T) {
			assert.Equal(t, tC.known, Decode(Instruction(tC.opcode)) != nil)
		})
	}
}
