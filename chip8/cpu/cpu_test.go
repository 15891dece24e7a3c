package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestCPU_New(t *testing.T) {
	c, _ := newTestCPU()

	assert.Equal(t, uint16(memory.ProgramStart), c.GetPC())
	assert.Equal(t, StateRunning, c.GetState())
	assert.Empty(t, c.GetStack())
	assert.Equal(t, DefaultStackDepth, c.stackDepth)

	c = New(newTestBus(), 0)
	assert.Equal(t, DefaultStackDepth, c.stackDepth)
}

func TestCPU_stack(t *testing.T) {
	c, _ := newTestCPU()

	require.NoError(t, c.pushStack(0x0102))
	require.NoError(t, c.pushStack(0x0304))
	assert.Equal(t, []uint16{0x0102, 0x0304}, c.GetStack())

	popped, err := c.popStack()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0304), popped)

	popped, err = c.popStack()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), popped)

	_, err = c.popStack()
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func TestCPU_scenario(t *testing.T) {
	c, bus := newTestCPU(0x60, 0x05, 0x61, 0x03, 0x80, 0x14, 0x00, 0x00)
	bus.fb.SetPixel(5, 5, true)

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(5), c.GetV(0))

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(3), c.GetV(1))

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(8), c.GetV(0))
	assert.Equal(t, uint8(0), c.GetV(0xF))
	assert.True(t, bus.fb.Pixel(5, 5))

	require.NoError(t, c.Step())
	assert.Zero(t, bus.fb.LitCount())
	assert.Equal(t, uint16(0x208), c.GetPC())
	assert.Equal(t, uint64(4), c.GetCycles())
}

func TestCPU_callReturn(t *testing.T) {
	c, bus := newTestCPU(0x23, 0x00, 0x60, 0x01)
	require.NoError(t, bus.WriteRange(0x300, []byte{0x61, 0x02, 0x00, 0xEE}))

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x300), c.GetPC())
	assert.Equal(t, []uint16{0x202}, c.GetStack())

	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x202), c.GetPC())
	assert.Empty(t, c.GetStack())

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(1), c.GetV(0))
	assert.Equal(t, uint8(2), c.GetV(1))
}

func TestCPU_waitForKey(t *testing.T) {
	c, _ := newTestCPU(0x63, 0x42, 0xF5, 0x0A, 0x70, 0x01)

	require.NoError(t, c.Step())
	before := c.GetRegisters()

	require.NoError(t, c.Step())
	register, waiting := c.AwaitingKey()
	require.True(t, waiting)
	assert.Equal(t, uint8(5), register)
	assert.Equal(t, StateAwaitingKey, c.GetState())
	assert.Equal(t, uint16(0x202), c.GetPC())

	for range 10 {
		require.NoError(t, c.Step())
	}
	assert.Equal(t, uint16(0x202), c.GetPC())
	assert.Equal(t, before, c.GetRegisters())

	assert.True(t, c.ResolveKey(0x1C))
	assert.False(t, c.ResolveKey(0x3), "only the first key resolves the wait")

	after := c.GetRegisters()
	assert.Equal(t, uint8(0xC), after[5])
	after[5] = before[5]
	assert.Equal(t, before, after, "only the target register changes")
	assert.Equal(t, uint16(0x204), c.GetPC())
	assert.Equal(t, StateRunning, c.GetState())

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(1), c.GetV(0))
}

func TestCPU_decodeErrorHalts(t *testing.T) {
	c, _ := newTestCPU(0x60, 0x01, 0xFF, 0xFF)

	require.NoError(t, c.Step())
	err := c.Step()

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, Instruction(0xFFFF), decodeErr.Opcode)
	assert.Equal(t, uint16(0x202), decodeErr.PC)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
	assert.Equal(t, StateHalted, c.GetState())
	assert.Equal(t, uint16(0x202), c.GetPC())

	err = c.Step()
	assert.ErrorIs(t, err, ErrHalted)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestCPU_stackUnderflow(t *testing.T) {
	c, _ := newTestCPU(0x00, 0xEE)

	err := c.Step()

	assert.ErrorIs(t, err, ErrStackUnderflow)
	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, Instruction(0x00EE), execErr.Opcode)
	assert.Equal(t, uint16(0x200), execErr.PC)
	assert.Equal(t, uint16(0x200), c.GetPC(), "PC is not advanced past a failed instruction")
	assert.Equal(t, StateHalted, c.GetState())
}

func TestCPU_stackOverflow(t *testing.T) {
	// calls itself forever
	bus := newTestBus()
	require.NoError(t, bus.LoadROM([]byte{0x22, 0x00}))
	c := New(bus, 4)

	for range 4 {
		require.NoError(t, c.Step())
	}
	err := c.Step()

	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Len(t, c.GetStack(), 4)
}

func TestCPU_fetchOutOfRange(t *testing.T) {
	c, _ := newTestCPU(0x1F, 0xFF)

	require.NoError(t, c.Step())
	err := c.Step()

	assert.ErrorIs(t, err, memory.ErrAddressOutOfRange)
	assert.Equal(t, StateHalted, c.GetState())
}

func TestCPU_errorLeavesStateUnchanged(t *testing.T) {
	c, _ := newTestCPU(0x6F, 0x09, 0xAF, 0xFE, 0xF3, 0x65)

	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	before := c.GetRegisters()

	err := c.Step()

	require.Error(t, err)
	assert.True(t, errors.Is(err, memory.ErrAddressOutOfRange))
	assert.Equal(t, before, c.GetRegisters())
	assert.Equal(t, uint16(0xFFE), c.GetI())
	assert.Equal(t, uint64(2), c.GetCycles())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "RUNNING", StateRunning.String())
	assert.Equal(t, "AWAIT KEY", StateAwaitingKey.String())
	assert.Equal(t, "HALTED", StateHalted.String())
}
