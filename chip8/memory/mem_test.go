package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LoadsFontSet(t *testing.T) {
	m := New()

	glyph, err := m.ReadRange(GlyphAddress(0xA), GlyphSize)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x90, 0xF0, 0x90, 0x90}, glyph)
	assert.Equal(t, uint16(50), GlyphAddress(0xA))

	// everything past the font set is zeroed
	for addr := uint16(len(fontSet)); addr < Size; addr++ {
		v, err := m.Read(addr)
		require.NoError(t, err)
		require.Zerof(t, v, "address 0x%03X", addr)
	}
}

func TestMemory_Bounds(t *testing.T) {
	m := New()

	tests := []struct {
		name    string
		op      func() error
		wantErr bool
	}{
		{"read last byte", func() error { _, err := m.Read(MaxAddress); return err }, false},
		{"read past end", func() error { _, err := m.Read(Size); return err }, true},
		{"write last byte", func() error { return m.Write(MaxAddress, 1) }, false},
		{"write past end", func() error { return m.Write(0xFFFF, 1) }, true},
		{"word at end", func() error { _, err := m.ReadWord(MaxAddress); return err }, true},
		{"word before end", func() error { _, err := m.ReadWord(MaxAddress - 1); return err }, false},
		{"range fits", func() error { return m.WriteRange(0xFFD, []byte{1, 2, 3}) }, false},
		{"range overflows", func() error { return m.WriteRange(0xFFE, []byte{1, 2, 3}) }, true},
		{"read range overflows", func() error { _, err := m.ReadRange(0xFFF, 2); return err }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAddressOutOfRange)
				var addrErr *AddressError
				assert.ErrorAs(t, err, &addrErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemory_WriteRangeIsAtomic(t *testing.T) {
	m := New()
	err := m.WriteRange(0xFFE, []byte{0xAA, 0xBB, 0xCC})
	require.Error(t, err)

	v, err := m.Read(0xFFE)
	require.NoError(t, err)
	assert.Zero(t, v, "partial write must not happen")
}

func TestMemory_LoadROM(t *testing.T) {
	t.Run("loads at program start", func(t *testing.T) {
		m := New()
		require.NoError(t, m.LoadROM([]byte{0x60, 0x05, 0x61, 0x03}))

		word, err := m.ReadWord(ProgramStart)
		require.NoError(t, err)
		assert.Equal(t, uint16(0x6005), word)
		assert.Equal(t, 4, m.ROMSize())
	})

	t.Run("max size fits", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.LoadROM(make([]byte, MaxROMSize)))
	})

	t.Run("oversized is rejected untouched", func(t *testing.T) {
		m := New()
		rom := make([]byte, MaxROMSize+1)
		rom[0] = 0xFF
		err := m.LoadROM(rom)
		assert.ErrorIs(t, err, ErrROMTooLarge)

		v, _ := m.Read(ProgramStart)
		assert.Zero(t, v)
		assert.Zero(t, m.ROMSize())
	})

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, New().LoadROM(nil), ErrEmptyROM)
	})

	t.Run("only once", func(t *testing.T) {
		m := New()
		require.NoError(t, m.LoadROM([]byte{0x00, 0xE0}))
		assert.ErrorIs(t, m.LoadROM([]byte{0x00, 0xE0}), ErrROMAlreadyLoaded)
	})
}

func TestReadROMFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.ch8")
	require.NoError(t, os.WriteFile(good, []byte{0x12, 0x00}, 0o644))
	data, err := ReadROMFile(good)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x00}, data)

	big := filepath.Join(dir, "big.ch8")
	require.NoError(t, os.WriteFile(big, make([]byte, MaxROMSize+1), 0o644))
	_, err = ReadROMFile(big)
	assert.ErrorIs(t, err, ErrROMTooLarge)

	_, err = ReadROMFile(filepath.Join(dir, "missing.ch8"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemory_Window(t *testing.T) {
	m := New()
	assert.Len(t, m.Window(0xFF0, 64), 16)
	assert.Len(t, m.Window(0x200, 64), 64)
	assert.Nil(t, m.Window(Size, 8))
}

func TestKeypad(t *testing.T) {
	k := NewKeypad()
	assert.False(t, k.IsPressed(0xA))

	k.Press(0xA)
	k.Press(0x13) // masked to 0x3
	assert.True(t, k.IsPressed(0xA))
	assert.True(t, k.IsPressed(0x3))
	assert.Equal(t, []uint8{0x3, 0xA}, k.Pressed())

	k.Release(0xA)
	assert.False(t, k.IsPressed(0xA))

	k.Reset()
	assert.Empty(t, k.Pressed())
}
