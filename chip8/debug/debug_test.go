package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

func TestCreateDisassembly(t *testing.T) {
	snapshot := &MemorySnapshot{
		StartAddr: 0x200,
		Bytes:     []byte{0x60, 0x05, 0x61, 0x03, 0x80, 0x14, 0x00, 0xE0, 0x12, 0x00},
	}

	lines := CreateDisassembly(snapshot, 0x204, 3)

	require.Len(t, lines, 3)
	assert.Equal(t, uint16(0x202), lines[0].Address)
	assert.Equal(t, "ADD V0, V1", lines[1].Instruction)
	assert.True(t, lines[1].IsCurrent)
	assert.False(t, lines[0].IsCurrent)
	assert.False(t, lines[2].IsCurrent)
}

func TestCreateDisassembly_atStart(t *testing.T) {
	snapshot := &MemorySnapshot{StartAddr: 0x200, Bytes: []byte{0x00, 0xE0, 0x12, 0x00}}

	lines := CreateDisassembly(snapshot, 0x200, 10)

	require.Len(t, lines, 2)
	assert.True(t, lines[0].IsCurrent)
	assert.Equal(t, "JP $200", lines[1].Instruction)
}

func TestCreateDisassembly_outsideSnapshot(t *testing.T) {
	snapshot := &MemorySnapshot{StartAddr: 0x200, Bytes: []byte{0x00, 0xE0}}

	lines := CreateDisassembly(snapshot, 0x400, 10)

	require.Len(t, lines, 1)
	assert.True(t, lines[0].IsCurrent)
	assert.Nil(t, CreateDisassembly(nil, 0x200, 10))
}

func TestSaveFramePNGToDir(t *testing.T) {
	dir := t.TempDir()
	fb := video.NewFrameBuffer()
	fb.SetPixel(3, 4, true)

	path, err := SaveFramePNGToDir(fb, display.DefaultPalette, "test", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "test_"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, video.FramebufferWidth, img.Bounds().Dx())
	assert.Equal(t, video.FramebufferHeight, img.Bounds().Dy())
	r, _, _, _ := img.At(3, 4).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Zero(t, r)
}

func TestSaveFramePNGToDir_missingDir(t *testing.T) {
	_, err := SaveFramePNGToDir(video.NewFrameBuffer(), display.DefaultPalette, "test", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDebuggerState_String(t *testing.T) {
	assert.Equal(t, "PAUSED", DebuggerPaused.String())
	assert.Equal(t, "STEP FRAME", DebuggerStepFrame.String())
}
