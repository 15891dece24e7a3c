package chip8

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goldenFrameCase struct {
	Name    string
	Program []byte
	Frames  int
}

func goldenFrameCases() []goldenFrameCase {
	return []goldenFrameCase{
		{
			// BCD of 234 drawn with the built-in font
			Name: "bcd_234",
			Program: []byte{
				0x6A, 0xEA, // LD VA, 234
				0xA3, 0x00, // LD I, 0x300
				0xFA, 0x33, // LD B, VA
				0xF2, 0x65, // LD V2, [I]
				0x63, 0x00, // LD V3, 0
				0x64, 0x00, // LD V4, 0
				0xF0, 0x29, // LD F, V0
				0xD3, 0x45, // DRW V3, V4, 5
				0x73, 0x05, // ADD V3, 5
				0xF1, 0x29, // LD F, V1
				0xD3, 0x45, // DRW V3, V4, 5
				0x73, 0x05, // ADD V3, 5
				0xF2, 0x29, // LD F, V2
				0xD3, 0x45, // DRW V3, V4, 5
				0x12, 0x1C, // JP 0x21C
			},
			Frames: 3,
		},
		{
			// glyph F drawn across both screen edges
			Name: "wrap_glyph_f",
			Program: []byte{
				0x60, 0x0F, // LD V0, 0xF
				0x61, 0x3E, // LD V1, 62
				0x62, 0x1E, // LD V2, 30
				0xF0, 0x29, // LD F, V0
				0xD1, 0x25, // DRW V1, V2, 5
				0x12, 0x0A, // JP 0x20A
			},
			Frames: 2,
		},
	}
}

func TestGoldenFrames(t *testing.T) {
	generate := os.Getenv("CHIP8_GENERATE_GOLDEN") == "true"

	for _, tc := range goldenFrameCases() {
		t.Run(tc.Name, func(t *testing.T) {
			vm := newTestVM(t, tc.Program...)
			for range tc.Frames {
				require.NoError(t, vm.RunUntilFrame())
			}

			frame := vm.GetCurrentFrame().String()
			path := filepath.Join("testdata", tc.Name+".txt")

			if generate {
				require.NoError(t, os.WriteFile(path, []byte(frame), 0o644))
				t.Logf("Reference frame generated - hash: %x", md5.Sum([]byte(frame)))
				return
			}

			expected, err := os.ReadFile(path)
			require.NoError(t, err, "run with CHIP8_GENERATE_GOLDEN=true to create reference frames")

			assert.Equal(t, fmt.Sprintf("%x", md5.Sum(expected)), fmt.Sprintf("%x", md5.Sum([]byte(frame))),
				"frame differs from %s, got:\n%s", path, frame)
		})
	}
}
