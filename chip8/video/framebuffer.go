package video

import "strings"

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
	// SpriteWidth is the fixed width, in pixels, of every sprite row.
	SpriteWidth = 8
)

// FrameBuffer is the 64x32 monochrome display, addressed [y][x].
// The core only ever toggles pixel states, color mapping is left to backends.
type FrameBuffer struct {
	pixels [FramebufferHeight][FramebufferWidth]bool
}

// NewFrameBuffer creates a frame buffer with every pixel off.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

func (fb *FrameBuffer) Width() int  { return FramebufferWidth }
func (fb *FrameBuffer) Height() int { return FramebufferHeight }

// Pixel returns the state of the pixel at (x, y); coordinates wrap.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	return fb.pixels[wrap(y, FramebufferHeight)][wrap(x, FramebufferWidth)]
}

// SetPixel sets the pixel at (x, y); coordinates wrap.
// Instructions never use this, it exists for test patterns and tests.
func (fb *FrameBuffer) SetPixel(x, y int, on bool) {
	fb.pixels[wrap(y, FramebufferHeight)][wrap(x, FramebufferWidth)] = on
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.pixels = [FramebufferHeight][FramebufferWidth]bool{}
}

// DrawSprite XORs the sprite rows onto the display starting at (x, y).
// Each row is 8 pixels wide, MSB leftmost. Pixels past an edge wrap around.
// Returns true if any pixel was switched from on to off.
func (fb *FrameBuffer) DrawSprite(x, y int, rows []byte) bool {
	collision := false
	for row, bits := range rows {
		py := wrap(y+row, FramebufferHeight)
		for col := 0; col < SpriteWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := wrap(x+col, FramebufferWidth)
			if fb.pixels[py][px] {
				collision = true
			}
			fb.pixels[py][px] = !fb.pixels[py][px]
		}
	}
	return collision
}

// Rows returns a copy of the pixel grid.
func (fb *FrameBuffer) Rows() [FramebufferHeight][FramebufferWidth]bool {
	return fb.pixels
}

// CopyFrom overwrites the contents of fb with other.
func (fb *FrameBuffer) CopyFrom(other *FrameBuffer) {
	fb.pixels = other.pixels
}

// LitCount returns how many pixels are on.
func (fb *FrameBuffer) LitCount() int {
	n := 0
	for y := range fb.pixels {
		for x := range fb.pixels[y] {
			if fb.pixels[y][x] {
				n++
			}
		}
	}
	return n
}

// String renders the frame as text, '#' for on and '.' for off, one line per row.
func (fb *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow((FramebufferWidth + 1) * FramebufferHeight)
	for y := range fb.pixels {
		for x := range fb.pixels[y] {
			if fb.pixels[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
