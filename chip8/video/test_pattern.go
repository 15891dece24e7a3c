package video

import "github.com/valerio/go-chip8/chip8/display"

// TestPattern identifies one of the built-in display test patterns.
type TestPattern int

const (
	PatternCheckerboard TestPattern = iota
	PatternStripes
	PatternDiagonal
	PatternBorder
)

var patternNames = [...]string{"Checkerboard", "Stripes", "Diagonal", "Border"}

func (p TestPattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "Unknown"
	}
	return patternNames[p]
}

// Next returns the following pattern, cycling back to the first one.
func (p TestPattern) Next() TestPattern {
	return (p + 1) % display.TestPatternCount
}

// DrawTestPattern fills fb with the given pattern, shifted by offset pixels
// for the animated ones.
func DrawTestPattern(fb *FrameBuffer, pattern TestPattern, offset int) {
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			var on bool
			switch pattern {
			case PatternCheckerboard:
				on = ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 == 0
			case PatternStripes:
				on = ((x+offset)/display.TestPatternStripeWidth)%2 == 0
			case PatternDiagonal:
				on = ((x+y+offset)/display.TestPatternTileSize)%2 == 0
			case PatternBorder:
				on = x == 0 || y == 0 || x == FramebufferWidth-1 || y == FramebufferHeight-1
			}
			fb.pixels[y][x] = on
		}
	}
}
