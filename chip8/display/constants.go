package display

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for CHIP-8 pixels
	DefaultPixelScale = 10
	// MaxPixelScale bounds the --scale flag
	MaxPixelScale = 40
)

// Test pattern constants
const (
	// TestPatternCount is the number of available test patterns
	TestPatternCount = 4
	// TestPatternTileSize is the size of tiles for checkerboard and diagonal patterns
	TestPatternTileSize = 8
	// TestPatternStripeWidth is the width of stripes in the stripe pattern
	TestPatternStripeWidth = 4
	// TestPatternAnimationFrames is the number of frames between test pattern animations
	TestPatternAnimationFrames = 30
)

// Color is a 24 bit RGB color.
type Color struct {
	R, G, B uint8
}

// Palette maps the two pixel states to colors.
type Palette struct {
	Off Color
	On  Color
}

// DefaultPalette is white pixels on a black background.
var DefaultPalette = Palette{
	Off: Color{0x00, 0x00, 0x00},
	On:  Color{0xFF, 0xFF, 0xFF},
}

// Color returns the color used for a pixel state.
func (p Palette) Color(on bool) Color {
	if on {
		return p.On
	}
	return p.Off
}
