package sdl2

import (
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

// windowScale clamps the requested pixel scale, zero selects the default.
func windowScale(scale int) int {
	switch {
	case scale <= 0:
		return display.DefaultPixelScale
	case scale > display.MaxPixelScale:
		return display.MaxPixelScale
	default:
		return scale
	}
}

// fillABGR writes the frame into dst using the byte order SDL expects for a
// RGBA8888 texture on little-endian machines.
func fillABGR(dst []byte, frame *video.FrameBuffer, palette display.Palette) {
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			c := palette.Color(frame.Pixel(x, y))
			i := (y*video.FramebufferWidth + x) * display.RGBABytesPerPixel
			dst[i] = display.FullAlpha
			dst[i+1] = c.B
			dst[i+2] = c.G
			dst[i+3] = c.R
		}
	}
}
