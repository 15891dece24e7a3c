package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

// TakeSnapshot handles the snapshot action, saving the frame in the working directory.
// label, if set, is appended to the file name.
func TakeSnapshot(frame *video.FrameBuffer, palette display.Palette, label string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	baseName := "chip8_snapshot"
	if label != "" {
		baseName = fmt.Sprintf("%s_%s", baseName, label)
	}

	if _, err := SaveFramePNGToDir(frame, palette, baseName, ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage converts the framebuffer to an RGBA image, one image pixel per CHIP-8 pixel.
func FrameImage(frame *video.FrameBuffer, palette display.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			c := palette.Color(frame.Pixel(x, y))
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: display.FullAlpha})
		}
	}
	return img
}

// SaveFramePNGToDir saves a framebuffer as PNG with timestamp to a specific directory
// (the working directory if empty), returning the written path.
func SaveFramePNGToDir(frame *video.FrameBuffer, palette display.Palette, baseName, directory string) (string, error) {
	img := FrameImage(frame, palette)

	timestamp := time.Now().Format("20060102_150405.000")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", video.FramebufferWidth, video.FramebufferHeight), "format", "PNG")
	return filePath, nil
}
