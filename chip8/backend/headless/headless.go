package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend implements the Backend interface for automated testing and batch processing
type Backend struct {
	config         backend.BackendConfig
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	snapshots      []string
	waitingForKey  bool
}

// progressInterval is one second of emulated time.
const progressInterval = 60

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	ROMName   string // ROM name for snapshot filenames
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	if h.maxFrames <= 0 {
		return fmt.Errorf("headless mode requires a positive frame count, got %d", h.maxFrames)
	}
	h.config = config

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"test_pattern", config.TestPattern,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// Update processes a frame and handles snapshots.
// The run ends after the frame budget, or earlier when the program waits for
// a key press, since no input ever arrives in headless mode.
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	h.frameCount++

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	cpu := h.cpuState()
	if h.frameCount%progressInterval == 0 {
		h.logProgress(cpu)
	}

	switch {
	case h.frameCount >= h.maxFrames:
		h.finish(frame, "frame budget reached")
	case cpu != nil && cpu.WaitingKey:
		h.waitingForKey = true
		h.finish(frame, fmt.Sprintf("program waiting for key into V%X", cpu.WaitingReg))
	default:
		return nil, nil
	}

	return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, nil
}

func (h *Backend) cpuState() *debug.CPUState {
	if h.config.DebugProvider == nil {
		return nil
	}
	data := h.config.DebugProvider.ExtractDebugData()
	if data == nil {
		return nil
	}
	return data.CPU
}

func (h *Backend) logProgress(cpu *debug.CPUState) {
	if cpu == nil {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
		return
	}
	slog.Debug("Frame progress",
		"completed", h.frameCount,
		"total", h.maxFrames,
		"instructions", cpu.Cycles,
		"pc", fmt.Sprintf("0x%03X", cpu.PC))
}

// finish logs the summary, the final frame is always captured.
func (h *Backend) finish(frame *video.FrameBuffer, reason string) {
	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
		h.saveSnapshot(frame)
	}

	attrs := []any{"reason", reason, "frames", h.frameCount, "lit_pixels", frame.LitCount()}
	if cpu := h.cpuState(); cpu != nil {
		attrs = append(attrs, "instructions", cpu.Cycles)
	}
	if h.snapshotConfig.Enabled {
		attrs = append(attrs, "png_snapshots_saved_to", h.snapshotConfig.Directory)
	}
	slog.Info("Headless execution completed", attrs...)
}

// WaitingForKey reports whether the run stopped on a key wait.
func (h *Backend) WaitingForKey() bool {
	return h.waitingForKey
}

func (h *Backend) Cleanup() error {
	return nil
}

// FrameCount returns the number of frames processed so far.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// Snapshots returns the paths of the snapshots written so far.
func (h *Backend) Snapshots() []string {
	return h.snapshots
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "chip8-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	config.ROMName = "test_pattern"
	if romPath != "" {
		config.ROMName = strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
	}

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	pngBaseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.ROMName, h.frameCount)

	path, err := debug.SaveFramePNGToDir(frame, h.config.Palette, pngBaseName, h.snapshotConfig.Directory)
	if err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.snapshots = append(h.snapshots, path)
}
