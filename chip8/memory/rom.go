package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// MaxROMSize is the largest program accepted by LoadROM.
const MaxROMSize = MaxAddress - ProgramStart

var (
	ErrROMTooLarge      = errors.New("rom too large")
	ErrEmptyROM         = errors.New("rom is empty")
	ErrROMAlreadyLoaded = errors.New("rom already loaded")
)

// LoadROM copies the program bytes verbatim at ProgramStart.
// It can only succeed once per Memory, and leaves memory untouched on failure.
func (m *Memory) LoadROM(rom []byte) error {
	if m.romLoaded {
		return ErrROMAlreadyLoaded
	}
	if len(rom) == 0 {
		return ErrEmptyROM
	}
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, max is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	copy(m.data[ProgramStart:], rom)
	m.romLoaded = true
	m.romSize = len(rom)

	return nil
}

// ReadROMFile reads a ROM from disk, rejecting oversized files before returning any data.
func ReadROMFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rom: %w", err)
	}
	if info.Size() > MaxROMSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, max is %d", ErrROMTooLarge, path, info.Size(), MaxROMSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rom: %w", err)
	}

	slog.Info("Loaded ROM data", "path", path, "bytes", len(data))
	return data, nil
}
