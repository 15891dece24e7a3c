package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/timer"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 virtual machine"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "rom",
			Usage:  "Path to the ROM file",
			EnvVar: "CHIP8_ROM",
		},
		cli.StringFlag{
			Name:   "backend",
			Usage:  "Backend to use: terminal, sdl2 or headless",
			Value:  "terminal",
			EnvVar: "CHIP8_BACKEND",
		},
		cli.IntFlag{
			Name:   "frames",
			Usage:  "Number of frames to run in headless mode (required for headless)",
			EnvVar: "CHIP8_FRAMES",
		},
		cli.IntFlag{
			Name:   "ipf",
			Usage:  "Instructions executed per 60 Hz frame",
			Value:  chip8.DefaultInstructionsPerTick,
			EnvVar: "CHIP8_IPF",
		},
		cli.IntFlag{
			Name:   "stack-depth",
			Usage:  "Maximum call stack depth",
			Value:  chip8.DefaultConfig().StackDepth,
			EnvVar: "CHIP8_STACK_DEPTH",
		},
		cli.Uint64Flag{
			Name:   "seed",
			Usage:  "Seed for the random number generator (0 = random)",
			EnvVar: "CHIP8_SEED",
		},
		cli.IntFlag{
			Name:   "scale",
			Usage:  "Window scale for the sdl2 backend",
			Value:  display.DefaultPixelScale,
			EnvVar: "CHIP8_SCALE",
		},
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "Show the debug panel on startup",
			EnvVar: "CHIP8_DEBUG",
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Display a test pattern instead of emulation (for debugging display)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:   "wav",
			Usage:  "Record the tone output to a WAV file",
			EnvVar: "CHIP8_WAV",
		},
		cli.BoolFlag{
			Name:   "audio",
			Usage:  "Play the tone on the default audio device (build with -tags oto)",
			EnvVar: "CHIP8_AUDIO",
		},
		cli.IntFlag{
			Name:   "rate",
			Usage:  "Frames per second, each frame ticks the timers once (60 = real time)",
			Value:  timing.TargetFPS,
			EnvVar: "CHIP8_RATE",
		},
		cli.StringFlag{
			Name:   "limiter",
			Usage:  "Frame limiter: adaptive, ticker or none",
			Value:  "adaptive",
			EnvVar: "CHIP8_LIMITER",
		},
		cli.BoolFlag{
			Name:  "disasm",
			Usage: "Print the disassembly of the ROM and exit",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func romPathFrom(c *cli.Context) (string, error) {
	if romPath := c.String("rom"); romPath != "" {
		return romPath, nil
	}
	if c.NArg() > 0 {
		return c.Args().Get(0), nil
	}
	cli.ShowAppHelp(c)
	return "", errors.New("no ROM path provided")
}

func runEmulator(c *cli.Context) error {
	testPattern := c.Bool("test-pattern")

	var romPath string
	if !testPattern {
		path, err := romPathFrom(c)
		if err != nil {
			return err
		}
		romPath = path
	}

	if c.Bool("disasm") {
		rom, err := memory.ReadROMFile(romPath)
		if err != nil {
			return err
		}
		return disasm.WriteListing(os.Stdout, rom, memory.ProgramStart)
	}

	b, err := createBackend(c.String("backend"), c.Int("frames"), c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
	if err != nil {
		return err
	}

	title := "CHIP-8"
	if romPath != "" {
		title = fmt.Sprintf("CHIP-8 - %s", filepath.Base(romPath))
	}
	opts := chip8.RunOptions{
		Backend: b,
		BackendConfig: backend.BackendConfig{
			Title:       title,
			Scale:       c.Int("scale"),
			ShowDebug:   c.Bool("debug"),
			TestPattern: testPattern,
			Palette:     display.DefaultPalette,
		},
		SnapshotLabel: romLabel(romPath),
	}

	limiter, err := createLimiter(c.String("backend"), c.String("limiter"), c.Int("rate"))
	if err != nil {
		return err
	}

	if testPattern {
		slog.Info("Running in test pattern mode")
		emu := chip8.NewTestPatternEmulator()
		emu.SetFrameLimiter(limiter)
		return chip8.Run(emu, opts)
	}

	config := chip8.Config{
		InstructionsPerTick: c.Int("ipf"),
		StackDepth:          c.Int("stack-depth"),
		Seed:                c.Uint64("seed"),
	}
	vm, err := chip8.NewWithFile(romPath, config)
	if err != nil {
		return err
	}
	vm.SetFrameLimiter(limiter)

	beeper := audio.NewBeeper()
	vm.OnToneChange(beeper.SetActive)

	if c.Bool("audio") {
		speaker, err := audio.NewSpeaker(beeper)
		if err != nil {
			slog.Warn("Audio output disabled", "error", err)
		} else {
			defer speaker.Close()
		}
	}

	if path := c.String("wav"); path != "" {
		recorder, err := audio.CreateRecorder(path, beeper, timer.Frequency)
		if err != nil {
			return err
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				slog.Error("Failed to finalize WAV file", "path", path, "error", err)
				return
			}
			slog.Info("Saved tone recording", "path", path, "frames", recorder.Frames())
		}()
		opts.Recorder = recorder
	}

	return chip8.Run(vm, opts)
}

// createBackend returns the backend for name. Headless requires a frame budget.
func createBackend(name string, frames, snapshotInterval int, snapshotDir, romPath string) (backend.Backend, error) {
	switch name {
	case "terminal", "":
		return terminal.New(), nil
	case "sdl2":
		return sdl2.New(), nil
	case "headless":
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}
		snapshotConfig, err := headless.CreateSnapshotConfig(snapshotInterval, snapshotDir, romPath)
		if err != nil {
			return nil, err
		}
		return headless.New(frames, snapshotConfig), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// createLimiter picks the frame limiter. Headless runs are never limited.
func createLimiter(backendName, kind string, rate int) (timing.Limiter, error) {
	if backendName == "headless" {
		return timing.NewNoOpLimiter(), nil
	}
	limiter, ok := timing.New(kind, rate)
	if !ok {
		return nil, fmt.Errorf("unknown limiter %q", kind)
	}
	return limiter, nil
}

func romLabel(romPath string) string {
	if romPath == "" {
		return "test_pattern"
	}
	return strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
}
