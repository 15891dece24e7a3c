//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
	config   backend.BackendConfig
	pixels   []byte
	events   []backend.InputEvent
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config
	scale := windowScale(config.Scale)

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*scale),
		int32(video.FramebufferHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture
	s.pixels = make([]byte, video.FramebufferWidth*video.FramebufferHeight*display.RGBABytesPerPixel)
	s.running = true

	slog.Info("SDL2 backend initialized", "scale", scale, "test_pattern", config.TestPattern)
	return nil
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	s.events = s.events[:0]

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	events := append([]backend.InputEvent(nil), s.events...)
	if !s.running {
		return events, nil
	}

	if err := s.renderFrame(frame); err != nil {
		return events, err
	}
	return events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

func (s *Backend) emit(act action.Action, typ event.Type) {
	s.events = append(s.events, backend.InputEvent{Action: act, Type: typ})
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.emit(action.EmulatorQuit, event.Press)

	case *sdl.KeyboardEvent:
		act, ok := keyMapping[e.Keysym.Sym]
		if !ok {
			return
		}
		switch {
		case e.Type == sdl.KEYDOWN && e.Repeat == 0:
			if act == action.EmulatorQuit {
				s.running = false
			}
			s.emit(act, event.Press)
		case e.Type == sdl.KEYUP && act.IsKeypad():
			s.emit(act, event.Release)
		}
	}
}

// sdlKeyNames maps SDL keycodes for the named keys of the default mapping.
var sdlKeyNames = map[sdl.Keycode]string{
	sdl.K_SPACE:  "Space",
	sdl.K_ESCAPE: "Escape",
	sdl.K_F5:     "F5",
	sdl.K_F9:     "F9",
	sdl.K_F10:    "F10",
	sdl.K_F12:    "F12",
}

// buildKeyMapping derives the SDL mapping from the default one. SDL keycodes
// of printable ASCII keys are the characters themselves.
func buildKeyMapping() map[sdl.Keycode]action.Action {
	mapping := make(map[sdl.Keycode]action.Action)
	for name, act := range input.DefaultKeyMap {
		if len(name) == 1 {
			mapping[sdl.Keycode(name[0])] = act
		}
	}
	for key, name := range sdlKeyNames {
		if act, ok := input.GetDefaultMapping(name); ok {
			mapping[key] = act
		}
	}
	return mapping
}

var keyMapping = buildKeyMapping()

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	fillABGR(s.pixels, frame, s.config.Palette)

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), video.FramebufferWidth*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	off := s.config.Palette.Off
	s.renderer.SetDrawColor(off.R, off.G, off.B, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}
