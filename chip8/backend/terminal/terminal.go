package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	// two pixel rows per terminal row
	gameAreaHeight = height / 2
	panelX         = width + 2
	registerHeight = 10
	disasmHeight   = 9
	minTermWidth   = width + 2
	minTermHeight  = gameAreaHeight + 6
	logCapacity    = 200
)

// Key expiry timeout, slightly longer than the typical key repeat interval.
// Terminals only report key presses, a key is considered released once it
// stops repeating.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen    tcell.Screen
	running   bool
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	config    backend.BackendConfig

	mu         sync.Mutex
	eventQueue []backend.InputEvent // emulator actions collected between updates

	keyStates  map[action.Action]time.Time // Last time each keypad key was seen
	activeKeys map[action.Action]bool      // Keys active in previous frame

	debugProvider backend.DebugDataProvider
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel: slog.LevelInfo,
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	return t.initWithScreen(screen, config)
}

func (t *Backend) initWithScreen(screen tcell.Screen, config backend.BackendConfig) error {
	t.config = config
	t.debugProvider = config.DebugProvider
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.screen = screen
	t.running = true

	// logs go to the on-screen panel while the terminal is in raw mode
	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	if config.TestPattern {
		slog.Info("Terminal backend initialized in test pattern mode")
	} else {
		slog.Info("Terminal backend initialized")
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleSignals()

	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := time.Now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.keypadEvents(now)

	t.mu.Lock()
	events = append(events, t.eventQueue...)
	t.eventQueue = nil
	t.mu.Unlock()

	if !t.running {
		return events, nil
	}

	t.drawScreen(frame)
	t.screen.Show()

	return events, nil
}

// keypadEvents turns the last seen time of each key into press, hold and release events.
func (t *Backend) keypadEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if t.activeKeys[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		} else {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorDebugToggle:
		t.config.ShowDebug = !t.config.ShowDebug
		slog.Info("Debug display toggled", "enabled", t.config.ShowDebug)
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

var _ backend.ActionHandler = (*Backend)(nil)

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	<-signals
	t.queue(action.EmulatorQuit)
}

func (t *Backend) queue(act action.Action) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	if act.IsKeypad() {
		t.keyStates[act] = now
		return
	}
	if act == action.EmulatorQuit {
		t.running = false
	}
	t.queue(act)
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF5:     "F5",
	tcell.KeyF9:     "F9",
	tcell.KeyF10:    "F10",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.EmulatorQuit
	return mapping
}

// buildRuneMapping maps every single character key name, plus space.
// Letters also match in upper case so Shift and Caps Lock don't lose keys.
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)
	for keyName, act := range input.DefaultKeyMap {
		r := []rune(keyName)
		if len(r) != 1 {
			continue
		}
		mapping[r[0]] = act
		if upper := unicode.ToUpper(r[0]); upper != r[0] {
			mapping[upper] = act
		}
	}
	if act, ok := input.GetDefaultMapping("Space"); ok {
		mapping[' '] = act
	}
	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

func (t *Backend) changeLogLevel(direction int) {
	levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	current := 1
	for i, l := range levels {
		if l == t.logLevel {
			current = i
		}
	}
	// increasing verbosity lowers the level
	next := max(0, min(len(levels)-1, current-direction))
	if levels[next] != t.logLevel {
		slog.Info("Log filter changed", "from", t.logLevel, "to", levels[next])
		t.logLevel = levels[next]
	}
}

func (t *Backend) drawScreen(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		t.drawText(0, termHeight/2, termWidth, fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight), style)
		return
	}

	t.drawFrame(frame)
	t.drawBorders(termWidth, termHeight)

	if t.config.ShowDebug && t.debugProvider != nil && termWidth > panelX+1 {
		if data := t.debugProvider.ExtractDebugData(); data != nil && data.CPU != nil {
			t.drawRegisters(data, panelX+1, 1, termWidth-panelX-1)
			t.drawDisassembly(data, panelX+1, registerHeight+2, termWidth-panelX-1)
		}
	}

	logsY := gameAreaHeight + 2
	t.drawLogs(0, logsY, width, termHeight-logsY-1)
}

func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	palette := t.config.Palette
	on := tcell.NewRGBColor(int32(palette.On.R), int32(palette.On.G), int32(palette.On.B))
	off := tcell.NewRGBColor(int32(palette.Off.R), int32(palette.Off.G), int32(palette.Off.B))

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			char, lit := render.HalfBlock(frame.Pixel(x, y), frame.Pixel(x, y+1))
			style := tcell.StyleDefault.Background(off)
			if lit {
				style = style.Foreground(on)
			}
			t.screen.SetContent(x, y/2+1, char, nil, style)
		}
	}
}

func (t *Backend) drawBorders(termWidth, termHeight int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for x := 0; x < width; x++ {
		t.screen.SetContent(x, gameAreaHeight+1, '─', nil, borderStyle)
	}
	if t.config.ShowDebug {
		for y := 0; y < termHeight-1; y++ {
			t.screen.SetContent(panelX, y, '│', nil, borderStyle)
		}
		t.drawText(panelX+2, 0, termWidth-panelX-2, " CPU Registers ", titleStyle)
		t.drawText(panelX+2, registerHeight+1, termWidth-panelX-2, " Disassembly ", titleStyle)
	}

	title := fmt.Sprintf(" %s ", t.config.Title)
	if t.config.TestPattern {
		title = " Test Pattern "
	}
	t.drawText(1, 0, width-1, title, titleStyle)

	logTitle := fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel)
	t.drawText(1, gameAreaHeight+1, width-1, logTitle, titleStyle)

	helpText := " ESC=quit SPACE=pause N=step O=frame F5=reset F10=debug F12=snapshot | keys: 1234 qwer asdf zxcv "
	if t.config.TestPattern {
		helpText = " Test Pattern Mode: F9=cycle patterns F12=snapshot ESC=exit "
	}
	t.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

// registerLines formats the debug data for the register panel.
func registerLines(data *debug.CompleteDebugData) []string {
	cpu := data.CPU

	lines := []string{fmt.Sprintf("Status: %s  CPU: %s", data.DebuggerState, cpu.State)}
	for row := 0; row < 4; row++ {
		var sb strings.Builder
		for col := 0; col < 4; col++ {
			r := row*4 + col
			fmt.Fprintf(&sb, "V%X:%02X ", r, cpu.V[r])
		}
		lines = append(lines, strings.TrimSpace(sb.String()))
	}
	lines = append(lines,
		fmt.Sprintf("I: 0x%03X  PC: 0x%03X  SP: %d", cpu.I, cpu.PC, len(cpu.Stack)),
		fmt.Sprintf("DT: %3d  ST: %3d  Tone: %v", data.Timers.Delay, data.Timers.Sound, data.Timers.ToneActive),
		fmt.Sprintf("Keys: %s", formatKeys(data.PressedKeys)),
		fmt.Sprintf("Cycles: %d  Frames: %d", cpu.Cycles, data.Frames),
	)
	if cpu.WaitingKey {
		lines = append(lines, fmt.Sprintf("Waiting for key -> V%X", cpu.WaitingReg))
	} else if cpu.HaltedError != "" {
		lines = append(lines, "Error: "+cpu.HaltedError)
	}
	return lines
}

func formatKeys(keys []uint8) string {
	if len(keys) == 0 {
		return "-"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%X", k)
	}
	return strings.Join(parts, " ")
}

func (t *Backend) drawRegisters(data *debug.CompleteDebugData, x, y, w int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range registerLines(data) {
		if i >= registerHeight {
			break
		}
		t.drawText(x, y+i, w, line, style)
	}
}

func (t *Backend) drawDisassembly(data *debug.CompleteDebugData, x, y, w int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	lines := debug.CreateDisassembly(data.Memory, data.CPU.PC, disasmHeight)
	for i, line := range lines {
		prefix, useStyle := " ", style
		if line.IsCurrent {
			prefix, useStyle = "→", currentStyle
		}
		t.drawText(x, y+i, w, fmt.Sprintf("%s0x%03X: %s", prefix, line.Address, line.Instruction), useStyle)
	}
}

func (t *Backend) drawLogs(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}

	styles := map[slog.Level]tcell.Style{
		slog.LevelDebug: tcell.StyleDefault.Foreground(tcell.ColorGray),
		slog.LevelInfo:  tcell.StyleDefault.Foreground(tcell.ColorBlue),
		slog.LevelWarn:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
		slog.LevelError: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}

	for i, entry := range t.logBuffer.GetRecent(h, t.logLevel) {
		text := render.FormatLogEntry(entry)
		if len(text) > w && w > 3 {
			text = text[:w-3] + "..."
		}
		t.drawText(x, y+i, w, text, styles[entry.Level])
	}
}

func (t *Backend) drawText(x, y, w int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= w {
			return
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
