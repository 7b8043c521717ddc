package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-jazz/jazz/backend"
	"github.com/valerio/go-jazz/jazz/backend/terminal/render"
	"github.com/valerio/go-jazz/jazz/debug"
	"github.com/valerio/go-jazz/jazz/video"
)

const logRows = 1

// Backend implements the Backend interface using tcell. Each terminal cell
// shows two vertically stacked pixels in true color; the bottom row holds the
// newest log line.
type Backend struct {
	screen     tcell.Screen
	ownsScreen bool
	config     backend.Config

	quitting  atomic.Bool
	quitSent  bool
	logBuffer *render.LogBuffer
	logLevel  *slog.LevelVar
	prevLog   *slog.Logger
	stopSig   chan struct{}

	table        video.Palette
	currentFrame *video.FrameBuffer
}

// New creates a terminal backend drawing to the process's terminal.
func New() *Backend {
	b := &Backend{ownsScreen: true}
	b.logLevel = new(slog.LevelVar)
	return b
}

// NewWithScreen creates a terminal backend drawing to screen, which is
// initialised by Init and finalised by Cleanup.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.screen = screen
	b.ownsScreen = false
	return b
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.Config) error {
	t.config = config

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %v", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	// Logs go to a ring buffer while the terminal is ours
	t.logBuffer = render.NewLogBuffer(100)
	t.logLevel.Set(slog.LevelInfo)
	t.prevLog = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	if t.ownsScreen {
		t.stopSig = make(chan struct{})
		go t.handleSignals()
	}

	cols, rows := t.screen.Size()
	slog.Info("Terminal backend initialized", "cols", cols, "rows", rows)
	return nil
}

// SetPaletteTable keeps a copy of the table. Frames always arrive in true
// color; only entry 0 is read, as the border color around the frame.
func (t *Backend) SetPaletteTable(colors []video.Color, first int) error {
	if err := backend.CopyTable(&t.table, colors, first); err != nil {
		return fmt.Errorf("failed to set palette table: %w", err)
	}
	return nil
}

// Present processes pending terminal events and draws the frame
func (t *Backend) Present(frame *video.FrameBuffer) error {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
			t.config.Callbacks.Expose()
		}
	}

	if t.quitting.Load() && !t.quitSent {
		t.quitSent = true
		t.config.Callbacks.Quit()
	}

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()
	return nil
}

// MaxResolution reports the pixel grid the terminal can show without sampling.
func (t *Backend) MaxResolution() (int, int) {
	cols, rows := t.screen.Size()
	return cols, max(rows-logRows, 0) * 2
}

// Cleanup restores the terminal and the previous logger
func (t *Backend) Cleanup() error {
	if t.stopSig != nil {
		close(t.stopSig)
		t.stopSig = nil
	}
	if t.prevLog != nil {
		slog.SetDefault(t.prevLog)
		t.prevLog = nil
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer signal.Stop(signals)

	select {
	case <-signals:
		t.quitting.Store(true)
	case <-t.stopSig:
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quitting.Store(true)
	case tcell.KeyF12:
		debug.TakeSnapshot(t.currentFrame, "jazz_snapshot")
	case tcell.KeyEnter:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			t.config.Callbacks.ToggleFullscreen()
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			t.quitting.Store(true)
		case '+':
			t.changeLogLevel(-4)
		case '-':
			t.changeLogLevel(4)
		}
	}
}

// changeLogLevel moves the shown log level by delta, clamped to debug..error
func (t *Backend) changeLogLevel(delta slog.Level) {
	old := t.logLevel.Level()
	level := min(max(old+delta, slog.LevelDebug), slog.LevelError)
	if level != old {
		t.logLevel.Set(level)
		slog.Info("Log filter changed", "from", old, "to", level)
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	t.screen.Clear()
	termWidth, termHeight := t.screen.Size()
	t.drawBorder(termWidth, termHeight-logRows)
	t.drawFrame(frame, termWidth, termHeight-logRows)
	t.drawLogs(termWidth, termHeight)
}

// drawBorder paints the frame area in palette entry 0, the VGA overscan color.
func (t *Backend) drawBorder(cols, rows int) {
	style := tcell.StyleDefault.Background(t.borderColor())
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (t *Backend) borderColor() tcell.Color {
	c := t.table[0]
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Backend) drawFrame(frame *video.FrameBuffer, cols, rows int) {
	step := render.FitStep(frame.Width(), frame.Height(), cols, rows)
	if step == 0 {
		return
	}

	for y := 0; y*step < frame.Height(); y += 2 {
		for x := 0; x*step < frame.Width(); x++ {
			top := frame.GetPixel(x*step, y*step)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(render.Channels(top))).
				Background(t.borderColor())
			if (y+1)*step < frame.Height() {
				bottom := frame.GetPixel(x*step, (y+1)*step)
				style = style.Background(tcell.NewRGBColor(render.Channels(bottom)))
			}
			t.screen.SetContent(x, y/2, render.UpperHalfBlock, nil, style)
		}
	}
}

func (t *Backend) drawLogs(termWidth, termHeight int) {
	if termHeight < 1 {
		return
	}

	logs := t.logBuffer.Recent(1, t.logLevel.Level())
	if len(logs) == 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	switch {
	case logs[0].Level >= slog.LevelError:
		style = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case logs[0].Level >= slog.LevelWarn:
		style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case logs[0].Level < slog.LevelInfo:
		style = tcell.StyleDefault.Foreground(tcell.ColorGray)
	}

	x := 0
	for _, ch := range render.FormatLogEntry(logs[0]) {
		if x >= termWidth {
			break
		}
		t.screen.SetContent(x, termHeight-1, ch, nil, style)
		x++
	}
}
