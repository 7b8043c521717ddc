package terminal_test

import (
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-jazz/jazz/backend"
	"github.com/valerio/go-jazz/jazz/backend/terminal"
	"github.com/valerio/go-jazz/jazz/video"
)

func newSimulated(t *testing.T, cols, rows int, callbacks backend.Callbacks) (*terminal.Backend, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	b := terminal.NewWithScreen(screen)
	require.NoError(t, b.Init(backend.Config{Title: "Test", Callbacks: callbacks}))
	screen.SetSize(cols, rows)
	t.Cleanup(func() { b.Cleanup() })
	return b, screen
}

func cellAt(screen tcell.SimulationScreen, x, y int) tcell.SimCell {
	cells, width, _ := screen.GetContents()
	return cells[y*width+x]
}

func TestTerminalDrawsHalfBlocks(t *testing.T) {
	b, screen := newSimulated(t, 10, 4, backend.Callbacks{})

	frame := video.NewFrameBuffer(2, 2)
	frame.SetPixel(0, 0, 0xFF0000FF)
	frame.SetPixel(0, 1, 0x0000FFFF)
	require.NoError(t, b.Present(frame))

	cell := cellAt(screen, 0, 0)
	require.NotEmpty(t, cell.Runes)
	assert.Equal(t, '▀', cell.Runes[0])

	fg, bg, _ := cell.Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xFF, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0xFF), bg)
}

func TestTerminalBorderUsesPaletteEntryZero(t *testing.T) {
	b, screen := newSimulated(t, 10, 4, backend.Callbacks{})

	green := video.Color{G: 0xC0}
	require.NoError(t, b.SetPaletteTable([]video.Color{green}, 0))

	frame := video.NewFrameBuffer(2, 1)
	frame.SetPixel(0, 0, 0xFF0000FF)
	require.NoError(t, b.Present(frame))

	_, bg, _ := cellAt(screen, 5, 1).Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 0xC0, 0), bg, "outside the frame")

	fg, bg, _ := cellAt(screen, 0, 0).Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xFF, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0xC0, 0), bg, "odd last row is padded with the border")
}

func TestTerminalQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
		{"q", tcell.KeyRune, 'q'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quits := 0
			b, screen := newSimulated(t, 20, 6, backend.Callbacks{OnQuit: func() { quits++ }})
			frame := video.NewFrameBuffer(4, 4)

			require.NoError(t, b.Present(frame))
			assert.Zero(t, quits)

			screen.InjectKey(tt.key, tt.r, tcell.ModNone)
			require.NoError(t, b.Present(frame))
			require.NoError(t, b.Present(frame))
			assert.Equal(t, 1, quits, "quit is reported once")
		})
	}
}

func TestTerminalShowsNewestLog(t *testing.T) {
	b, screen := newSimulated(t, 40, 5, backend.Callbacks{})

	slog.Info("Palette ready")
	require.NoError(t, b.Present(video.NewFrameBuffer(1, 1)))

	cells, width, height := screen.GetContents()
	var line []rune
	for x := 0; x < width; x++ {
		if r := cells[(height-1)*width+x].Runes; len(r) > 0 {
			line = append(line, r[0])
		}
	}
	assert.Contains(t, string(line), "[INF] Palette ready")
}

func TestTerminalPaletteTableAndResolution(t *testing.T) {
	b, _ := newSimulated(t, 80, 25, backend.Callbacks{})

	assert.NoError(t, b.SetPaletteTable(make([]video.Color, 256), 0))
	assert.Error(t, b.SetPaletteTable(make([]video.Color, 4), 254))

	w, h := b.MaxResolution()
	assert.Equal(t, 80, w)
	assert.Equal(t, 48, h)
}

func TestTerminalRestoresLogger(t *testing.T) {
	prev := slog.Default()
	screen := tcell.NewSimulationScreen("UTF-8")
	b := terminal.NewWithScreen(screen)
	require.NoError(t, b.Init(backend.Config{}))
	assert.NotSame(t, prev, slog.Default())

	require.NoError(t, b.Cleanup())
	assert.Same(t, prev, slog.Default())
}

func TestTerminalImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*terminal.Backend)(nil)
	var _ backend.ResolutionLimiter = (*terminal.Backend)(nil)
}
