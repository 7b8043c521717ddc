// Package display owns the palette and screen state of the game and turns
// indexed frames into output through a backend.
package display

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-jazz/jazz/backend"
	"github.com/valerio/go-jazz/jazz/effects"
	"github.com/valerio/go-jazz/jazz/video"
)

// ErrClosed is returned by operations on a closed display.
var ErrClosed = errors.New("display closed")

// Config holds the startup settings of a display.
type Config struct {
	Title       string
	Width       int // defaults to BaseWidth
	Height      int // defaults to BaseHeight
	Fullscreen  bool
	Mode        Mode
	ScaleFactor int    // canvas pixels are drawn as ScaleFactor×ScaleFactor blocks
	OnQuit      func() // forwarded from the backend
}

// State is the display context: palettes, the indexed screen and the
// backend they are shown on. It is not safe for concurrent use; Flip assumes
// nothing else touches the palette or the screen while it runs.
type State struct {
	backend   backend.Backend
	presenter presenter
	mode      Mode
	title     string

	// fakePalette is set when the backend has no palette lookup and every
	// pixel has to be remapped on each frame.
	fakePalette bool

	logical video.Palette
	current video.Palette
	table   video.Palette // what the backend holds
	scratch video.Palette

	screen *video.IndexedImage
	canvas *video.IndexedImage // same as screen unless scaled
	frame  *video.FrameBuffer

	screenW, screenH int
	maxW, maxH       int
	scaleFactor      int
	fullscreen       bool

	pendingResize     []int
	pendingExpose     bool
	pendingFullscreen bool
	closed            bool
}

// New initialises b and creates a display on it. DirectPalette needs a
// backend.IndexedBackend and falls back to emulation otherwise.
func New(b backend.Backend, config Config) (*State, error) {
	s := &State{
		backend:     b,
		mode:        config.Mode,
		title:       config.Title,
		logical:     video.LogicalPalette(),
		scaleFactor: max(config.ScaleFactor, 1),
		fullscreen:  config.Fullscreen,
	}
	s.current = s.logical

	switch config.Mode {
	case DirectPalette:
		if target, ok := b.(backend.IndexedBackend); ok {
			s.presenter = directPresenter{target: target}
			break
		}
		slog.Warn("Backend cannot present indexed frames, emulating the palette instead")
		s.mode = EmulatedTrueColor
		s.fakePalette = true
		s.presenter = emulatedPresenter{}
	case EmulatedTrueColor, FixedResolution:
		s.fakePalette = true
		s.presenter = emulatedPresenter{}
	default:
		return nil, fmt.Errorf("unsupported display mode %v", config.Mode)
	}

	width, height := config.Width, config.Height
	if width <= 0 || height <= 0 || s.mode == FixedResolution {
		width, height = BaseWidth, BaseHeight
	}

	err := b.Init(backend.Config{
		Title:      config.Title,
		Width:      width,
		Height:     height,
		Fullscreen: config.Fullscreen,
		Callbacks: backend.Callbacks{
			OnQuit:             config.OnQuit,
			OnResize:           s.queueResize,
			OnExpose:           s.queueExpose,
			OnToggleFullscreen: s.queueFullscreen,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display backend: %w", err)
	}

	if err := s.Reset(width, height); err != nil {
		b.Cleanup()
		return nil, err
	}
	s.findMaxResolution()

	slog.Info("Display initialized",
		"width", s.screenW,
		"height", s.screenH,
		"mode", s.mode,
		"fake_palette", s.fakePalette,
		"scale", s.scaleFactor)
	return s, nil
}

// Reset sets the screen size. The scale factor shrinks until the base
// resolution fits, and the screen contents are lost.
func (s *State) Reset(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if s.mode == FixedResolution {
		width, height = BaseWidth, BaseHeight
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid screen size %dx%d", width, height)
	}

	s.screenW, s.screenH = width, height

	for (width/BaseWidth < s.scaleFactor || height/BaseHeight < s.scaleFactor) && s.scaleFactor > 1 {
		s.scaleFactor--
	}

	s.screen = video.NewIndexedImage(width, height, &s.logical)
	if s.scaleFactor > 1 {
		s.canvas = video.NewIndexedImage(width/s.scaleFactor, height/s.scaleFactor, &s.logical)
	} else {
		s.canvas = s.screen
	}
	s.frame = video.NewFrameBuffer(width, height)

	slog.Debug("Display reset", "width", width, "height", height, "scale", s.scaleFactor)
	return s.Expose()
}

// Expose pushes the whole palette table again, after the backend lost it.
func (s *State) Expose() error {
	if err := s.pushTable(s.logical[:], 0); err != nil {
		return err
	}
	return s.pushTable(s.current[:], 0)
}

func (s *State) pushTable(colors []video.Color, first int) error {
	copy(s.table[first:], colors)
	if err := s.backend.SetPaletteTable(colors, first); err != nil {
		return fmt.Errorf("failed to push palette table: %w", err)
	}
	return nil
}

// SetPalette replaces the whole palette. The screen is cleared to black and
// shown once first, so no frame mixes old pixels with the new colors.
func (s *State) SetPalette(p *video.Palette) error {
	if s.closed {
		return ErrClosed
	}

	s.ClearScreen(s.current.Nearest(video.Color{}))
	if err := s.Flip(0, nil, false); err != nil {
		return err
	}

	s.current = *p
	return s.pushTable(s.current[:], 0)
}

// ChangePalette copies colors into entries [first, first+amount) of the
// current palette, clipped to the palette and to len(colors). Unlike
// SetPalette it does not blank the screen.
func (s *State) ChangePalette(colors []video.Color, first, amount int) error {
	if s.closed {
		return ErrClosed
	}

	if first < 0 {
		colors = colors[min(-first, len(colors)):]
		amount += first
		first = 0
	}

	dst := s.current.Range(first, min(amount, len(colors)))
	if len(dst) == 0 {
		return nil
	}
	copy(dst, colors)
	return s.pushTable(dst, first)
}

// Palette returns a copy of the current palette.
func (s *State) Palette() video.Palette {
	return s.current
}

// Logical returns the identity palette that loaded surfaces refer to. It must
// not be modified.
func (s *State) Logical() *video.Palette {
	return &s.logical
}

// Table returns a copy of the palette table last pushed to the backend.
func (s *State) Table() video.Palette {
	return s.table
}

// RestoreSurfacePalette points img back at the logical palette.
func (s *State) RestoreSurfacePalette(img *video.IndexedImage) {
	img.SetPalette(&s.logical)
}

// Flip shows the screen. mspf is the time since the previous frame and drives
// the effects in chain, which may be nil; stopped effects hold their state.
// The current palette is never modified.
func (s *State) Flip(mspf int, chain *effects.Chain, stopped bool) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.applyPending(); err != nil {
		return err
	}

	if s.canvas != s.screen {
		s.canvas.ScaleInto(s.screen, s.scaleFactor)
	}
	return s.presenter.present(s, mspf, chain, stopped)
}

// ClearScreen fills the drawing surface with index.
func (s *State) ClearScreen(index uint8) {
	s.canvas.Fill(index)
}

// DrawRect fills the part of the rectangle that lies on the drawing surface.
func (s *State) DrawRect(x, y, width, height int, index uint8) {
	s.canvas.FillRect(x, y, width, height, index)
}

// Screen returns the surface the game draws into. It is replaced by Reset.
func (s *State) Screen() *video.IndexedImage {
	return s.canvas
}

// Frame returns the last composited true-color frame. Only emulated modes
// fill it.
func (s *State) Frame() *video.FrameBuffer {
	return s.frame
}

// Width returns the width of the drawing surface returned by Screen. With a
// scale factor above 1 this is the output width divided by the factor.
func (s *State) Width() int {
	return s.canvas.Width()
}

// Height returns the height of the drawing surface returned by Screen.
func (s *State) Height() int {
	return s.canvas.Height()
}

func (s *State) MaxWidth() int {
	return s.maxW
}

func (s *State) MaxHeight() int {
	return s.maxH
}

func (s *State) ScaleFactor() int {
	return s.scaleFactor
}

// SetScaleFactor changes the scale if the base resolution fits the screen
// that many times, and returns the scale in effect.
func (s *State) SetScaleFactor(factor int) int {
	if factor < 1 || s.closed {
		return s.scaleFactor
	}
	if BaseWidth*factor <= s.screenW && BaseHeight*factor <= s.screenH && factor != s.scaleFactor {
		s.scaleFactor = factor
		if err := s.Reset(s.screenW, s.screenH); err != nil {
			slog.Warn("Failed to apply scale factor", "scale", factor, "error", err)
		}
	}
	return s.scaleFactor
}

func (s *State) Fullscreen() bool {
	return s.fullscreen
}

// ToggleFullscreen switches between windowed and full-screen mode. Backends
// implementing backend.FullscreenSetter are told to switch; others only see
// the rebuilt screen.
func (s *State) ToggleFullscreen() error {
	if s.closed {
		return ErrClosed
	}
	if setter, ok := s.backend.(backend.FullscreenSetter); ok {
		if err := setter.SetFullscreen(!s.fullscreen); err != nil {
			return fmt.Errorf("failed to toggle fullscreen: %w", err)
		}
	}
	s.fullscreen = !s.fullscreen
	if err := s.Reset(s.screenW, s.screenH); err != nil {
		return err
	}
	s.findMaxResolution()
	slog.Info("Fullscreen toggled", "fullscreen", s.fullscreen)
	return nil
}

// FakePalette reports whether the palette is emulated by remapping pixels.
func (s *State) FakePalette() bool {
	return s.fakePalette
}

// Mode returns the presentation mode in effect.
func (s *State) Mode() Mode {
	return s.mode
}

// Close releases the backend. Further calls fail with ErrClosed.
func (s *State) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.backend.Cleanup(); err != nil {
		return fmt.Errorf("failed to clean up display backend: %w", err)
	}
	return nil
}

func (s *State) findMaxResolution() {
	switch {
	case s.mode == FixedResolution:
		s.maxW, s.maxH = BaseWidth, BaseHeight
	default:
		s.maxW, s.maxH = MaxScreenWidth, MaxScreenHeight
		if limiter, ok := s.backend.(backend.ResolutionLimiter); ok {
			w, h := limiter.MaxResolution()
			s.maxW = min(max(w, BaseWidth), MaxScreenWidth)
			s.maxH = min(max(h, BaseHeight), MaxScreenHeight)
		}
	}
}

// Backend events arrive while a frame is being presented, so they are
// applied at the start of the next Flip.
func (s *State) queueResize(width, height int) {
	s.pendingResize = []int{width, height}
}

func (s *State) queueExpose() {
	s.pendingExpose = true
}

func (s *State) queueFullscreen() {
	s.pendingFullscreen = !s.pendingFullscreen
}

func (s *State) applyPending() error {
	if s.pendingFullscreen {
		s.pendingFullscreen = false
		if err := s.ToggleFullscreen(); err != nil {
			return err
		}
	}
	if s.pendingResize != nil {
		size := s.pendingResize
		s.pendingResize = nil
		s.pendingExpose = false
		if s.mode != FixedResolution {
			return s.Reset(size[0], size[1])
		}
	}
	if s.pendingExpose {
		s.pendingExpose = false
		return s.Expose()
	}
	return nil
}
