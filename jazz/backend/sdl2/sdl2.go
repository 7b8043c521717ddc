//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-jazz/jazz/backend"
	"github.com/valerio/go-jazz/jazz/debug"
	"github.com/valerio/go-jazz/jazz/video"
)

const bytesPerPixel = 4

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texW     int
	texH     int
	running  bool
	config   backend.Config

	// table mirrors what the display pushed. Frames arrive composited, so it
	// is only kept to honour SetPaletteTable's bounds checks.
	table        video.Palette
	currentFrame *video.FrameBuffer
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.Config) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width),
		int32(config.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	if err := s.ensureTexture(config.Width, config.Height); err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return err
	}

	s.running = true
	slog.Info("SDL2 backend initialized", "width", config.Width, "height", config.Height)
	return nil
}

// ensureTexture (re)creates the streaming texture for a frame size
func (s *Backend) ensureTexture(width, height int) error {
	if s.texture != nil && s.texW == width && s.texH == height {
		return nil
	}
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}

	// RGBA8888 is a packed format, so 0xRRGGBBAA frame pixels upload as they are
	texture, err := s.renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(width),
		int32(height),
	)
	if err != nil {
		return fmt.Errorf("failed to create texture: %v", err)
	}
	s.texture = texture
	s.texW, s.texH = width, height
	return nil
}

func (s *Backend) SetPaletteTable(colors []video.Color, first int) error {
	if err := backend.CopyTable(&s.table, colors, first); err != nil {
		return fmt.Errorf("failed to set palette table: %w", err)
	}
	return nil
}

// Present processes window events and shows the frame
func (s *Backend) Present(frame *video.FrameBuffer) error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		s.handleEvent(event)
	}

	if !s.running {
		return nil
	}

	s.currentFrame = frame
	return s.renderFrame(frame)
}

// MaxResolution reports the desktop size
func (s *Backend) MaxResolution() (int, int) {
	mode, err := sdl.GetDesktopDisplayMode(0)
	if err != nil {
		slog.Warn("Failed to query display mode", "error", err)
		return s.config.Width, s.config.Height
	}
	return int(mode.W), int(mode.H)
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

func (s *Backend) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.config.Callbacks.Quit()

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			s.config.Callbacks.Resize(int(e.Data1), int(e.Data2))
		case sdl.WINDOWEVENT_EXPOSED:
			s.config.Callbacks.Expose()
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			s.handleKeyDown(e.Keysym)
		}
	}
}

func (s *Backend) handleKeyDown(key sdl.Keysym) {
	switch key.Sym {
	case sdl.K_ESCAPE:
		s.running = false
		s.config.Callbacks.Quit()
	case sdl.K_F12:
		debug.TakeSnapshot(s.currentFrame, "jazz_snapshot")
	case sdl.K_RETURN:
		if key.Mod&uint16(sdl.KMOD_ALT) != 0 {
			s.toggleFullscreen()
		}
	}
}

func (s *Backend) toggleFullscreen() {
	if err := s.SetFullscreen(!s.config.Fullscreen); err != nil {
		slog.Warn("Failed to switch fullscreen", "error", err)
		return
	}
	s.config.Callbacks.ToggleFullscreen()
}

// SetFullscreen switches the window to the desktop resolution or back.
func (s *Backend) SetFullscreen(fullscreen bool) error {
	if fullscreen == s.config.Fullscreen {
		return nil
	}

	var flags uint32
	if fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := s.window.SetFullscreen(flags); err != nil {
		return fmt.Errorf("failed to set fullscreen: %v", err)
	}
	s.config.Fullscreen = fullscreen
	return nil
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	pixels := frame.ToSlice()
	if len(pixels) == 0 {
		return nil
	}
	if err := s.ensureTexture(frame.Width(), frame.Height()); err != nil {
		return err
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&pixels[0]), frame.Width()*bytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %v", err)
	}

	// Clear renderer and draw texture scaled to the window
	s.renderer.SetDrawColor(0, 0, 0, 0xFF)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}
