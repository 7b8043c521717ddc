package backend

import (
	"github.com/valerio/go-jazz/jazz/video"
)

// Backend is a display target for composited frames.
// Backends are responsible for:
// - Creating the window or terminal surface
// - Holding the palette table the display last pushed
// - Showing presented frames and reporting platform events through Callbacks
type Backend interface {
	// Init creates the output surface. It must be called before anything else.
	Init(config Config) error

	// SetPaletteTable replaces entries [first, first+len(colors)) of the
	// backend's palette table.
	SetPaletteTable(colors []video.Color, first int) error

	// Present shows a true-color frame. The frame is owned by the caller and
	// reused for the next frame.
	Present(frame *video.FrameBuffer) error

	// Cleanup releases resources when shutting down
	Cleanup() error
}

// IndexedBackend is implemented by backends that can look up palette indices
// themselves. Screens presented this way are shown through the palette table.
type IndexedBackend interface {
	Backend
	PresentIndexed(screen *video.IndexedImage) error
}

// ResolutionLimiter is implemented by backends that know the largest screen
// they can show.
type ResolutionLimiter interface {
	MaxResolution() (width, height int)
}

// FullscreenSetter is implemented by backends that can switch between a
// window and the whole screen on request. Setting the current state again
// is a no-op.
type FullscreenSetter interface {
	SetFullscreen(fullscreen bool) error
}

// Config holds configuration for backends
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	Callbacks  Callbacks
}

// Callbacks lets a backend report platform events. Any of them may be nil.
type Callbacks struct {
	OnQuit             func()                  // window closed or quit key pressed
	OnResize           func(width, height int) // output surface changed size
	OnExpose           func()                  // surface contents were lost and need a redraw
	OnToggleFullscreen func()
}

func (c Callbacks) Quit() {
	if c.OnQuit != nil {
		c.OnQuit()
	}
}

func (c Callbacks) Resize(width, height int) {
	if c.OnResize != nil {
		c.OnResize(width, height)
	}
}

func (c Callbacks) Expose() {
	if c.OnExpose != nil {
		c.OnExpose()
	}
}

func (c Callbacks) ToggleFullscreen() {
	if c.OnToggleFullscreen != nil {
		c.OnToggleFullscreen()
	}
}
