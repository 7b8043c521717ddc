package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-jazz/jazz/backend"
	"github.com/valerio/go-jazz/jazz/debug"
	"github.com/valerio/go-jazz/jazz/video"
)

// Backend implements the Backend interface for automated testing and batch processing.
// It accepts both true-color and indexed frames and keeps the last one.
type Backend struct {
	config         backend.Config
	frameCount     int
	indexedCount   int
	maxFrames      int
	snapshotConfig SnapshotConfig

	table       video.Palette
	tableWrites int
	last        *video.FrameBuffer
	fullscreen  bool
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	Name      string // asset name for snapshot filenames
}

// New creates a headless backend that asks to quit after maxFrames frames.
// A maxFrames of zero never asks.
func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	h.fullscreen = config.Fullscreen
	h.last = video.NewFrameBuffer(config.Width, config.Height)

	slog.Info("Running headless mode",
		"width", config.Width,
		"height", config.Height,
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

func (h *Backend) SetPaletteTable(colors []video.Color, first int) error {
	if err := backend.CopyTable(&h.table, colors, first); err != nil {
		return fmt.Errorf("failed to set palette table: %w", err)
	}
	h.tableWrites++
	return nil
}

// Present records a true-color frame and handles snapshots
func (h *Backend) Present(frame *video.FrameBuffer) error {
	if h.last == nil || h.last.Width() != frame.Width() || h.last.Height() != frame.Height() {
		h.last = video.NewFrameBuffer(frame.Width(), frame.Height())
	}
	copy(h.last.ToSlice(), frame.ToSlice())
	h.frameDone()
	return nil
}

// PresentIndexed shows an indexed screen through the palette table.
func (h *Backend) PresentIndexed(screen *video.IndexedImage) error {
	if h.last == nil || h.last.Width() != screen.Width() || h.last.Height() != screen.Height() {
		h.last = video.NewFrameBuffer(screen.Width(), screen.Height())
	}
	h.last.Remap(screen, &h.table)
	h.indexedCount++
	h.frameDone()
	return nil
}

func (h *Backend) frameDone() {
	h.frameCount++

	// Save snapshot if needed
	if h.snapshotsDue() {
		h.saveSnapshot()
	}

	// Log progress periodically
	if h.frameCount%10 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount == h.maxFrames {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && !h.snapshotsDue() {
			h.saveSnapshot()
		}

		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed", "frames", h.maxFrames, "png_snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.maxFrames)
		}

		h.config.Callbacks.Quit()
	}
}

// snapshotsDue reports whether the current frame falls on the snapshot
// interval. A non-positive interval only takes the final snapshot.
func (h *Backend) snapshotsDue() bool {
	c := h.snapshotConfig
	return c.Enabled && c.Interval > 0 && h.frameCount%c.Interval == 0
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns the number of frames presented so far, indexed or not.
func (h *Backend) Frames() int {
	return h.frameCount
}

// IndexedFrames returns how many of the frames were presented as indices.
func (h *Backend) IndexedFrames() int {
	return h.indexedCount
}

// Table returns a copy of the palette table.
func (h *Backend) Table() video.Palette {
	return h.table
}

// TableWrites returns how many times the palette table was written.
func (h *Backend) TableWrites() int {
	return h.tableWrites
}

// SetFullscreen records the requested state; there is no window to resize.
func (h *Backend) SetFullscreen(fullscreen bool) error {
	h.fullscreen = fullscreen
	return nil
}

// Fullscreen reports the last state requested by Init or SetFullscreen.
func (h *Backend) Fullscreen() bool {
	return h.fullscreen
}

// LastFrame returns the most recently shown frame as true color.
func (h *Backend) LastFrame() *video.FrameBuffer {
	return h.last
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, assetName string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	// Set up snapshot directory
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "jazz-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = directory
	}

	config.Name = filepath.Base(assetName)
	config.Name = strings.TrimSuffix(config.Name, filepath.Ext(config.Name))

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot() {
	pngBaseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.Name, h.frameCount)

	if _, err := debug.SaveFramePNGToDir(h.last, pngBaseName, h.snapshotConfig.Directory); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
	}
}
