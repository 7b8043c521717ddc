// Package timing paces the display loop and measures frame times.
package timing

import "time"

// Limiter controls the frame rate of the display loop.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame and returns
	// the milliseconds elapsed since the previous one.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame() int

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// DefaultFPS is the refresh rate of the VGA 320×200 mode the assets target.
const DefaultFPS = 70

// FrameDuration returns the target duration of a single frame.
func FrameDuration(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// NewNoOpLimiter returns a limiter that never waits and reports the nominal
// frame time, so headless runs are reproducible.
func NewNoOpLimiter(fps int) Limiter {
	return &noOpLimiter{mspf: int(FrameDuration(fps).Milliseconds())}
}

type noOpLimiter struct {
	mspf int
}

func (n *noOpLimiter) WaitForNextFrame() int { return n.mspf }
func (n *noOpLimiter) Reset()                {}

// stopwatch measures the time between frames.
type stopwatch struct {
	last time.Time
}

func (s *stopwatch) lap(now time.Time) int {
	if s.last.IsZero() {
		s.last = now
		return 0
	}
	ms := int(now.Sub(s.last).Milliseconds())
	s.last = now
	return ms
}
