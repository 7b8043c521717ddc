package effects

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/valerio/go-jazz/jazz/video"
)

// Rotate cycles a range of entries, the classic way to animate water and
// lava without touching pixels.
type Rotate struct {
	span
	clock
	speed   int
	scratch []video.Color
}

// NewRotate creates a rotation moving speed entries per second. Negative
// speeds rotate the other way.
func NewRotate(first, amount, speed int) *Rotate {
	return &Rotate{
		span:  span{first, amount},
		speed: speed,
	}
}

func (r *Rotate) Apply(colors []video.Color, mspf int, stopped bool) {
	n := len(colors)
	elapsed := r.advance(mspf, stopped)
	if n == 0 {
		return
	}

	offset := (elapsed * r.speed / 1000) % n
	if offset < 0 {
		offset += n
	}
	if offset == 0 {
		return
	}

	r.scratch = append(r.scratch[:0], colors...)
	for i := range colors {
		colors[i] = r.scratch[(i+offset)%n]
	}
}

// HueShift rotates the hue of a range, optionally drifting over time.
type HueShift struct {
	span
	clock
	degrees float64
	drift   float64
}

// NewHueShift shifts hue by degrees plus drift degrees per second elapsed.
func NewHueShift(first, amount int, degrees, drift float64) *HueShift {
	return &HueShift{
		span:    span{first, amount},
		degrees: degrees,
		drift:   drift,
	}
}

func (h *HueShift) Apply(colors []video.Color, mspf int, stopped bool) {
	elapsed := h.advance(mspf, stopped)
	shift := h.degrees + h.drift*float64(elapsed)/1000

	for i, c := range colors {
		hue, s, v := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hsv()

		hue = math.Mod(hue+shift, 360)
		if hue < 0 {
			hue += 360
		}

		r, g, b := colorful.Hsv(hue, s, v).Clamped().RGB255()
		colors[i] = video.Color{R: r, G: g, B: b}
	}
}
