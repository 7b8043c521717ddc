package effects

import "github.com/valerio/go-jazz/jazz/video"

// FadeKind selects the direction and target color of a fade.
type FadeKind int

const (
	FadeIn FadeKind = iota
	FadeOut
	WhiteIn
	WhiteOut
)

func (k FadeKind) String() string {
	switch k {
	case FadeIn:
		return "fade-in"
	case FadeOut:
		return "fade-out"
	case WhiteIn:
		return "white-in"
	case WhiteOut:
		return "white-out"
	}
	return "unknown"
}

var white = video.Color{R: 0xFF, G: 0xFF, B: 0xFF}

// Fade blends a range between the palette and black or white.
type Fade struct {
	span
	clock
	kind     FadeKind
	duration int
}

// NewFade creates a fade over [first, first+amount) lasting duration milliseconds.
func NewFade(kind FadeKind, first, amount, duration int) *Fade {
	if duration < 1 {
		duration = 1
	}
	return &Fade{
		span:     span{first, amount},
		kind:     kind,
		duration: duration,
	}
}

// Done reports whether the fade has reached its final state.
func (f *Fade) Done() bool {
	return f.elapsed >= f.duration
}

func (f *Fade) Apply(colors []video.Color, mspf int, stopped bool) {
	elapsed := min(f.advance(mspf, stopped), f.duration)

	// weight of the target color, out of duration
	weight := elapsed
	if f.kind == FadeIn || f.kind == WhiteIn {
		weight = f.duration - elapsed
	}

	target := video.Color{}
	if f.kind == WhiteIn || f.kind == WhiteOut {
		target = white
	}

	for i, c := range colors {
		colors[i] = blend(c, target, weight, f.duration)
	}
}

// Flash starts a range at a solid color and fades it back to the palette.
type Flash struct {
	span
	clock
	color    video.Color
	duration int
}

func NewFlash(c video.Color, first, amount, duration int) *Flash {
	if duration < 1 {
		duration = 1
	}
	return &Flash{
		span:     span{first, amount},
		color:    c,
		duration: duration,
	}
}

func (f *Flash) Apply(colors []video.Color, mspf int, stopped bool) {
	elapsed := min(f.advance(mspf, stopped), f.duration)
	for i, c := range colors {
		colors[i] = blend(c, f.color, f.duration-elapsed, f.duration)
	}
}

// blend moves c towards target by weight/total.
func blend(c, target video.Color, weight, total int) video.Color {
	mix := func(from, to uint8) uint8 {
		return uint8(int(from) + (int(to)-int(from))*weight/total)
	}
	return video.Color{
		R: mix(c.R, target.R),
		G: mix(c.G, target.G),
		B: mix(c.B, target.B),
	}
}
