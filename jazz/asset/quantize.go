package asset

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/valerio/go-jazz/jazz/video"
)

// Quantize reduces m to at most 256 colors anchored at (0, 0). Images that
// already carry a small enough palette keep it.
func Quantize(m image.Image) *image.Paletted {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= video.PaletteSize {
			pm = image.NewPaletted(b, cp)
			draw.Draw(pm, b, m, b.Min, draw.Src)
		}
	}

	if pm == nil || len(pm.Palette) > video.PaletteSize {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, video.PaletteSize), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	if pm.Rect.Min != (image.Point{}) {
		moved := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pm.Palette)
		draw.Draw(moved, moved.Rect, pm, b.Min, draw.Src)
		pm = moved
	}
	return pm
}

// PaletteOf converts an image palette into a fixed palette. Missing entries are black.
func PaletteOf(cp color.Palette) video.Palette {
	var p video.Palette
	for i, c := range cp {
		if i >= video.PaletteSize {
			break
		}
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		p[i] = video.Color{R: rgba.R, G: rgba.G, B: rgba.B}
	}
	return p
}
