package video

import (
	"fmt"
	"image"
	"image/color"
)

// IndexedImage is a grid of palette indices. The pixel arena belongs to the
// image; the palette is shared and only referenced.
type IndexedImage struct {
	width   int
	height  int
	pix     []uint8
	palette *Palette
}

// NewIndexedImage creates a blank image that reads its colors from pal.
func NewIndexedImage(width, height int, pal *Palette) *IndexedImage {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &IndexedImage{
		width:   width,
		height:  height,
		pix:     make([]uint8, width*height),
		palette: pal,
	}
}

// NewIndexedImageFrom builds an image from row-major pixel data, which is copied.
func NewIndexedImageFrom(pixels []byte, width, height int, pal *Palette) (*IndexedImage, error) {
	if width < 0 || height < 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("have %d pixels for a %dx%d image", len(pixels), width, height)
	}
	img := NewIndexedImage(width, height, pal)
	copy(img.pix, pixels)
	return img, nil
}

func (m *IndexedImage) Width() int {
	return m.width
}

func (m *IndexedImage) Height() int {
	return m.height
}

// Palette returns the palette the image is interpreted with.
func (m *IndexedImage) Palette() *Palette {
	return m.palette
}

// SetPalette points the image at a different shared palette.
func (m *IndexedImage) SetPalette(pal *Palette) {
	m.palette = pal
}

// Pix exposes the row-major pixel arena. Its length is always Width()*Height().
func (m *IndexedImage) Pix() []uint8 {
	return m.pix
}

// At returns the index at (x, y), or 0 outside the image.
func (m *IndexedImage) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.pix[y*m.width+x]
}

// Set writes an index at (x, y). Writes outside the image are dropped.
func (m *IndexedImage) Set(x, y int, index uint8) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.pix[y*m.width+x] = index
}

// Fill sets every pixel to index.
func (m *IndexedImage) Fill(index uint8) {
	for i := range m.pix {
		m.pix[i] = index
	}
}

// FillRect fills the part of the rectangle that lies inside the image. A
// rectangle without positive width and height is empty.
func (m *IndexedImage) FillRect(x, y, width, height int, index uint8) {
	if width <= 0 || height <= 0 {
		return
	}
	r := image.Rect(x, y, x+width, y+height).Intersect(image.Rect(0, 0, m.width, m.height))
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := m.pix[py*m.width+r.Min.X : py*m.width+r.Max.X]
		for i := range row {
			row[i] = index
		}
	}
}

// ScaleInto replicates every pixel into a factor×factor block of dst. Pixels
// that would land outside dst are dropped.
func (m *IndexedImage) ScaleInto(dst *IndexedImage, factor int) {
	if factor < 1 {
		factor = 1
	}
	for dy := 0; dy < dst.height && dy/factor < m.height; dy++ {
		srcRow := m.pix[(dy/factor)*m.width : (dy/factor+1)*m.width]
		dstRow := dst.pix[dy*dst.width : (dy+1)*dst.width]
		for dx := range dstRow {
			if dx/factor >= m.width {
				break
			}
			dstRow[dx] = srcRow[dx/factor]
		}
	}
}

// Paletted converts the image into an image.Paletted using its palette, or
// the logical palette when it has none.
func (m *IndexedImage) Paletted() *image.Paletted {
	pal := m.palette
	if pal == nil {
		logical := LogicalPalette()
		pal = &logical
	}
	cp := make(color.Palette, PaletteSize)
	for i, c := range pal {
		cp[i] = color.RGBA{c.R, c.G, c.B, 0xFF}
	}
	img := image.NewPaletted(image.Rect(0, 0, m.width, m.height), cp)
	copy(img.Pix, m.pix)
	return img
}
