package video

import (
	"image"
	"image/color"
)

const (
	BlackColor uint32 = 0x000000FF
	WhiteColor uint32 = 0xFFFFFFFF
)

// FrameBuffer is true-color output, one 0xRRGGBBAA value per pixel.
type FrameBuffer struct {
	width  int
	height int
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) Width() int {
	return fb.width
}

func (fb *FrameBuffer) Height() int {
	return fb.height
}

func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return BlackColor
	}
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, rgba uint32) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	fb.buffer[y*fb.width+x] = rgba
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// Remap converts src through pal into the frame buffer. Both must have the
// same dimensions; extra pixels on either side are ignored.
func (fb *FrameBuffer) Remap(src *IndexedImage, pal *Palette) {
	var lut [PaletteSize]uint32
	for i, c := range pal {
		lut[i] = c.RGBA()
	}

	n := len(fb.buffer)
	if len(src.pix) < n {
		n = len(src.pix)
	}
	for i := 0; i < n; i++ {
		fb.buffer[i] = lut[src.pix[i]]
	}
}

// RGBA converts the frame into an image.RGBA.
func (fb *FrameBuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, p := range fb.buffer {
		img.Pix[i*4] = uint8(p >> 24)
		img.Pix[i*4+1] = uint8(p >> 16)
		img.Pix[i*4+2] = uint8(p >> 8)
		img.Pix[i*4+3] = uint8(p)
	}
	return img
}

// ColorAt unpacks the pixel at (x, y).
func (fb *FrameBuffer) ColorAt(x, y int) color.RGBA {
	p := fb.GetPixel(x, y)
	return color.RGBA{uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)}
}
