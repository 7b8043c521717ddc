package video

import "fmt"

// PaletteSize is the number of entries in every palette.
const PaletteSize = 256

// Color is a palette entry. The legacy formats carry no alpha.
type Color struct {
	R, G, B uint8
}

// RGBA packs the color as 0xRRGGBBAA with full alpha.
func (c Color) RGBA() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | 0xFF
}

// Palette is a fixed table of 256 colors.
type Palette [PaletteSize]Color

// LogicalPalette returns the identity palette, where entry i is gray level i.
func LogicalPalette() Palette {
	var p Palette
	for i := range p {
		v := uint8(i)
		p[i] = Color{v, v, v}
	}
	return p
}

// Depth is the channel precision of palette data on disk.
type Depth int

const (
	// Depth8 stores each channel as a full byte.
	Depth8 Depth = iota
	// Depth6 stores VGA DAC values (0-63) that are widened to 8 bits on load.
	Depth6
)

func (d Depth) expand(v byte) uint8 {
	if d == Depth6 {
		return v<<2 | v>>4
	}
	return v
}

// PaletteFromBytes groups raw RGB triples into a palette starting at entry 0.
// Entries beyond len(raw)/3 are left black.
func PaletteFromBytes(raw []byte, depth Depth) (Palette, error) {
	var p Palette
	if len(raw)%3 != 0 || len(raw) > 3*PaletteSize {
		return p, fmt.Errorf("palette data of %d bytes is not a whole number of entries", len(raw))
	}
	for i := 0; i < len(raw)/3; i++ {
		p[i] = Color{
			R: depth.expand(raw[i*3]),
			G: depth.expand(raw[i*3+1]),
			B: depth.expand(raw[i*3+2]),
		}
	}
	return p, nil
}

// Bytes flattens the palette into RGB triples, narrowing to the given depth.
func (p *Palette) Bytes(depth Depth) []byte {
	out := make([]byte, 0, 3*PaletteSize)
	for _, c := range p {
		if depth == Depth6 {
			out = append(out, c.R>>2, c.G>>2, c.B>>2)
		} else {
			out = append(out, c.R, c.G, c.B)
		}
	}
	return out
}

// Nearest returns the index of the entry closest to c.
func (p *Palette) Nearest(c Color) uint8 {
	best, bestDist := 0, -1
	for i, e := range p {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
			if dist == 0 {
				break
			}
		}
	}
	return uint8(best)
}

// Range returns the sub-slice [first, first+amount) clipped to the palette.
func (p *Palette) Range(first, amount int) []Color {
	if first < 0 {
		amount += first
		first = 0
	}
	if first > PaletteSize {
		first = PaletteSize
	}
	end := first + amount
	if end > PaletteSize {
		end = PaletteSize
	}
	if end < first {
		end = first
	}
	return p[first:end:end]
}
