package backend

import (
	"fmt"

	"github.com/valerio/go-jazz/jazz/video"
)

// CopyTable writes colors into table starting at first. It is the shared
// bounds check for SetPaletteTable implementations.
func CopyTable(table *video.Palette, colors []video.Color, first int) error {
	if first < 0 || first+len(colors) > video.PaletteSize {
		return fmt.Errorf("palette range [%d, %d) outside table", first, first+len(colors))
	}
	copy(table[first:], colors)
	return nil
}
