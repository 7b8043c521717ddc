package display

import "fmt"

// Screen geometry constants
const (
	// BaseWidth is the width of the VGA screen the assets were drawn for
	BaseWidth = 320
	// BaseHeight is the height of the VGA screen the assets were drawn for
	BaseHeight = 200
	// MaxScreenWidth caps the resolution reported by backends
	MaxScreenWidth = 3200
	// MaxScreenHeight caps the resolution reported by backends
	MaxScreenHeight = 2400
)

// Mode selects how frames reach the backend. It is chosen once, when the
// display is created.
type Mode int

const (
	// EmulatedTrueColor remaps every pixel through the palette each frame.
	EmulatedTrueColor Mode = iota
	// DirectPalette hands indexed frames to a backend that owns a palette table.
	DirectPalette
	// FixedResolution emulates the palette on a screen pinned to 320×200.
	FixedResolution
)

func (m Mode) String() string {
	switch m {
	case EmulatedTrueColor:
		return "emulated"
	case DirectPalette:
		return "direct"
	case FixedResolution:
		return "fixed"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(name string) (Mode, error) {
	for _, m := range []Mode{EmulatedTrueColor, DirectPalette, FixedResolution} {
		if m.String() == name {
			return m, nil
		}
	}
	return EmulatedTrueColor, fmt.Errorf("unknown display mode %q", name)
}
