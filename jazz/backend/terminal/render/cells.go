package render

// UpperHalfBlock draws the top pixel of a cell as foreground and the bottom
// one as background.
const UpperHalfBlock = '▀'

// FitStep returns the smallest whole sampling step that fits a width×height
// frame into cols×rows cells of two pixels each.
func FitStep(width, height, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 0
	}
	step := 1
	for ceilDiv(width, step) > cols || ceilDiv(ceilDiv(height, step), 2) > rows {
		step++
	}
	return step
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Channels unpacks a 0xRRGGBBAA pixel.
func Channels(pixel uint32) (r, g, b int32) {
	return int32(pixel >> 24 & 0xFF), int32(pixel >> 16 & 0xFF), int32(pixel >> 8 & 0xFF)
}
