package fibtree

import "image/color"

// LightenStep is how much Lighten adds to each channel.
const LightenStep = 10

var (
	// BarkColor is the color every branch starts with.
	BarkColor = Color{R: 110, G: 50, B: 20}

	// LeafLight and LeafDark are the leaf body and vein.
	LeafLight = color.RGBA{55, 155, 55, 255}
	LeafDark  = color.RGBA{25, 105, 25, 255}
)

// Color is an opaque RGB color with channels kept in [0, 255].
type Color struct {
	R, G, B int
}

// RGBA converts c to a fully opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

func (c Color) lighter() Color {
	return Color{
		R: clampChannel(c.R + LightenStep),
		G: clampChannel(c.G + LightenStep),
		B: clampChannel(c.B + LightenStep),
	}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
