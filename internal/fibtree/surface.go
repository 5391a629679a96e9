package fibtree

import "image/color"

// Surface is the drawing target for branches and leaves. Coordinates are in
// scene units with y growing downwards.
type Surface interface {
	// DrawLine strokes a straight segment of the given width.
	DrawLine(x0, y0, x1, y1, width float64, c color.RGBA)
	// FillCircle fills a disc of radius r centered at (cx, cy).
	FillCircle(cx, cy, r float64, c color.RGBA)
	// FillRect fills the w by h rectangle whose top-left corner is (x, y).
	FillRect(x, y, w, h float64, c color.RGBA)
}

// Rand is the randomness the tree builder consumes. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}
