package fibtree_test

import "image/color"

type line struct {
	x0, y0, x1, y1, width float64
	c                     color.RGBA
}

// recorder is a Surface that remembers what was drawn.
type recorder struct {
	lines   []line
	circles int
	rects   int
	leafPix map[color.RGBA]int
}

func newRecorder() *recorder {
	return &recorder{leafPix: make(map[color.RGBA]int)}
}

func (r *recorder) DrawLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, width, c})
}

func (r *recorder) FillCircle(cx, cy, rad float64, c color.RGBA) {
	r.circles++
}

func (r *recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.rects++
	r.leafPix[c]++
}
