package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

// SVG is a Surface that records drawing calls as SVG elements.
type SVG struct {
	width, height int
	body          strings.Builder
}

// NewSVG starts an empty width by height document.
func NewSVG(width, height int) *SVG {
	return &SVG{width: width, height: height}
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Clear discards everything drawn so far and paints the background.
func (s *SVG) Clear(c color.RGBA) {
	s.body.Reset()
	s.body.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, rgb(c)))
}

func (s *SVG) DrawLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	s.body.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%g"/>
`, x0, y0, x1, y1, rgb(c), width))
}

func (s *SVG) FillCircle(cx, cy, r float64, c color.RGBA) {
	s.body.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%g" fill="%s"/>
`, cx, cy, r, rgb(c)))
}

func (s *SVG) FillRect(x, y, w, h float64, c color.RGBA) {
	s.body.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%g" height="%g" fill="%s"/>
`, x, y, w, h, rgb(c)))
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
`, s.width, s.height, s.width, s.height))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
