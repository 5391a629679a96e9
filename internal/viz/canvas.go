package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid that also implements fibtree.Surface. Scene
// coordinates are mapped onto dots by Fit; each cell keeps the color of the
// last thing drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA

	scale   float64
	offsetX float64
	offsetY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
		scale:  1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Fit scales a sceneW by sceneH scene uniformly onto the dot grid, centered
// horizontally and anchored to the bottom.
func (c *Canvas) Fit(sceneW, sceneH float64) {
	dotsW, dotsH := float64(c.Width*2), float64(c.Height*4)
	c.scale = math.Min(dotsW/sceneW, dotsH/sceneH)
	c.offsetX = (dotsW - sceneW*c.scale) / 2
	c.offsetY = dotsH - sceneH*c.scale
}

// Scale returns dots per scene unit.
func (c *Canvas) Scale() float64 { return c.scale }

func (c *Canvas) toDots(x, y float64) (float64, float64) {
	return x*c.scale + c.offsetX, y*c.scale + c.offsetY
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// SetColor sets a dot and recolors its cell.
func (c *Canvas) SetColor(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	c.Colors[y/4][x/2] = col
}

// Clear empties every cell. Terminal cells keep the theme background, so
// the color is not stored.
func (c *Canvas) Clear(_ color.RGBA) {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// DrawDots draws a line using Bresenham's algorithm
func (c *Canvas) DrawDots(x0, y0, x1, y1 int, col color.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetColor(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLine strokes wide segments as parallel dot lines along the normal.
func (c *Canvas) DrawLine(x0, y0, x1, y1, width float64, col color.RGBA) {
	ax, ay := c.toDots(x0, y0)
	bx, by := c.toDots(x1, y1)
	strokes := max(1, int(math.Round(width*c.scale)))

	l := math.Hypot(bx-ax, by-ay)
	nx, ny := 0.0, 0.0
	if l > 0 {
		nx, ny = -(by-ay)/l, (bx-ax)/l
	}
	for k := 0; k < strokes; k++ {
		off := float64(k) - float64(strokes-1)/2
		c.DrawDots(
			round(ax+nx*off), round(ay+ny*off),
			round(bx+nx*off), round(by+ny*off),
			col)
	}
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	dx, dy := c.toDots(cx, cy)
	rd := r * c.scale
	if rd < 0.5 {
		c.SetColor(round(dx), round(dy), col)
		return
	}
	for y := int(math.Floor(dy - rd)); y <= int(math.Ceil(dy+rd)); y++ {
		for x := int(math.Floor(dx - rd)); x <= int(math.Ceil(dx+rd)); x++ {
			if math.Hypot(float64(x)-dx, float64(y)-dy) <= rd {
				c.SetColor(x, y, col)
			}
		}
	}
}

// FillRect always covers at least one dot, so tiny leaf pixels stay visible.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	ax, ay := c.toDots(x, y)
	bx, by := c.toDots(x+w, y+h)
	x0, y0 := round(ax), round(ay)
	x1, y1 := max(round(bx), x0+1), max(round(by), y0+1)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.SetColor(px, py, col)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the grid with colored cells over the given background. An
// empty background leaves the terminal's own.
func (c *Canvas) Render(bg lipgloss.Color) string {
	base := lipgloss.NewStyle()
	if bg != "" {
		base = base.Background(bg)
	}

	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			style := base
			if cc := c.Colors[i][start]; cc.A != 0 {
				style = style.Foreground(lipgloss.Color(hexColor(int(cc.R), int(cc.G), int(cc.B))))
			}
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func round(v float64) int {
	return int(math.Round(v))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
