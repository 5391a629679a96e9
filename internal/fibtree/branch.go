package fibtree

import "math"

const (
	// BranchLength is the fixed length of every branch in scene units.
	BranchLength = 40.0

	// None marks an absent parent or child link.
	None = -1
)

// Branch is a single straight segment of a tree. Its end point is always the
// projection of its origin along its angle, measured in degrees from
// vertical: positive leans right, negative leans left.
type Branch struct {
	x, y       float64
	endX, endY float64
	angle      float64
	width      int
	color      Color

	// Parent, Left and Right index into the owning tree's branches, or
	// hold None.
	Parent, Left, Right int
}

// NewBranch returns an unlinked branch at (x, y) with the default width and
// bark color.
func NewBranch(x, y, angle float64) Branch {
	b := Branch{
		x:      x,
		y:      y,
		angle:  angle,
		width:  1,
		color:  BarkColor,
		Parent: None,
		Left:   None,
		Right:  None,
	}
	b.updateEnd()
	return b
}

// SetAngle changes the lean of the branch and moves its end point.
func (b *Branch) SetAngle(angle float64) {
	b.angle = angle
	b.updateEnd()
}

// MoveTo relocates the origin, keeping length and angle.
func (b *Branch) MoveTo(x, y float64) {
	b.x, b.y = x, y
	b.updateEnd()
}

// SetColor replaces the branch color. Channels are clamped to [0, 255].
func (b *Branch) SetColor(r, g, bl int) {
	b.color = Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(bl)}
}

// Lighten moves every channel one step towards white.
func (b *Branch) Lighten() {
	b.color = b.color.lighter()
}

// updateEnd treats the angle as the corner between the vertical leg and the
// branch, with the branch as hypotenuse.
func (b *Branch) updateEnd() {
	rad := b.angle * math.Pi / 180
	b.endX = b.x + BranchLength*math.Sin(rad)
	b.endY = b.y - BranchLength*math.Cos(rad)
}

// Origin returns the point the branch grows from.
func (b Branch) Origin() (x, y float64) { return b.x, b.y }

// End returns the tip, where children attach.
func (b Branch) End() (x, y float64) { return b.endX, b.endY }

// Angle returns the lean in degrees from vertical.
func (b Branch) Angle() float64 { return b.angle }

// Width returns the stroke width, the number of leaf tips above the branch.
func (b Branch) Width() int { return b.width }

// Color returns the current bark color.
func (b Branch) Color() Color { return b.color }

// HasChild reports whether either child link is set.
func (b Branch) HasChild() bool {
	return b.Left != None || b.Right != None
}

// Render strokes the branch and, for branches wider than one unit, caps the
// joint with a disc so children meet it cleanly.
func (b Branch) Render(s Surface) {
	c := b.color.RGBA()
	w := float64(b.width)
	s.DrawLine(b.x, b.y, b.endX, b.endY, w, c)
	if b.width > 1 {
		s.FillCircle(b.endX, b.endY-1, w/2, c)
	}
}

// clusterOffsets places sixteen leaves around a cluster origin.
var clusterOffsets = [16][2]float64{
	{0, 0}, {4, 0}, {-4, 0},
	{0, 3}, {4, -3}, {-4, 3}, {-4, -4},
	{7, 3}, {8, -3}, {-8, 3},
	{7, 8}, {8, -8}, {-8, 8},
	{-7, 8}, {-8, -8}, {8, 8},
}

// leafPixels is a 5x5 leaf. The third value marks the darker vein.
var leafPixels = [...][3]int{
	{1, 0, 0}, {2, 0, 0}, {3, 0, 0},
	{0, 1, 0}, {1, 1, 0}, {2, 1, 0}, {3, 1, 0}, {4, 1, 0},
	{0, 2, 1}, {1, 2, 1}, {2, 2, 1}, {3, 2, 0}, {4, 2, 0},
	{0, 3, 0}, {1, 3, 0}, {2, 3, 0}, {3, 3, 0}, {4, 3, 0},
	{1, 4, 0}, {2, 4, 0}, {3, 4, 0},
}

// RenderLeafCluster draws a clump of sixteen leaves near (x, y). It does not
// depend on the branch state.
func (b Branch) RenderLeafCluster(s Surface, x, y float64) {
	cx := x - 2
	for _, off := range clusterOffsets {
		renderLeaf(s, cx+off[0], y+off[1])
	}
}

func renderLeaf(s Surface, x, y float64) {
	for _, p := range leafPixels {
		c := LeafLight
		if p[2] == 1 {
			c = LeafDark
		}
		s.FillRect(x+float64(p[0]), y+float64(p[1]), 1, 1, c)
	}
}
