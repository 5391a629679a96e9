package fibtree

// Row is a flat, printable view of one branch.
type Row struct {
	Index  int
	Level  int
	Parent int
	Left   int
	Right  int
	Width  int
	Angle  float64
	Color  Color
}

// Describe lists every branch from the trunk outwards, level by level.
func Describe(t *Tree) []Row {
	rows := make([]Row, 0, t.Len())
	for level := 1; level <= t.levels; level++ {
		first, end := t.Span(level)
		for i := first; i < end; i++ {
			b := t.branches[i]
			rows = append(rows, Row{
				Index:  i,
				Level:  level,
				Parent: b.Parent,
				Left:   b.Left,
				Right:  b.Right,
				Width:  b.width,
				Angle:  b.angle,
				Color:  b.color,
			})
		}
	}
	return rows
}

// MaxWidths returns the width of the widest branch on each level, trunk
// first.
func MaxWidths(t *Tree) []float64 {
	out := make([]float64, t.levels)
	for level := 1; level <= t.levels; level++ {
		first, end := t.Span(level)
		for i := first; i < end; i++ {
			if w := float64(t.branches[i].width); w > out[level-1] {
				out[level-1] = w
			}
		}
	}
	return out
}
