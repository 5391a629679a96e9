package fibtree

import "fmt"

// Tree owns a flat arena of branches. Branches of the leaf level come first
// and the trunk is last; level p holds BranchCount(p) branches.
type Tree struct {
	x, y     float64
	levels   int
	branches []Branch
}

// New grows a tree rooted at (x, y). Every random choice is drawn from rng,
// so a seeded source yields the same tree every time.
func New(x, y float64, levels int, rng Rand) (*Tree, error) {
	if levels < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLevels, levels)
	}

	t := &Tree{
		x:        x,
		y:        y,
		levels:   levels,
		branches: make([]Branch, 0, TotalBranches(levels)),
	}
	t.allocate(rng)
	t.adoptOrphans()
	widths := t.subtreeWidths()
	t.connect(widths, rng)
	t.shade()
	return t, nil
}

// Levels returns the number of levels, trunk included.
func (t *Tree) Levels() int { return t.levels }

// Len returns the number of branches.
func (t *Tree) Len() int { return len(t.branches) }

// Root returns the base of the trunk.
func (t *Tree) Root() (x, y float64) { return t.x, t.y }

// Branch returns a copy of the branch at index i.
func (t *Tree) Branch(i int) Branch { return t.branches[i] }

// Trunk returns a copy of the trunk.
func (t *Tree) Trunk() Branch { return t.branches[len(t.branches)-1] }

// Branches returns a copy of the arena in stored order.
func (t *Tree) Branches() []Branch {
	out := make([]Branch, len(t.branches))
	copy(out, t.branches)
	return out
}

// FirstIndex returns where the given level starts in the arena. Thinner
// levels are stored before thicker ones.
func (t *Tree) FirstIndex(level int) int {
	idx := 0
	for l := t.levels; l > level; l-- {
		idx += BranchCount(l)
	}
	return idx
}

// Span returns the half-open index range [first, end) of a level.
func (t *Tree) Span(level int) (first, end int) {
	first = t.FirstIndex(level)
	return first, first + BranchCount(level)
}

// LevelOf returns the level of the branch at index i.
func (t *Tree) LevelOf(i int) int {
	end := 0
	for l := t.levels; l >= 1; l-- {
		end += BranchCount(l)
		if i < end {
			return l
		}
	}
	return 0
}

// Orphans counts the parentless branches at a level. After construction it
// is zero for every level except the trunk.
func (t *Tree) Orphans(level int) int {
	n := 0
	first, end := t.Span(level)
	for i := first; i < end; i++ {
		if t.branches[i].Parent == None {
			n++
		}
	}
	return n
}

// allocate creates the branches from the leaf level down to the trunk. Each
// new non-leaf branch adopts the first still-parentless branch of the level
// above it on a random side.
func (t *Tree) allocate(rng Rand) {
	for level := t.levels; level >= 1; level-- {
		for n := BranchCount(level); n > 0; n-- {
			idx := len(t.branches)
			t.branches = append(t.branches, NewBranch(0, 0, 0))
			if level == t.levels {
				continue
			}

			right := rng.Intn(2) == 0
			child := t.firstParentless(level + 1)
			if child == None {
				continue
			}
			if right {
				t.branches[idx].Right = child
			} else {
				t.branches[idx].Left = child
			}
			t.branches[child].Parent = idx
		}
	}
}

func (t *Tree) firstParentless(level int) int {
	first, end := t.Span(level)
	for i := first; i < end; i++ {
		if t.branches[i].Parent == None {
			return i
		}
	}
	return None
}

// adoptOrphans gives every remaining parentless branch above the trunk a
// parent one level down, preferring a free left slot.
func (t *Tree) adoptOrphans() {
	for level := 2; level <= t.levels; level++ {
		first, end := t.Span(level)
		for i := first; i < end; i++ {
			if t.branches[i].Parent != None {
				continue
			}
			if p := t.parentMissing(level-1, true); p != None {
				t.branches[p].Left = i
				t.branches[i].Parent = p
			} else if p := t.parentMissing(level-1, false); p != None {
				t.branches[p].Right = i
				t.branches[i].Parent = p
			}
		}
	}
}

// parentMissing returns the highest-indexed branch at level whose left (or
// right) child slot is empty.
func (t *Tree) parentMissing(level int, left bool) int {
	found := None
	first, end := t.Span(level)
	for i := first; i < end; i++ {
		slot := t.branches[i].Right
		if left {
			slot = t.branches[i].Left
		}
		if slot == None {
			found = i
		}
	}
	return found
}

// subtreeWidths sums child widths bottom-up. Children always precede their
// parent in the arena, so one forward pass is enough.
func (t *Tree) subtreeWidths() []int {
	widths := make([]int, len(t.branches))
	for i, b := range t.branches {
		w := 0
		if b.Left != None {
			w += widths[b.Left]
		}
		if b.Right != None {
			w += widths[b.Right]
		}
		if w == 0 {
			w = 1
		}
		widths[i] = w
	}
	return widths
}

// connect chains every branch onto its parent's end point, from the trunk
// outwards, and leans it by a random angle that widens with depth.
func (t *Tree) connect(widths []int, rng Rand) {
	trunk := &t.branches[len(t.branches)-1]
	trunk.MoveTo(t.x, t.y)
	trunk.SetAngle(0)
	trunk.width = BranchCount(t.levels)

	for level := 2; level <= t.levels; level++ {
		first, end := t.Span(level)
		for i := first; i < end; i++ {
			b := &t.branches[i]
			parent := t.branches[b.Parent]
			b.MoveTo(parent.endX, parent.endY)
			b.width = widths[i]

			angle := float64(rng.Intn(25) + 4*level)
			switch i {
			case parent.Left:
				b.SetAngle(-angle)
			case parent.Right:
				b.SetAngle(angle)
			}
		}
	}
}

// shade lightens each level above the trunk once per level number, so the
// outer twigs end up palest.
func (t *Tree) shade() {
	for level := 2; level <= t.levels; level++ {
		first, end := t.Span(level)
		for i := first; i < end; i++ {
			for n := 0; n < level; n++ {
				t.branches[i].Lighten()
			}
		}
	}
}

// Render draws every branch once in stored order, without foliage.
func (t *Tree) Render(s Surface) {
	for _, b := range t.branches {
		b.Render(s)
	}
}

// leafOffsets surround a branch tip with five clusters.
var leafOffsets = [5][2]float64{{0, 0}, {10, 0}, {-10, 0}, {0, -10}, {0, 10}}

// RenderUpToLevel draws levels 1 through n. Branches on the two outermost
// levels also get foliage around their tips. Values of n above the level
// count draw the whole tree.
func (t *Tree) RenderUpToLevel(s Surface, n int) {
	if n > t.levels {
		n = t.levels
	}
	for level := 1; level <= n; level++ {
		leafy := level == t.levels || level == t.levels-1
		first, end := t.Span(level)
		for i := first; i < end; i++ {
			b := t.branches[i]
			b.Render(s)
			if !leafy {
				continue
			}
			for _, off := range leafOffsets {
				b.RenderLeafCluster(s, b.endX+off[0], b.endY+off[1])
			}
		}
	}
}
