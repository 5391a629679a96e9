package fibtree_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fibtree/internal/fibtree"
)

const rectsPerBranch = 5 * 16 * 21

// fixedRand returns the same draw every time, capped to the range.
type fixedRand int

func (f fixedRand) Intn(n int) int { return min(int(f), n-1) }

func grow(levels int, seed int64) *fibtree.Tree {
	tree, err := fibtree.New(180, 380, levels, rand.New(rand.NewSource(seed)))
	Expect(err).NotTo(HaveOccurred())
	return tree
}

var _ = Describe("BranchCount", func() {
	It("follows the Fibonacci sequence", func() {
		want := []int{1, 1, 2, 3, 5, 8, 13, 21, 34}
		for i, w := range want {
			Expect(fibtree.BranchCount(i + 1)).To(Equal(w))
		}
	})

	It("has no branches below level one", func() {
		Expect(fibtree.BranchCount(0)).To(BeZero())
		Expect(fibtree.BranchCount(-3)).To(BeZero())
	})

	It("totals the per-level counts", func() {
		Expect(fibtree.TotalBranches(1)).To(Equal(1))
		Expect(fibtree.TotalBranches(3)).To(Equal(4))
		Expect(fibtree.TotalBranches(6)).To(Equal(20))
	})
})

var _ = Describe("New", func() {
	DescribeTable("rejects level counts below one",
		func(levels int) {
			_, err := fibtree.New(0, 0, levels, rand.New(rand.NewSource(1)))
			Expect(errors.Is(err, fibtree.ErrInvalidLevels)).To(BeTrue())
		},
		Entry("zero", 0),
		Entry("negative", -2),
	)

	It("builds a lone trunk for a single level", func() {
		tree := grow(1, 7)
		Expect(tree.Len()).To(Equal(1))
		trunk := tree.Trunk()
		x, y := trunk.Origin()
		Expect(x).To(Equal(180.0))
		Expect(y).To(Equal(380.0))
		Expect(trunk.Angle()).To(BeZero())
		Expect(trunk.Width()).To(Equal(1))
		Expect(trunk.Parent).To(Equal(fibtree.None))
		Expect(trunk.HasChild()).To(BeFalse())
	})

	It("lays out three levels leaves first", func() {
		tree := grow(3, 11)
		Expect(tree.Len()).To(Equal(4))
		Expect(tree.FirstIndex(3)).To(Equal(0))
		Expect(tree.FirstIndex(2)).To(Equal(2))
		Expect(tree.FirstIndex(1)).To(Equal(3))
		Expect(tree.LevelOf(0)).To(Equal(3))
		Expect(tree.LevelOf(1)).To(Equal(3))
		Expect(tree.LevelOf(2)).To(Equal(2))
		Expect(tree.LevelOf(3)).To(Equal(1))

		mid := tree.Branch(2)
		Expect(mid.Left).NotTo(Equal(fibtree.None))
		Expect(mid.Right).NotTo(Equal(fibtree.None))
		Expect(mid.Width()).To(Equal(2))
		Expect(tree.Trunk().Width()).To(Equal(2))
	})

	It("is reproducible for a fixed seed", func() {
		Expect(grow(7, 99).Branches()).To(Equal(grow(7, 99).Branches()))
	})

	// Four levels hold indices 0-2 (level 4), 3-4 (level 3), 5 (level 2)
	// and 6 (trunk).
	It("links the first parentless child and repairs into the last free left slot", func() {
		tree, err := fibtree.New(180, 380, 4, fixedRand(0))
		Expect(err).NotTo(HaveOccurred())

		By("linking every new child on the right")
		Expect(tree.Branch(3).Right).To(Equal(0))
		Expect(tree.Branch(4).Right).To(Equal(1))
		Expect(tree.Branch(5).Right).To(Equal(3))
		Expect(tree.Trunk().Right).To(Equal(5))
		Expect(tree.Trunk().Left).To(Equal(fibtree.None))

		By("adopting orphans into the highest free left slot")
		Expect(tree.Branch(5).Left).To(Equal(4))
		Expect(tree.Branch(4).Left).To(Equal(2))
		Expect(tree.Branch(3).Left).To(Equal(fibtree.None))
		Expect(tree.Branch(2).Parent).To(Equal(4))

		By("leaning right children right and left children left")
		Expect(tree.Branch(5).Angle()).To(Equal(8.0))
		Expect(tree.Branch(3).Angle()).To(Equal(12.0))
		Expect(tree.Branch(4).Angle()).To(Equal(-12.0))
		Expect(tree.Branch(2).Angle()).To(Equal(-16.0))
		Expect(tree.Branch(0).Angle()).To(Equal(16.0))
	})

	It("falls back to the last free right slot when no left slot is free", func() {
		tree, err := fibtree.New(180, 380, 4, fixedRand(1))
		Expect(err).NotTo(HaveOccurred())

		Expect(tree.Branch(3).Left).To(Equal(0))
		Expect(tree.Branch(4).Left).To(Equal(1))
		Expect(tree.Branch(5).Left).To(Equal(3))
		Expect(tree.Trunk().Left).To(Equal(5))

		Expect(tree.Branch(5).Right).To(Equal(4))
		Expect(tree.Branch(4).Right).To(Equal(2))
		Expect(tree.Branch(3).Right).To(Equal(fibtree.None))
		Expect(tree.Branch(4).Width()).To(Equal(2))
		Expect(tree.Branch(5).Width()).To(Equal(3))
	})
})

var _ = Describe("constructed trees", func() {
	for levels := 1; levels <= 9; levels++ {
		for seed := int64(1); seed <= 25; seed++ {
			levels, seed := levels, seed
			It("hold every invariant", func() {
				tree := grow(levels, seed)
				branches := tree.Branches()
				Expect(branches).To(HaveLen(fibtree.TotalBranches(levels)))

				for level := 1; level <= levels; level++ {
					first, end := tree.Span(level)
					Expect(end - first).To(Equal(fibtree.BranchCount(level)))
				}

				By("leaving no orphans above the trunk")
				for level := 2; level <= levels; level++ {
					Expect(tree.Orphans(level)).To(BeZero())
				}
				Expect(tree.Trunk().Parent).To(Equal(fibtree.None))

				By("giving every inner branch a child")
				leafFirst, leafEnd := tree.Span(levels)
				for i, b := range branches {
					if i >= leafFirst && i < leafEnd {
						Expect(b.HasChild()).To(BeFalse())
						Expect(b.Width()).To(Equal(1))
						continue
					}
					Expect(b.HasChild()).To(BeTrue())
				}

				By("keeping child links injective and reciprocal")
				seenLeft := map[int]bool{}
				seenRight := map[int]bool{}
				for i, b := range branches {
					if b.Left != fibtree.None {
						Expect(seenLeft[b.Left]).To(BeFalse())
						seenLeft[b.Left] = true
						Expect(branches[b.Left].Parent).To(Equal(i))
					}
					if b.Right != fibtree.None {
						Expect(seenRight[b.Right]).To(BeFalse())
						seenRight[b.Right] = true
						Expect(branches[b.Right].Parent).To(Equal(i))
					}
					if b.Parent != fibtree.None {
						p := branches[b.Parent]
						Expect(p.Left == i || p.Right == i).To(BeTrue())
						Expect(tree.LevelOf(b.Parent)).To(Equal(tree.LevelOf(i) - 1))
					}
				}

				By("summing widths from the children")
				Expect(tree.Trunk().Width()).To(Equal(fibtree.BranchCount(levels)))
				for _, b := range branches[:len(branches)-1] {
					if !b.HasChild() {
						continue
					}
					sum := 0
					if b.Left != fibtree.None {
						sum += branches[b.Left].Width()
					}
					if b.Right != fibtree.None {
						sum += branches[b.Right].Width()
					}
					Expect(b.Width()).To(Equal(sum))
				}

				By("chaining geometry and shading outwards")
				for i, b := range branches[:len(branches)-1] {
					level := tree.LevelOf(i)
					p := branches[b.Parent]
					px, py := p.End()
					ox, oy := b.Origin()
					Expect(ox).To(BeNumerically("~", px, 1e-9))
					Expect(oy).To(BeNumerically("~", py, 1e-9))

					lean := math.Abs(b.Angle())
					Expect(lean).To(BeNumerically(">=", 4*level))
					Expect(lean).To(BeNumerically("<=", 4*level+24))
					if p.Left == i {
						Expect(b.Angle()).To(BeNumerically("<", 0))
					} else {
						Expect(b.Angle()).To(BeNumerically(">", 0))
					}

					want := fibtree.Color{
						R: min(255, fibtree.BarkColor.R+10*level),
						G: min(255, fibtree.BarkColor.G+10*level),
						B: min(255, fibtree.BarkColor.B+10*level),
					}
					Expect(b.Color()).To(Equal(want))
				}
				Expect(tree.Trunk().Color()).To(Equal(fibtree.BarkColor))
			})
		}
	}
})

var _ = Describe("rendering", func() {
	var tree *fibtree.Tree

	BeforeEach(func() {
		tree = grow(5, 3)
	})

	It("draws every branch once without foliage", func() {
		rec := newRecorder()
		tree.Render(rec)
		Expect(rec.lines).To(HaveLen(tree.Len()))
		Expect(rec.rects).To(BeZero())

		x0, y0 := tree.Branch(0).Origin()
		Expect(rec.lines[0].x0).To(Equal(x0))
		Expect(rec.lines[0].y0).To(Equal(y0))
		Expect(rec.lines[len(rec.lines)-1].width).To(Equal(5.0))
	})

	It("caps wide branches with a disc", func() {
		rec := newRecorder()
		tree.Render(rec)
		wide := 0
		for _, b := range tree.Branches() {
			if b.Width() > 1 {
				wide++
			}
		}
		Expect(rec.circles).To(Equal(wide))
	})

	DescribeTable("draws the inner levels and foliage on the outer two",
		func(n, lines, leafyBranches int) {
			rec := newRecorder()
			tree.RenderUpToLevel(rec, n)
			Expect(rec.lines).To(HaveLen(lines))
			Expect(rec.rects).To(Equal(leafyBranches * rectsPerBranch))
		},
		Entry("nothing", 0, 0, 0),
		Entry("trunk only", 1, 1, 0),
		Entry("three levels", 3, 4, 0),
		Entry("second to last level", 4, 7, 3),
		Entry("whole tree", 5, 12, 8),
		Entry("beyond the tree", 9, 12, 8),
	)

	It("paints leaves in two greens", func() {
		rec := newRecorder()
		tree.RenderUpToLevel(rec, 5)
		Expect(rec.leafPix).To(HaveLen(2))
		Expect(rec.leafPix[fibtree.LeafDark]).To(Equal(8 * 5 * 16 * 3))
	})
})

var _ = Describe("Describe", func() {
	It("lists branches from the trunk outwards", func() {
		tree := grow(4, 5)
		rows := fibtree.Describe(tree)
		Expect(rows).To(HaveLen(tree.Len()))
		Expect(rows[0].Level).To(Equal(1))
		Expect(rows[0].Index).To(Equal(tree.Len() - 1))
		Expect(rows[len(rows)-1].Level).To(Equal(4))
	})

	It("reports the widest branch per level", func() {
		tree := grow(6, 5)
		widths := fibtree.MaxWidths(tree)
		Expect(widths).To(HaveLen(6))
		Expect(widths[0]).To(Equal(8.0))
		Expect(widths[5]).To(Equal(1.0))
		for i := 1; i < len(widths); i++ {
			Expect(widths[i]).To(BeNumerically("<=", widths[i-1]))
		}
	})
})
