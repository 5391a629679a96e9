package raster

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/fibtree/internal/fibtree"
)

var (
	bg  = color.RGBA{0, 0, 0, 255}
	ink = color.RGBA{200, 100, 50, 255}
)

func assertColor(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2)
	assert.InDelta(t, want.G, got.G, 2)
	assert.InDelta(t, want.B, got.B, 2)
}

func TestNew_Scale(t *testing.T) {
	s := New(360, 450, 2)
	b := s.Image().Bounds()
	assert.Equal(t, 720, b.Dx())
	assert.Equal(t, 900, b.Dy())

	s = New(10, 10, 0)
	assert.Equal(t, 10, s.Image().Bounds().Dx())
}

func TestClear(t *testing.T) {
	s := New(20, 20, 1)
	s.Clear(ink)
	assert.Equal(t, ink, s.Image().RGBAAt(0, 0))
	assert.Equal(t, ink, s.Image().RGBAAt(19, 19))
}

func TestDrawLine(t *testing.T) {
	s := New(50, 50, 1)
	s.Clear(bg)
	s.DrawLine(10, 40, 10, 10, 4, ink)

	assertColor(t, ink, s.Image().RGBAAt(10, 25))
	assert.Equal(t, bg, s.Image().RGBAAt(20, 25))
	assert.Equal(t, bg, s.Image().RGBAAt(10, 45))

	before := s.Image().RGBAAt(30, 30)
	s.DrawLine(30, 30, 30, 30, 4, ink)
	assert.Equal(t, before, s.Image().RGBAAt(30, 30), "zero-length line draws nothing")
}

func TestFillCircle(t *testing.T) {
	s := New(40, 40, 2)
	s.Clear(bg)
	s.FillCircle(20, 20, 5, ink)

	assertColor(t, ink, s.Image().RGBAAt(40, 40))
	assertColor(t, ink, s.Image().RGBAAt(40, 32))
	assert.Equal(t, bg, s.Image().RGBAAt(40, 25))
	assert.Equal(t, bg, s.Image().RGBAAt(54, 54))
}

func TestFillRect(t *testing.T) {
	s := New(10, 10, 3)
	s.Clear(bg)
	s.FillRect(2, 2, 1, 1, ink)

	assert.Equal(t, ink, s.Image().RGBAAt(6, 6))
	assert.Equal(t, ink, s.Image().RGBAAt(8, 8))
	assert.Equal(t, bg, s.Image().RGBAAt(9, 9))

	s.FillRect(-5, -5, 1, 1, ink)
	s.FillRect(50, 50, 1, 1, ink)
}

func TestRenderTree(t *testing.T) {
	tree, err := fibtree.New(180, 380, 6, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	s := New(360, 450, 1)
	s.Clear(bg)
	tree.RenderUpToLevel(s, tree.Levels())

	trunk := tree.Trunk()
	assertColor(t, trunk.Color().RGBA(), s.Image().RGBAAt(180, 360))

	greens := 0
	b := s.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := s.Image().RGBAAt(x, y)
			if c == fibtree.LeafLight || c == fibtree.LeafDark {
				greens++
			}
		}
	}
	assert.Greater(t, greens, 100)
}

func TestResize(t *testing.T) {
	s := New(20, 20, 4)
	s.Clear(ink)
	out := Resize(s.Image(), 20, 20)
	require.Equal(t, 20, out.Bounds().Dx())
	assertColor(t, ink, out.RGBAAt(10, 10))
}
