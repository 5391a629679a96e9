// Package raster draws trees into an anti-aliased RGBA image.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// Surface rasterizes scene coordinates into an image that is scale times
// larger than the scene.
type Surface struct {
	img   *image.RGBA
	scale float64
	z     *vector.Rasterizer
}

// New allocates a surface for a width by height scene.
func New(width, height int, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(height) * scale))
	return &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		z:     vector.NewRasterizer(w, h),
	}
}

// Image returns the backing image. It is shared, not copied.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Surface) pt(x, y float64) (float32, float32) {
	return float32(x * s.scale), float32(y * s.scale)
}

func (s *Surface) fill(c color.RGBA) {
	b := s.img.Bounds()
	s.z.Draw(s.img, b, image.NewUniform(c), image.Point{})
	s.z.Reset(b.Dx(), b.Dy())
}

// DrawLine fills the quad swept by a segment of the given width. Butt caps
// are enough since joints are covered by FillCircle.
func (s *Surface) DrawLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	half := math.Max(width, 1) / 2
	nx, ny := -dy/l*half, dx/l*half

	s.z.MoveTo(s.pt(x0+nx, y0+ny))
	s.z.LineTo(s.pt(x1+nx, y1+ny))
	s.z.LineTo(s.pt(x1-nx, y1-ny))
	s.z.LineTo(s.pt(x0-nx, y0-ny))
	s.z.ClosePath()
	s.fill(c)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	k := r * kappa
	s.z.MoveTo(s.pt(cx+r, cy))
	s.cubic(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.cubic(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.cubic(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.cubic(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.z.ClosePath()
	s.fill(c)
}

func (s *Surface) cubic(bx, by, cx, cy, dx, dy float64) {
	b0, b1 := s.pt(bx, by)
	c0, c1 := s.pt(cx, cy)
	d0, d1 := s.pt(dx, dy)
	s.z.CubeTo(b0, b1, c0, c1, d0, d1)
}

// FillRect snaps to whole pixels so unit leaf pixels stay crisp.
func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	x0 := int(math.Round(x * s.scale))
	y0 := int(math.Round(y * s.scale))
	x1 := max(int(math.Round((x+w)*s.scale)), x0+1)
	y1 := max(int(math.Round((y+h)*s.scale)), y0+1)
	r := image.Rect(x0, y0, x1, y1).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// Resize scales img to width by height with Catmull-Rom filtering.
func Resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
