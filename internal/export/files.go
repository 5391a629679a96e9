// Package export writes rendered trees to image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat indicates an output extension with no encoder.
var ErrUnsupportedFormat = errors.New("export: unsupported output format")

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatSVG  Format = "svg"
	FormatGIF  Format = "gif"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatPNG, FormatWebP, FormatSVG, FormatGIF:
		return Format(ext), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// EncodeImage writes a still image as PNG or WebP.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatGIF:
		return gif.Encode(w, paletted(img), nil)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// WriteImage encodes img to path, choosing the encoder by extension.
func WriteImage(path string, img image.Image) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	if f == FormatSVG {
		return fmt.Errorf("%w: raster image to svg", ErrUnsupportedFormat)
	}
	return writeFile(path, func(w io.Writer) error { return EncodeImage(w, img, f) })
}

// WriteSVG saves a recorded SVG document.
func WriteSVG(path string, s *SVG) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := s.WriteTo(w)
		return err
	})
}

// EncodeAnimation writes frames as a looping GIF with a fixed delay.
func EncodeAnimation(w io.Writer, frames []image.Image, delay time.Duration) error {
	if len(frames) == 0 {
		return errors.New("export: no frames to encode")
	}
	cs := int(delay / (10 * time.Millisecond))
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, paletted(frame))
		anim.Delay = append(anim.Delay, cs)
	}
	return gif.EncodeAll(w, &anim)
}

// WriteAnimation saves frames as a GIF file.
func WriteAnimation(path string, frames []image.Image, delay time.Duration) error {
	return writeFile(path, func(w io.Writer) error { return EncodeAnimation(w, frames, delay) })
}

// paletted dithers img onto the web-safe palette.
func paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.WebSafe)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return f.Close()
}
