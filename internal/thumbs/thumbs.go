// Package thumbs prepares the item panel thumbnails: decoded, cover-cropped to the panel
// size, or replaced by a generated placeholder when the image cannot be read.
package thumbs

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/webp"
)

// Panel thumbnail size: the panel width by the panel height minus the id strip.
const (
	Width  = 80
	Height = 44
)

var (
	// Background is the placeholder fill (deep mocha).
	Background = color.RGBA{0x3b, 0x2f, 0x2f, 0xff}
	// Ink is the placeholder text color.
	Ink = color.RGBA{0xc4, 0xa4, 0x84, 0xff}
)

// Warner receives decode failures.
type Warner interface {
	Warn(format string, args ...any)
}

// Load decodes the image at path (jpeg, png, webp or tga) and cover-fits it to w×h.
func Load(path string, w, h int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("thumbs: %w", err)
	}
	defer f.Close()
	img, err := decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("thumbs: decode %s: %w", path, err)
	}
	return Cover(img, w, h), nil
}

// decode sniffs png, jpeg and webp by their magic bytes and treats anything else with a
// .tga extension as TGA. The tga package registers an empty magic string, so
// image.Decode would hand it every file.
func decode(f *os.File, path string) (image.Image, error) {
	head := make([]byte, 12)
	n, _ := io.ReadFull(f, head)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	head = head[:n]
	switch {
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")):
		return png.Decode(f)
	case bytes.HasPrefix(head, []byte("\xff\xd8")):
		return jpeg.Decode(f)
	case n == 12 && string(head[:4]) == "RIFF" && string(head[8:]) == "WEBP":
		return webp.Decode(f)
	case strings.EqualFold(filepath.Ext(path), ".tga"):
		return tga.Decode(f)
	}
	return nil, image.ErrFormat
}

// LoadOrPlaceholder returns the thumbnail for path, or a placeholder labelled text when
// it cannot be loaded. The bool reports whether the real image was used.
func LoadOrPlaceholder(path string, w, h int, text string, log Warner) (*image.RGBA, bool) {
	img, err := Load(path, w, h)
	if err == nil {
		return img, true
	}
	if log != nil {
		log.Warn("thumbs: using placeholder for %s: %v", text, err)
	}
	return Placeholder(w, h, text), false
}

// Cover scales src so it fills w×h and crops the overflow evenly from both sides.
func Cover(src image.Image, w, h int) *image.RGBA {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 || w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}
	scale := max(float64(w)/float64(sw), float64(h)/float64(sh))
	rw := max(w, int(float64(sw)*scale+0.5))
	rh := max(h, int(float64(sh)*scale+0.5))
	resized := transform.Resize(src, rw, rh, transform.Linear)

	x0 := (rw - w) / 2
	y0 := (rh - h) / 2
	return transform.Crop(resized, image.Rect(x0, y0, x0+w, y0+h))
}

// Placeholder renders text centered on the mocha background.
func Placeholder(w, h int, text string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{Background}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(Ink), Face: face}
	tw := d.MeasureString(text).Ceil()
	m := face.Metrics()
	th := (m.Ascent + m.Descent).Ceil()
	x := (w - tw) / 2
	y := (h-th)/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
	return img
}
