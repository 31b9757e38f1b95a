// Package glyph rasterises the fixed 7x13 bitmap font shared by the
// overlay backends.
package glyph

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII, the range the atlas holds.
const (
	First = ' '
	Last  = '~'
)

var Face = basicfont.Face7x13

// Advance and Height are the cell size of one glyph in pixels.
var (
	Advance = Face.Advance
	Height  = Face.Height
)

// Atlas is a single-row alpha texture of every printable ASCII glyph.
type Atlas struct {
	Image *image.Alpha
	count int
}

func NewAtlas() *Atlas {
	count := int(Last-First) + 1
	img := image.NewAlpha(image.Rect(0, 0, count*Advance, Height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: Face,
	}
	for i := 0; i < count; i++ {
		d.Dot = fixed.P(i*Advance, Face.Ascent)
		d.DrawString(string(rune(First + i)))
	}
	return &Atlas{Image: img, count: count}
}

// UV returns the texture coordinates of r's cell. ok is false for runes
// outside the atlas.
func (a *Atlas) UV(r rune) (u0, v0, u1, v1 float32, ok bool) {
	if r < First || r > Last {
		return 0, 0, 0, 0, false
	}
	i := float32(r - First)
	n := float32(a.count)
	return i / n, 0, (i + 1) / n, 1, true
}

// Measure returns the pixel size of a single line of text at scale 1.
func Measure(text string) (w, h int) {
	return font.MeasureString(Face, text).Ceil(), Height
}

// Draw renders text onto dst with its top-left corner at (x, y).
func Draw(dst draw.Image, text string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: Face,
		Dot:  fixed.P(x, y+Face.Ascent),
	}
	d.DrawString(text)
}
