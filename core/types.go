package core

import (
	"fmt"
	"strconv"
	"strings"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
	ColorGray   = Color{0.6, 0.6, 0.6, 1}
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (the leading # is optional).
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float32(v>>24&0xff) / 255,
		G: float32(v>>16&0xff) / 255,
		B: float32(v>>8&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil
}

// RGBA8 converts the color to 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return channel8(c.R), channel8(c.G), channel8(c.B), channel8(c.A)
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func channel8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

type Rect struct {
	X, Y, Width, Height float32
}

// Bottom returns the y coordinate just below the rectangle.
func (r Rect) Bottom() float32 { return r.Y + r.Height }
