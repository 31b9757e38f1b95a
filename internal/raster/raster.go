// Package raster draws the overlay into an in-memory RGBA image, for
// snapshots and tests where no OpenGL context exists.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"

	"debug-overlay/core"
	"debug-overlay/internal/glyph"
	"debug-overlay/math"
)

// Canvas implements renderer.Backend on top of an *image.RGBA.
type Canvas struct {
	img *image.RGBA
	gc  *drawing.RasterGraphicContext

	Background core.Color
	LineWidth  float64
}

func NewCanvas() *Canvas {
	return &Canvas{
		Background: core.ColorBlack,
		LineWidth:  1,
	}
}

// BeginFrame allocates a new image when the size changed and clears it.
func (c *Canvas) BeginFrame(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if c.img == nil || c.img.Bounds().Dx() != width || c.img.Bounds().Dy() != height {
		c.img = image.NewRGBA(image.Rect(0, 0, width, height))
		c.gc = nil
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(toDrawing(c.Background)), image.Point{}, draw.Src)
}

func (c *Canvas) context() *drawing.RasterGraphicContext {
	if c.gc == nil {
		gc, err := drawing.NewRasterGraphicContext(c.img)
		if err != nil {
			// only fails for non-RGBA images
			panic(fmt.Sprintf("raster: %v", err))
		}
		c.gc = gc
	}
	return c.gc
}

func (c *Canvas) DrawRect(r core.Rect, col core.Color) {
	if c.img == nil {
		return
	}
	gc := c.context()
	gc.SetFillColor(toDrawing(col))
	x0, y0 := float64(r.X), float64(r.Y)
	x1, y1 := float64(r.X+r.Width), float64(r.Bottom())
	gc.MoveTo(x0, y0)
	gc.LineTo(x1, y0)
	gc.LineTo(x1, y1)
	gc.LineTo(x0, y1)
	gc.Close()
	gc.Fill()
}

func (c *Canvas) DrawLines(points []math.Vec2, col core.Color) {
	if c.img == nil || len(points) < 2 {
		return
	}
	gc := c.context()
	gc.SetStrokeColor(toDrawing(col))
	gc.SetLineWidth(c.LineWidth)
	gc.MoveTo(float64(points[0].X), float64(points[0].Y))
	for _, p := range points[1:] {
		gc.LineTo(float64(p.X), float64(p.Y))
	}
	gc.Stroke()
}

// DrawText draws text with the 7x13 font. Scales other than 1 are drawn
// into a scratch image and resized with nearest-neighbour sampling.
func (c *Canvas) DrawText(text string, x, y, scale float32, col core.Color) {
	if c.img == nil || text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	if scale == 1 || scale <= 0 {
		for i, line := range lines {
			glyph.Draw(c.img, line, int(x), int(y)+i*glyph.Height, toDrawing(col))
		}
		return
	}

	w := 0
	for _, line := range lines {
		if lw, _ := glyph.Measure(line); lw > w {
			w = lw
		}
	}
	h := len(lines) * glyph.Height
	if w == 0 {
		return
	}
	scratch := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, line := range lines {
		glyph.Draw(scratch, line, 0, i*glyph.Height, toDrawing(col))
	}
	dst := image.Rect(int(x), int(y), int(x+float32(w)*scale), int(y+float32(h)*scale))
	xdraw.NearestNeighbor.Scale(c.img, dst, scratch, scratch.Bounds(), xdraw.Over, nil)
}

func (c *Canvas) EndFrame() error { return nil }

// Image returns the last drawn frame. It is nil before the first frame.
func (c *Canvas) Image() *image.RGBA { return c.img }

// WritePNG encodes the last drawn frame.
func (c *Canvas) WritePNG(w io.Writer) error {
	if c.img == nil {
		return fmt.Errorf("raster: no frame drawn")
	}
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toDrawing(c core.Color) drawing.Color {
	r, g, b, a := c.RGBA8()
	return drawing.Color{R: r, G: g, B: b, A: a}
}
