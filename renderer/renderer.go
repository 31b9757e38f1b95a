package renderer

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"debug-overlay/core"
	"debug-overlay/math"
	"debug-overlay/overlay"
	"debug-overlay/scene"
)

// Glyph metrics of the fixed 7x13 font every backend draws with, at scale 1.
const (
	GlyphWidth = 7
	LineHeight = 13
)

// Backend draws the queued overlay primitives. Coordinates are pixels with
// the origin at the top-left corner and y growing down.
type Backend interface {
	BeginFrame(width, height int)
	DrawRect(r core.Rect, color core.Color)
	DrawLines(points []math.Vec2, color core.Color)
	DrawText(text string, x, y, scale float32, color core.Color)
	EndFrame() error
}

// textCmd is a queued DrawText call, flushed in Present().
type textCmd struct {
	text  string
	x, y  float32
	scale float32
	color core.Color
}

type lineCmd struct {
	points []math.Vec2
	color  core.Color
}

type rectCmd struct {
	rect  core.Rect
	color core.Color
}

// Layout positions the overlay panel on screen.
type Layout struct {
	X, Y        float32
	Width       float32
	Padding     float32
	TextScale   float32
	GraphHeight float32

	Background   core.Color
	TextColor    core.Color
	HeaderColor  core.Color
	DividerColor core.Color
	BoxColor     core.Color
	LabelColor   core.Color
}

func DefaultLayout() Layout {
	return Layout{
		X:            10,
		Y:            10,
		Width:        320,
		Padding:      6,
		TextScale:    1,
		GraphHeight:  60,
		Background:   core.Color{R: 0, G: 0, B: 0, A: 0.6},
		TextColor:    core.ColorWhite,
		HeaderColor:  core.ColorYellow,
		DividerColor: core.ColorGray,
		BoxColor:     core.Color{R: 0.15, G: 0.15, B: 0.15, A: 0.8},
		LabelColor:   core.ColorGray,
	}
}

// OverlayRenderer lays out the scene tree as a panel of category blocks
// and graph boxes. Render rebuilds the command queues, Present flushes
// them to the backend. Present may be called again without Render to
// redraw the same frame.
type OverlayRenderer struct {
	backend Backend
	Scene   *scene.Scene
	Layout  Layout

	width, height int

	rectQueue []rectCmd
	lineQueue []lineCmd
	textQueue []textCmd

	log logrus.FieldLogger
}

func NewOverlayRenderer(backend Backend, s *scene.Scene, log logrus.FieldLogger) *OverlayRenderer {
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "renderer")
	}
	return &OverlayRenderer{
		backend: backend,
		Scene:   s,
		Layout:  DefaultLayout(),
		log:     log,
	}
}

func (r *OverlayRenderer) lineHeight() float32 {
	return LineHeight * r.Layout.TextScale
}

// Render lays out the panel for a width x height target.
func (r *OverlayRenderer) Render(width, height int) {
	r.width, r.height = width, height
	r.rectQueue = r.rectQueue[:0]
	r.lineQueue = r.lineQueue[:0]
	r.textQueue = r.textQueue[:0]

	if r.Scene == nil || !r.Scene.Visible {
		return
	}

	l := r.Layout
	lh := r.lineHeight()
	x := l.X + l.Padding
	inner := l.Width - 2*l.Padding
	y := l.Y + l.Padding

	// background is sized once the content height is known
	r.queueRect(core.Rect{}, l.Background)

	if r.Scene.Empty() {
		r.queueText(scene.EmptyMessage, x, y, l.TextColor)
		y += lh
	}

	for _, cat := range r.Scene.Categories() {
		if !cat.Visible {
			continue
		}
		r.queueText(cat.Name, x, y, l.HeaderColor)
		y += lh

		if cat.Text != "" {
			for _, line := range strings.Split(cat.Text, "\n") {
				r.queueText(line, x, y, l.TextColor)
				y += lh
			}
		}

		graphs := visibleChildren(cat)
		if cat.Text != "" && len(graphs) > 0 {
			y += l.Padding / 2
			r.queueRect(core.Rect{X: x, Y: y, Width: inner, Height: 1}, l.DividerColor)
			y += l.Padding / 2
		}

		for _, g := range graphs {
			r.queueText(GraphTitle(g.Graph), x, y, g.Color)
			y += lh

			box := core.Rect{X: x, Y: y, Width: inner, Height: l.GraphHeight}
			r.queueRect(box, l.BoxColor)
			if pts := GraphPoints(g.Graph, box); pts != nil {
				r.lineQueue = append(r.lineQueue, lineCmd{points: pts, color: g.Color})
			}
			r.queueText(formatBound(g.Graph.Max), box.X+2, box.Y+1, l.LabelColor)
			r.queueText(formatBound(g.Graph.Min), box.X+2, box.Bottom()-lh-1, l.LabelColor)
			y = box.Bottom() + l.Padding
		}
		y += l.Padding
	}

	r.rectQueue[0].rect = core.Rect{X: l.X, Y: l.Y, Width: l.Width, Height: y - l.Y}
}

func visibleChildren(n *scene.Node) []*scene.Node {
	out := make([]*scene.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Visible && c.Kind == scene.KindGraph {
			out = append(out, c)
		}
	}
	return out
}

func (r *OverlayRenderer) queueRect(rect core.Rect, color core.Color) {
	r.rectQueue = append(r.rectQueue, rectCmd{rect: rect, color: color})
}

func (r *OverlayRenderer) queueText(text string, x, y float32, color core.Color) {
	r.textQueue = append(r.textQueue, textCmd{
		text:  text,
		x:     x,
		y:     y,
		scale: r.Layout.TextScale,
		color: color,
	})
}

// Present flushes the queued commands: rectangles first, then lines, then
// text so labels stay readable on top of the graphs.
func (r *OverlayRenderer) Present() error {
	r.backend.BeginFrame(r.width, r.height)
	for _, cmd := range r.rectQueue {
		r.backend.DrawRect(cmd.rect, cmd.color)
	}
	for _, cmd := range r.lineQueue {
		r.backend.DrawLines(cmd.points, cmd.color)
	}
	for _, cmd := range r.textQueue {
		r.backend.DrawText(cmd.text, cmd.x, cmd.y, cmd.scale, cmd.color)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("present overlay: %w", err)
	}
	return nil
}

// DrawStats returns the size of the current command queues.
func (r *OverlayRenderer) DrawStats() (rects, lines, texts int) {
	return len(r.rectQueue), len(r.lineQueue), len(r.textQueue)
}

// GraphTitle is the label drawn above a graph box. Graphs fed from the
// simulation step carry a marker.
func GraphTitle(g overlay.GraphSnapshot) string {
	if g.Origin == overlay.TickSlow {
		return g.ID + " [fixed]"
	}
	return g.ID
}

// GraphPoints maps the samples of g into box. Sample i sits at
// x = width/capacity*i and the value range [Min, Max] spans the box from
// bottom to top. Fewer than two samples produce no line.
func GraphPoints(g overlay.GraphSnapshot, box core.Rect) []math.Vec2 {
	if len(g.Samples) < 2 {
		return nil
	}
	capacity := g.Capacity
	if capacity < 1 {
		capacity = len(g.Samples)
	}
	step := float64(box.Width) / float64(capacity)
	pts := make([]math.Vec2, len(g.Samples))
	for i, v := range g.Samples {
		y := math.Remap(v, g.Min, g.Max, float64(box.Height), 0)
		pts[i] = math.Vec2{
			X: box.X + float32(step*float64(i)),
			Y: box.Y + float32(y),
		}
	}
	return pts
}

func formatBound(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
