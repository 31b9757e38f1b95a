package renderer

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debug-overlay/core"
	"debug-overlay/math"
	"debug-overlay/overlay"
	"debug-overlay/scene"
)

type fakeBackend struct {
	frames int
	rects  []core.Rect
	lines  [][]math.Vec2
	texts  []string
	err    error
}

func (f *fakeBackend) BeginFrame(width, height int) {
	f.frames++
	f.rects, f.lines, f.texts = nil, nil, nil
}

func (f *fakeBackend) DrawRect(r core.Rect, color core.Color) { f.rects = append(f.rects, r) }

func (f *fakeBackend) DrawLines(points []math.Vec2, color core.Color) {
	f.lines = append(f.lines, points)
}

func (f *fakeBackend) DrawText(text string, x, y, scale float32, color core.Color) {
	f.texts = append(f.texts, text)
}

func (f *fakeBackend) EndFrame() error { return f.err }

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func setup() (*overlay.Engine, *overlay.Router, *scene.Scene, *fakeBackend, *OverlayRenderer) {
	s := scene.NewScene(quiet())
	e := overlay.NewEngine(overlay.Config{Enabled: true, Host: s, Logger: quiet()})
	b := &fakeBackend{}
	return e, overlay.NewRouter(e, nil), s, b, NewOverlayRenderer(b, s, quiet())
}

func TestGraphPointsGeometry(t *testing.T) {
	g := overlay.GraphSnapshot{Samples: []float64{0, 5, 10}, Min: 0, Max: 10, Capacity: 4}
	pts := GraphPoints(g, core.Rect{X: 10, Y: 20, Width: 100, Height: 50})
	require.Len(t, pts, 3)
	assert.Equal(t, math.Vec2{X: 10, Y: 70}, pts[0])
	assert.Equal(t, math.Vec2{X: 35, Y: 45}, pts[1])
	assert.Equal(t, math.Vec2{X: 60, Y: 20}, pts[2])
}

func TestGraphPointsNeedsTwoSamples(t *testing.T) {
	g := overlay.GraphSnapshot{Samples: []float64{1}, Max: 1, Capacity: 4}
	assert.Nil(t, GraphPoints(g, core.Rect{Width: 10, Height: 10}))
}

func TestRenderEmptyMessage(t *testing.T) {
	e, _, _, b, r := setup()
	e.FastPhase()
	r.Render(800, 600)
	require.NoError(t, r.Present())
	assert.Equal(t, []string{scene.EmptyMessage}, b.texts)
}

func TestRenderCategoryBlocks(t *testing.T) {
	e, router, s, b, r := setup()
	router.Text("fps 60", overlay.InCategory("b"))
	router.Text("frame 16ms", overlay.InCategory("b"))
	router.Graph(1, "speed", 0, 10, overlay.InCategory("a"))
	router.Graph(2, "speed", 0, 10, overlay.InCategory("a"))
	e.FastPhase()
	s.Sync(e.Categories())

	r.Render(800, 600)
	require.NoError(t, r.Present())

	assert.Equal(t, []string{"a", "speed", "10", "0", "b", "fps 60", "frame 16ms"}, b.texts)
	require.Len(t, b.lines, 1)
	assert.Len(t, b.lines[0], 2)
	// background and one graph box, no divider
	assert.Len(t, b.rects, 2)
	assert.Greater(t, b.rects[0].Height, float32(0))
}

func TestRenderDividerOnlyWithTextAndGraphs(t *testing.T) {
	e, router, s, b, r := setup()
	router.Text("hello", overlay.InCategory("c"))
	router.Graph(1, "g", 0, 1, overlay.InCategory("c"))
	e.FastPhase()
	s.Sync(e.Categories())
	r.Render(800, 600)
	require.NoError(t, r.Present())

	// background, divider, graph box
	require.Len(t, b.rects, 3)
	assert.Equal(t, float32(1), b.rects[1].Height)
}

func TestRenderHiddenSceneDrawsNothing(t *testing.T) {
	e, router, s, b, r := setup()
	router.Text("x")
	e.FastPhase()
	s.SetVisible(false)
	r.Render(800, 600)
	require.NoError(t, r.Present())
	assert.Empty(t, b.texts)
	assert.Empty(t, b.rects)
	assert.Equal(t, 1, b.frames)
}

func TestPresentRedrawsSameFrame(t *testing.T) {
	e, router, s, b, r := setup()
	router.Text("x")
	e.FastPhase()
	s.Sync(e.Categories())
	r.Render(800, 600)

	require.NoError(t, r.Present())
	first := append([]string(nil), b.texts...)
	require.NoError(t, r.Present())
	assert.Equal(t, first, b.texts)
	assert.Equal(t, 2, b.frames)
}

func TestPresentWrapsBackendError(t *testing.T) {
	b := &fakeBackend{err: errors.New("lost context")}
	r := NewOverlayRenderer(b, scene.NewScene(quiet()), quiet())
	r.Render(10, 10)
	err := r.Present()
	assert.ErrorIs(t, err, b.err)
}

func TestGraphTitleMarksSlowOrigin(t *testing.T) {
	assert.Equal(t, "g", GraphTitle(overlay.GraphSnapshot{ID: "g"}))
	assert.Equal(t, "g [fixed]", GraphTitle(overlay.GraphSnapshot{ID: "g", Origin: overlay.TickSlow}))
}
