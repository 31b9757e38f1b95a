package raster

import (
	"bytes"
	"image/png"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debug-overlay/core"
	"debug-overlay/math"
	"debug-overlay/overlay"
	"debug-overlay/renderer"
	"debug-overlay/scene"
)

func TestCanvasDrawsPrimitives(t *testing.T) {
	c := NewCanvas()
	c.BeginFrame(64, 32)

	c.DrawRect(core.Rect{X: 0, Y: 0, Width: 10, Height: 10}, core.ColorRed)
	r, _, _, a := c.Image().RGBAAt(5, 5).RGBA()
	assert.Greater(t, r, uint32(0))
	assert.Greater(t, a, uint32(0))

	c.DrawLines([]math.Vec2{{X: 20, Y: 16}, {X: 60, Y: 16}}, core.ColorGreen)
	assert.Greater(t, c.Image().RGBAAt(40, 16).G, uint8(0))

	c.DrawText("Hi", 20, 0, 2, core.ColorWhite)
	require.NoError(t, c.EndFrame())
}

func TestCanvasClearsBetweenFrames(t *testing.T) {
	c := NewCanvas()
	c.BeginFrame(8, 8)
	c.DrawRect(core.Rect{Width: 8, Height: 8}, core.ColorWhite)
	c.BeginFrame(8, 8)
	assert.Equal(t, uint8(0), c.Image().RGBAAt(4, 4).R)
}

func TestCanvasBackendRoundTrip(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	s := scene.NewScene(log)
	e := overlay.NewEngine(overlay.Config{Enabled: true, Host: s, Logger: log})
	router := overlay.NewRouter(e, nil)
	for i := 0; i < 10; i++ {
		router.Graph(float64(i), "ramp", 0, 10, overlay.InCategory("demo"), overlay.WithLength(10))
	}
	router.Text("ten samples", overlay.InCategory("demo"))
	e.FastPhase()
	s.Sync(e.Categories())

	c := NewCanvas()
	r := renderer.NewOverlayRenderer(c, s, log)
	r.Render(400, 300)
	require.NoError(t, r.Present())

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestWritePNGBeforeFrame(t *testing.T) {
	assert.Error(t, NewCanvas().WritePNG(io.Discard))
}
