package main

import (
	"fmt"
	"time"

	"debug-overlay/core"
	"debug-overlay/overlay"
)

// frameHUD logs render-side statistics from the fast cadence.
type frameHUD struct {
	engine *overlay.Engine
	fps    float64
	frames int
}

func (h *frameHUD) Update(dt time.Duration, r *overlay.Router) {
	h.frames++
	ms := float64(dt.Microseconds()) / 1000
	if dt > 0 {
		// exponential moving average
		inst := 1 / dt.Seconds()
		if h.fps == 0 {
			h.fps = inst
		} else {
			h.fps += (inst - h.fps) * 0.1
		}
	}

	render := overlay.InCategory("Render")
	r.Text(fmt.Sprintf("fps %.1f", h.fps), render)
	r.Text(fmt.Sprintf("frame %.2f ms", ms), render)
	r.Graph(ms, "frame ms", 0, 33, render, overlay.WithColor(core.ColorGreen))

	s := h.engine.Stats()
	stats := overlay.InCategory("Overlay")
	r.Text(fmt.Sprintf("categories %d graphs %d", s.Categories, s.Graphs), stats)
	r.Text(fmt.Sprintf("entries %d dropped %d", s.Entries, s.Dropped), stats)
}
