package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"debug-overlay/core"
	"debug-overlay/input"
	"debug-overlay/internal/opengl"
	"debug-overlay/internal/platform"
	"debug-overlay/renderer"
)

func runGL(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx)

	wc := platform.DefaultWindowConfig()
	wc.Width = a.cfg.Window.Width
	wc.Height = a.cfg.Window.Height
	wc.Title = a.cfg.Window.Title
	window, err := platform.NewWindow(wc)
	if err != nil {
		return err
	}
	defer window.Destroy()

	backend, err := opengl.NewRenderer(a.log.WithField("component", "opengl"))
	if err != nil {
		return fmt.Errorf("create backend: %w", err)
	}
	defer backend.Destroy()
	backend.Clear = true

	overlayRenderer := renderer.NewOverlayRenderer(backend, a.scene, a.log.WithField("component", "renderer"))

	keys := input.NewKeys(window, a.cfg.ToggleKeyCode(), core.KeyP, core.KeyEscape)
	toggle := input.NewToggle(a.cfg.ToggleKeyCode(), true)
	toggle.OnChange = a.scene.SetVisible
	paused := input.NewToggle(core.KeyP, false)
	paused.OnChange = func(on bool) { a.world.Active = !on }

	a.log.Infof("[Demo] press %q to toggle the overlay, P to pause the day cycle, Esc to quit", a.cfg.ToggleKey)

	lastTime := time.Now()
	for !window.ShouldClose() && ctx.Err() == nil {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		window.PollEvents()
		keys.Update()
		toggle.Poll(keys)
		paused.Poll(keys)
		if keys.IsKeyPressed(core.KeyEscape) {
			break
		}

		frame := a.loop.Frame(ctx, dt)
		a.afterFrame(frame)

		backend.ClearColor = a.world.ClearColor()
		w, h := window.GetFramebufferSize()
		overlayRenderer.Render(w, h)
		if err := overlayRenderer.Present(); err != nil {
			a.log.WithError(err).Warn("[Demo] present failed")
		}
		window.SwapBuffers()
	}

	a.engine.Close()
	frames, steps := a.loop.Counts()
	a.log.WithField("frames", frames).WithField("slow_steps", steps).Info("[Demo] shutting down")
	return nil
}
