package main

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"debug-overlay/internal/tui"
	"debug-overlay/overlay"
)

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	// the panel owns the terminal
	a.log.SetOutput(io.Discard)

	interval, _ := cmd.Flags().GetDuration("interval")
	width, _ := cmd.Flags().GetInt("graph-width")

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx)

	m := tui.NewModel(ctx, observedLoop{a}, a.engine, a.scene, tui.Options{
		Interval:   interval,
		ToggleKey:  a.cfg.ToggleKey,
		GraphWidth: width,
	})
	err = tui.Run(ctx, m)
	a.engine.Close()
	return err
}

// observedLoop feeds engine stats to the metrics observer after each frame.
// The model syncs the scene itself.
type observedLoop struct{ a *app }

func (o observedLoop) Frame(ctx context.Context, dt time.Duration) overlay.Frame {
	frame := o.a.loop.Frame(ctx, dt)
	o.a.observer.ObserveStats(o.a.engine.Stats())
	return frame
}
