package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"debug-overlay/internal/raster"
	overlayio "debug-overlay/io"
	"debug-overlay/renderer"
)

const (
	snapshotWidth  = 640
	snapshotHeight = 480
	chartWidth     = 800
	chartHeight    = 300
)

func runSnapshot(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	frames, _ := flags.GetInt("frames")
	dt, _ := flags.GetDuration("dt")
	pngPath, _ := flags.GetString("png")
	graphsDir, _ := flags.GetString("graphs-dir")
	jsonPath, _ := flags.GetString("json")
	dumpText, _ := flags.GetBool("text")

	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	if dt <= 0 {
		dt = time.Second / 60
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	for i := 0; i < frames && ctx.Err() == nil; i++ {
		a.afterFrame(a.loop.Frame(ctx, dt))
	}
	views := a.engine.Categories()
	stats := a.engine.Stats()
	a.log.WithFields(logrus.Fields{
		"frames":     frames,
		"categories": len(views),
		"elapsed":    time.Since(start).Round(time.Millisecond),
	}).Info("[Snapshot] simulation done")

	if pngPath != "" {
		canvas := raster.NewCanvas()
		canvas.Background = a.world.ClearColor()
		r := renderer.NewOverlayRenderer(canvas, a.scene, a.log.WithField("component", "renderer"))
		r.Render(snapshotWidth, snapshotHeight)
		if err := r.Present(); err != nil {
			return err
		}
		f, err := os.Create(pngPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", pngPath, err)
		}
		if err := canvas.WritePNG(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", pngPath, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		a.log.WithField("path", pngPath).Info("[Snapshot] panel written")
	}

	if graphsDir != "" {
		paths, err := overlayio.ExportGraphs(graphsDir, views, chartWidth, chartHeight)
		if err != nil {
			return err
		}
		a.log.WithField("count", len(paths)).WithField("dir", graphsDir).Info("[Snapshot] graphs exported")
	}

	if jsonPath != "" {
		if err := overlayio.SaveSnapshot(jsonPath, overlayio.NewSnapshotFile("overlay-demo", views, stats)); err != nil {
			return err
		}
		a.log.WithField("path", jsonPath).Info("[Snapshot] json written")
	}

	if dumpText {
		if err := overlayio.DumpText(os.Stdout, views); err != nil {
			return err
		}
	}
	a.engine.Close()
	return nil
}
