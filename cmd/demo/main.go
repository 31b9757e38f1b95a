package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"debug-overlay/clock"
	"debug-overlay/config"
	"debug-overlay/internal/metrics"
	"debug-overlay/overlay"
	"debug-overlay/scene"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "overlay-demo",
		Short: "Debug overlay demo hosts",
		Long: `Runs a small simulated world that logs text and graphs to the debug
overlay from both the fixed simulation step and the render step.

Hosts:
  • gl        OpenGL window, toggle the overlay with the configured key
  • tui       terminal panel with sparklines
  • snapshot  headless run written to PNG / JSON / text`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "overlay.yaml", "Config file (missing file uses defaults)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("overlay-demo v%s (%s)\n", version, commit)
		},
	})

	glCmd := &cobra.Command{
		Use:   "gl",
		Short: "Open a window and draw the overlay with OpenGL",
		RunE:  runGL,
	}
	rootCmd.AddCommand(glCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Draw the overlay in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().Duration("interval", time.Second/30, "Frame interval")
	tuiCmd.Flags().Int("graph-width", 48, "Maximum sparkline width")
	rootCmd.AddCommand(tuiCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Run the demo headless and write the overlay to disk",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Int("frames", 600, "Frames to simulate")
	snapshotCmd.Flags().Duration("dt", time.Second/60, "Simulated frame time")
	snapshotCmd.Flags().String("png", "overlay.png", "Panel image output (empty to skip)")
	snapshotCmd.Flags().String("graphs-dir", "", "Directory for one PNG chart per graph")
	snapshotCmd.Flags().String("json", "", "JSON snapshot output")
	snapshotCmd.Flags().Bool("text", true, "Print a text dump to stdout")
	rootCmd.AddCommand(snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the wiring shared by every host.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	engine   *overlay.Engine
	scene    *scene.Scene
	observer *metrics.Observer
	router   *overlay.Router
	loop     *clock.Loop
	world    *DayNight
	hud      *frameHUD
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.FromEnv()
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &app{cfg: cfg, log: cfg.Logger()}
	a.scene = scene.NewScene(a.log.WithField("component", "scene"))
	a.observer = metrics.NewObserver()
	a.engine = overlay.NewEngine(overlay.Config{
		Enabled: cfg.Enabled,
		Host:    overlay.Hosts{a.scene, a.observer},
		Logger:  a.log.WithField("component", "overlay"),
	})
	a.world = NewDayNight()
	a.hud = &frameHUD{engine: a.engine}

	a.loop = clock.NewLoop(a.engine, cfg.SlowTickRate,
		clock.WithMaxFrameTime(cfg.MaxFrameTime),
		clock.OnSlow(func(step time.Duration) { a.world.Step(step, a.router) }),
		clock.OnFast(func(dt time.Duration) { a.hud.Update(dt, a.router) }),
		clock.WithLogger(a.log.WithField("component", "clock")),
	)
	a.router = overlay.NewRouter(a.engine, a.loop, cfg.RouterOptions()...)

	a.log.WithFields(logrus.Fields{
		"enabled": cfg.Enabled,
		"slow_hz": cfg.SlowTickRate,
		"toggle":  cfg.ToggleKey,
	}).Info("[Overlay] initialized")
	return a, nil
}

// afterFrame is run by every host once a frame has been reconciled.
func (a *app) afterFrame(frame overlay.Frame) {
	a.scene.Sync(a.engine.Categories())
	a.observer.ObserveStats(a.engine.Stats())
	if frame.NeedsReorder {
		a.log.WithFields(logrus.Fields{"created": frame.Created}).Debug("[Overlay] reordered")
	}
}

// serveMetrics exposes /metrics until ctx is done. It is a no-op when no
// address is configured.
func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.observer.Handler())
	srv := &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.log.WithField("addr", a.cfg.MetricsAddr).Info("[Metrics] serving /metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("[Metrics] server stopped")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
