package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debug-overlay/core"
	"debug-overlay/overlay"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	data := []byte(`
enabled: false
default_category: Game
default_length: 32
default_policy: clip
slow_tick_rate: 30
max_frame_time: 100ms
window:
  title: test
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "Game", cfg.DefaultCategory)
	assert.Equal(t, 32, cfg.DefaultLength)
	assert.Equal(t, "clip", cfg.DefaultPolicy)
	assert.Equal(t, 30.0, cfg.SlowTickRate)
	assert.Equal(t, 100*time.Millisecond, cfg.MaxFrameTime)
	assert.Equal(t, "test", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "=", cfg.ToggleKey)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OVERLAY_ENABLED", "off")
	t.Setenv("OVERLAY_LOG_LEVEL", "debug")
	t.Setenv("OVERLAY_SLOW_HZ", "120")
	t.Setenv("OVERLAY_METRICS_ADDR", ":9100")

	cfg := Default()
	cfg.FromEnv()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 120.0, cfg.SlowTickRate)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, logrus.DebugLevel, cfg.Logger().GetLevel())
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("OVERLAY_ENABLED", "maybe")
	t.Setenv("OVERLAY_SLOW_HZ", "fast")

	cfg := Default()
	cfg.FromEnv()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60.0, cfg.SlowTickRate)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.SlowTickRate = 0 }},
		{"negative frame cap", func(c *Config) { c.MaxFrameTime = -time.Second }},
		{"bad color", func(c *Config) { c.DefaultColor = "blue" }},
		{"unknown key", func(c *Config) { c.ToggleKey = "hyper" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.DefaultPolicy = "logarithmic"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidPolicy)
}

func TestRouterOptionsApplyDefaults(t *testing.T) {
	cfg := Default()
	cfg.DefaultCategory = "Game"
	cfg.DefaultLength = 8
	cfg.DefaultPolicy = "autoscale"
	cfg.DefaultColor = "#ff0000"

	e := overlay.NewEngine(overlay.Config{Enabled: true, Logger: logrus.New()})
	r := overlay.NewRouter(e, nil, cfg.RouterOptions()...)
	r.Graph(5, "g", 0, 1)
	e.FastPhase()

	view, ok := e.Category("Game")
	require.True(t, ok)
	require.Len(t, view.Graphs, 1)
	g := view.Graphs[0]
	assert.Equal(t, 8, g.Capacity)
	assert.Equal(t, overlay.PolicyAutoScale, g.Policy)
	assert.Equal(t, 5.0, g.Max)
	assert.Equal(t, core.ColorRed, g.Color)
}

func TestSlowStepAndToggleKey(t *testing.T) {
	cfg := Default()
	cfg.SlowTickRate = 50
	assert.Equal(t, 20*time.Millisecond, cfg.SlowStep())
	assert.Equal(t, core.KeyEqual, cfg.ToggleKeyCode())
	cfg.ToggleKey = "F1"
	assert.Equal(t, core.KeyF1, cfg.ToggleKeyCode())
}
