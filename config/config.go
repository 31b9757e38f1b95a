// Package config loads overlay settings from a YAML file and OVERLAY_*
// environment variables.
//
// Usage:
//
//	cfg, err := config.Load("./overlay.yaml")
//	if err != nil {
//		return err
//	}
//	cfg.FromEnv()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"debug-overlay/core"
	"debug-overlay/overlay"
)

// ErrInvalidPolicy is returned by Validate for an unknown default policy.
var ErrInvalidPolicy = errors.New("invalid display policy")

// Config holds every setting the demo hosts read.
type Config struct {
	Enabled bool `yaml:"enabled"`

	// Defaults applied to Router calls that don't override them.
	DefaultCategory string `yaml:"default_category"`
	DefaultLength   int    `yaml:"default_length"`
	DefaultPolicy   string `yaml:"default_policy"`
	DefaultColor    string `yaml:"default_color"`

	ToggleKey    string        `yaml:"toggle_key"`
	SlowTickRate float64       `yaml:"slow_tick_rate"`
	MaxFrameTime time.Duration `yaml:"max_frame_time"`

	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`

	Window WindowConfig `yaml:"window"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Enabled:         true,
		DefaultCategory: overlay.DefaultCategory,
		DefaultLength:   overlay.DefaultLength,
		DefaultPolicy:   "default",
		DefaultColor:    "#ffffff",
		ToggleKey:       "=",
		SlowTickRate:    60,
		MaxFrameTime:    250 * time.Millisecond,
		LogLevel:        "info",
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Debug Overlay",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies OVERLAY_* overrides. Unparseable values are ignored.
func (c *Config) FromEnv() {
	if val := os.Getenv("OVERLAY_ENABLED"); val != "" {
		c.Enabled = parseBool(val, c.Enabled)
	}
	if val := os.Getenv("OVERLAY_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("OVERLAY_SLOW_HZ"); val != "" {
		if hz, err := strconv.ParseFloat(val, 64); err == nil {
			c.SlowTickRate = hz
		}
	}
	if val := os.Getenv("OVERLAY_METRICS_ADDR"); val != "" {
		c.MetricsAddr = val
	}
}

func parseBool(s string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultVal
	}
}

// Validate checks the values a loop or router cannot run with.
func (c *Config) Validate() error {
	if c.SlowTickRate <= 0 {
		return fmt.Errorf("slow_tick_rate must be positive, got %v", c.SlowTickRate)
	}
	if c.MaxFrameTime < 0 {
		return fmt.Errorf("max_frame_time must not be negative, got %v", c.MaxFrameTime)
	}
	if _, err := overlay.ParsePolicy(c.DefaultPolicy); err != nil {
		return fmt.Errorf("default_policy: %w: %q", ErrInvalidPolicy, c.DefaultPolicy)
	}
	if _, err := core.ParseHexColor(c.DefaultColor); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	if _, ok := core.LookupKey(c.ToggleKey); !ok {
		return fmt.Errorf("toggle_key: unknown key %q", c.ToggleKey)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// RouterOptions converts the defaults into options for overlay.NewRouter.
// Call Validate first; invalid values fall back to the router's own defaults.
func (c *Config) RouterOptions() []overlay.Option {
	var opts []overlay.Option
	if c.DefaultCategory != "" {
		opts = append(opts, overlay.InCategory(c.DefaultCategory))
	}
	if c.DefaultLength > 0 {
		opts = append(opts, overlay.WithLength(c.DefaultLength))
	}
	if p, err := overlay.ParsePolicy(c.DefaultPolicy); err == nil {
		opts = append(opts, overlay.WithPolicy(p))
	}
	if col, err := core.ParseHexColor(c.DefaultColor); err == nil {
		opts = append(opts, overlay.WithColor(col))
	}
	return opts
}

// ToggleKeyCode returns the window key code for ToggleKey, or core.KeyEqual.
func (c *Config) ToggleKeyCode() int {
	if k, ok := core.LookupKey(c.ToggleKey); ok {
		return k
	}
	return core.KeyEqual
}

// SlowStep is the duration of one simulation step.
func (c *Config) SlowStep() time.Duration {
	return time.Duration(float64(time.Second) / c.SlowTickRate)
}

// Logger builds a logrus logger at LogLevel.
func (c *Config) Logger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	}
	return l
}
