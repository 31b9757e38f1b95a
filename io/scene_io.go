package io

import (
	"encoding/json"
	"fmt"
	"os"

	"debug-overlay/core"
	"debug-overlay/overlay"
)

// SnapshotFile is the top-level structure of a saved overlay state.
type SnapshotFile struct {
	Version    string         `json:"version"`
	Name       string         `json:"name"`
	Categories []CategoryData `json:"categories"`
	Stats      StatsData      `json:"stats"`
}

type CategoryData struct {
	Name   string      `json:"name"`
	Text   string      `json:"text,omitempty"`
	Graphs []GraphData `json:"graphs,omitempty"`
}

type GraphData struct {
	ID       string     `json:"id"`
	Samples  []float64  `json:"samples"`
	Min      float64    `json:"min"`
	Max      float64    `json:"max"`
	Capacity int        `json:"capacity"`
	Color    [4]float32 `json:"color"`
	Policy   string     `json:"policy"`
	Origin   string     `json:"origin"` // "fast" or "slow"
}

type StatsData struct {
	Entries uint64 `json:"entries"`
	Dropped uint64 `json:"dropped"`
	Cycles  uint64 `json:"cycles"`
}

// NewSnapshotFile copies the engine's current views and counters.
func NewSnapshotFile(name string, views []overlay.CategoryView, stats overlay.Stats) *SnapshotFile {
	f := &SnapshotFile{
		Version:    "1.0",
		Name:       name,
		Categories: make([]CategoryData, 0, len(views)),
		Stats: StatsData{
			Entries: stats.Entries,
			Dropped: stats.Dropped,
			Cycles:  stats.Cycles,
		},
	}
	for _, v := range views {
		cd := CategoryData{Name: v.Name, Text: v.Text}
		for _, g := range v.Graphs {
			cd.Graphs = append(cd.Graphs, GraphData{
				ID:       g.ID,
				Samples:  g.Samples,
				Min:      g.Min,
				Max:      g.Max,
				Capacity: g.Capacity,
				Color:    ColorToArray(g.Color),
				Policy:   g.Policy.String(),
				Origin:   g.Origin.String(),
			})
		}
		f.Categories = append(f.Categories, cd)
	}
	return f
}

// Views converts the file back into category views.
func (f *SnapshotFile) Views() ([]overlay.CategoryView, error) {
	views := make([]overlay.CategoryView, 0, len(f.Categories))
	for _, cd := range f.Categories {
		v := overlay.CategoryView{Name: cd.Name, Text: cd.Text}
		for _, gd := range cd.Graphs {
			policy, err := overlay.ParsePolicy(gd.Policy)
			if err != nil {
				return nil, fmt.Errorf("graph %s/%s: %w", cd.Name, gd.ID, err)
			}
			origin := overlay.TickFast
			if gd.Origin == overlay.TickSlow.String() {
				origin = overlay.TickSlow
			}
			v.Graphs = append(v.Graphs, overlay.GraphSnapshot{
				ID:       gd.ID,
				Samples:  gd.Samples,
				Min:      gd.Min,
				Max:      gd.Max,
				Capacity: gd.Capacity,
				Color:    ArrayToColor(gd.Color),
				Policy:   policy,
				Origin:   origin,
			})
		}
		views = append(views, v)
	}
	return views, nil
}

// SaveSnapshot writes a snapshot file as indented JSON.
func SaveSnapshot(path string, f *SnapshotFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (*SnapshotFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var f SnapshotFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &f, nil
}

func ColorToArray(c core.Color) [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func ArrayToColor(a [4]float32) core.Color {
	return core.Color{R: a[0], G: a[1], B: a[2], A: a[3]}
}
