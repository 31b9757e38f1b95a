package io

import (
	"errors"
	"fmt"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"debug-overlay/overlay"
)

// ErrTooFewSamples is returned when a graph has fewer than two samples
// and therefore no line to draw.
var ErrTooFewSamples = errors.New("graph needs at least two samples")

// ExportGraphPNG renders one graph as a PNG line chart. The y axis spans
// the graph's current [Min, Max].
func ExportGraphPNG(w goio.Writer, g overlay.GraphSnapshot, width, height int) error {
	if len(g.Samples) < 2 {
		return fmt.Errorf("export %s: %w", g.ID, ErrTooFewSamples)
	}
	xs := make([]float64, len(g.Samples))
	for i := range xs {
		xs[i] = float64(i)
	}
	lo, hi := g.Min, g.Max
	if hi <= lo {
		hi = lo + 1
	}
	r, gr, b, a := g.Color.RGBA8()

	ch := chart.Chart{
		Title:  g.ID,
		Width:  width,
		Height: height,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    g.ID,
				XValues: xs,
				YValues: g.Samples,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: r, G: gr, B: b, A: a},
					StrokeWidth: 2,
				},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s: %w", g.ID, err)
	}
	return nil
}

// ExportGraphs writes every graph with enough samples to
// dir/<category>_<graph>.png and returns the written paths. Graphs with
// too few samples are skipped.
func ExportGraphs(dir string, views []overlay.CategoryView, width, height int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	var written []string
	for _, v := range views {
		for _, g := range v.Graphs {
			if len(g.Samples) < 2 {
				continue
			}
			path := filepath.Join(dir, fileName(v.Name)+"_"+fileName(g.ID)+".png")
			if err := writeGraph(path, g, width, height); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	return written, nil
}

func writeGraph(path string, g overlay.GraphSnapshot, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := ExportGraphPNG(f, g, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fileName keeps letters, digits, '-' and '.', replacing everything else.
func fileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, s)
}

// DumpText writes a plain-text rendition of the overlay panel.
func DumpText(w goio.Writer, views []overlay.CategoryView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No log entries")
		return err
	}
	var sb strings.Builder
	for _, v := range views {
		fmt.Fprintf(&sb, "[%s]\n", v.Name)
		if v.HasText() {
			for _, line := range strings.Split(v.Text, "\n") {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
		}
		if v.HasDivider() {
			sb.WriteString("  --\n")
		}
		for _, g := range v.Graphs {
			last := "-"
			if n := len(g.Samples); n > 0 {
				last = fmt.Sprintf("%.4g", g.Samples[n-1])
			}
			fmt.Fprintf(&sb, "  %s %s [%.4g, %.4g] last=%s (%d/%d)\n",
				g.ID, g.Policy, g.Min, g.Max, last, len(g.Samples), g.Capacity)
		}
	}
	_, err := goio.WriteString(w, sb.String())
	return err
}
