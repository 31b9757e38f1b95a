package overlay

import "debug-overlay/core"

// GraphSnapshot is a detached copy of a graph for the renderer.
type GraphSnapshot struct {
	ID       string
	Samples  []float64
	Min      float64
	Max      float64
	Capacity int
	Color    core.Color
	Policy   DisplayPolicy
	Origin   TickKind
}

// CategoryView is a detached copy of a category for the renderer.
type CategoryView struct {
	Name   string
	Text   string
	Graphs []GraphSnapshot
}

// HasText reports whether the text block should be shown.
func (v CategoryView) HasText() bool { return v.Text != "" }

// HasDivider reports whether a divider separates text from graphs.
func (v CategoryView) HasDivider() bool { return v.HasText() && len(v.Graphs) > 0 }

// Frame summarises one FastPhase.
type Frame struct {
	NeedsReorder bool
	Empty        bool
	Created      int
	Destroyed    int
}

// Stats counts live state and entry traffic since the engine was built.
type Stats struct {
	Categories int
	Graphs     int
	Entries    uint64
	Dropped    uint64
	Cycles     uint64
}
