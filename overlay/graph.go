package overlay

import (
	gomath "math"
	"sort"

	"debug-overlay/core"
	"debug-overlay/math"
)

// GraphSeries is one named graph inside a category. Its configuration is
// taken from the point that created it; later points only add samples.
type GraphSeries struct {
	ID     string
	Color  core.Color
	Policy DisplayPolicy
	Origin TickKind

	min, max float64
	buf      *ValueBuffer
}

func newGraphSeries(p GraphPoint, origin TickKind) *GraphSeries {
	return &GraphSeries{
		ID:     p.GraphID,
		Color:  p.Color,
		Policy: p.Policy,
		Origin: origin,
		min:    p.Min,
		max:    p.Max,
		buf:    NewValueBuffer(p.Length),
	}
}

// Push stores v according to the series' display policy.
func (s *GraphSeries) Push(v float64) {
	switch s.Policy {
	case PolicyClip:
		v = math.Clamp(v, s.min, s.max)
	case PolicyAutoScale:
		if v < s.min {
			s.min = gomath.Floor(v)
		}
		if v > s.max {
			s.max = gomath.Ceil(v)
		}
	}
	s.buf.Push(v)
}

// Bounds returns the current [min, max]. Only autoscale moves them.
func (s *GraphSeries) Bounds() (min, max float64) { return s.min, s.max }

func (s *GraphSeries) Capacity() int { return s.buf.Cap() }

// Snapshot copies the series into a value the renderer can keep.
func (s *GraphSeries) Snapshot() GraphSnapshot {
	return GraphSnapshot{
		ID:       s.ID,
		Samples:  s.buf.Snapshot(),
		Min:      s.min,
		Max:      s.max,
		Capacity: s.buf.Cap(),
		Color:    s.Color,
		Policy:   s.Policy,
		Origin:   s.Origin,
	}
}

// GraphRegistry owns the graphs of a single category.
//
// Reconcile creates and feeds series as points arrive. Sweep runs once per
// cycle and removes every series that no point referenced since the
// matching window was last reset.
type GraphRegistry struct {
	series  map[string]*GraphSeries
	touched [2]map[string]struct{}
}

func NewGraphRegistry() *GraphRegistry {
	r := &GraphRegistry{series: make(map[string]*GraphSeries)}
	r.touched[TickFast] = make(map[string]struct{})
	r.touched[TickSlow] = make(map[string]struct{})
	return r
}

// Reconcile feeds points logged from the given cadence, in arrival order.
// It returns the ids of series created by this call.
func (r *GraphRegistry) Reconcile(points []GraphPoint, origin TickKind) []string {
	var created []string
	for _, p := range points {
		s, ok := r.series[p.GraphID]
		if !ok {
			s = newGraphSeries(p, origin)
			r.series[p.GraphID] = s
			created = append(created, p.GraphID)
		}
		r.touched[origin][p.GraphID] = struct{}{}
		s.Push(p.Value)
	}
	return created
}

// Sweep removes series untouched by either cadence and returns their ids,
// sorted. The Fast window is reset; the Slow window is left to ResetWindow.
func (r *GraphRegistry) Sweep() []string {
	var removed []string
	for id := range r.series {
		if r.Touched(id) {
			continue
		}
		delete(r.series, id)
		removed = append(removed, id)
	}
	sort.Strings(removed)
	r.ResetWindow(TickFast)
	return removed
}

// ResetWindow forgets which series the given cadence referenced.
func (r *GraphRegistry) ResetWindow(kind TickKind) {
	clear(r.touched[kind])
}

// Touched reports whether any cadence referenced id in its current window.
func (r *GraphRegistry) Touched(id string) bool {
	if _, ok := r.touched[TickFast][id]; ok {
		return true
	}
	_, ok := r.touched[TickSlow][id]
	return ok
}

func (r *GraphRegistry) Get(id string) (*GraphSeries, bool) {
	s, ok := r.series[id]
	return s, ok
}

func (r *GraphRegistry) Len() int { return len(r.series) }

// IDs returns every graph id in display order.
func (r *GraphRegistry) IDs() []string {
	ids := make([]string, 0, len(r.series))
	for id := range r.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshots returns every series in display order.
func (r *GraphRegistry) Snapshots() []GraphSnapshot {
	ids := r.IDs()
	out := make([]GraphSnapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.series[id].Snapshot())
	}
	return out
}
