package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(id string, value float64) GraphPoint {
	return GraphPoint{Category: "test", GraphID: id, Value: value, Min: 0, Max: 60, Length: 3}
}

func TestGraphSeriesPolicies(t *testing.T) {
	tests := []struct {
		name    string
		policy  DisplayPolicy
		values  []float64
		want    []float64
		wantMin float64
		wantMax float64
	}{
		{"passthrough keeps raw values", PolicyPassThrough, []float64{5, 70, -10}, []float64{5, 70, -10}, 0, 60},
		{"clip clamps into bounds", PolicyClip, []float64{5, 70, -10}, []float64{5, 60, 0}, 0, 60},
		{"clip keeps in-range values", PolicyClip, []float64{0, 30, 60}, []float64{0, 30, 60}, 0, 60},
		{"autoscale widens to floor and ceil", PolicyAutoScale, []float64{5, 70.2, -10.5}, []float64{5, 70.2, -10.5}, -11, 71},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := point("fps", 0)
			p.Policy = tt.policy
			s := newGraphSeries(p, TickFast)
			for _, v := range tt.values {
				s.Push(v)
			}
			snap := s.Snapshot()
			assert.Equal(t, tt.want, snap.Samples)
			assert.Equal(t, tt.wantMin, snap.Min)
			assert.Equal(t, tt.wantMax, snap.Max)
		})
	}
}

func TestAutoScaleBoundsOnlyWiden(t *testing.T) {
	p := point("load", 0)
	p.Policy = PolicyAutoScale
	p.Length = 4
	s := newGraphSeries(p, TickSlow)

	prevMin, prevMax := s.Bounds()
	for _, v := range []float64{30, -2.5, 100, 50, -1, 99.1, -40, 0} {
		s.Push(v)
		min, max := s.Bounds()
		assert.LessOrEqual(t, min, prevMin)
		assert.GreaterOrEqual(t, max, prevMax)
		prevMin, prevMax = min, max
	}
	min, max := s.Bounds()
	assert.Equal(t, -40.0, min)
	assert.Equal(t, 100.0, max)
}

func TestGraphRegistryFirstConfigurationWins(t *testing.T) {
	r := NewGraphRegistry()
	first := point("fps", 1)
	second := point("fps", 2)
	second.Min, second.Max, second.Length, second.Policy = -100, 100, 50, PolicyClip

	created := r.Reconcile([]GraphPoint{first, second}, TickFast)
	assert.Equal(t, []string{"fps"}, created)

	s, ok := r.Get("fps")
	require.True(t, ok)
	min, max := s.Bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 60.0, max)
	assert.Equal(t, 3, s.Capacity())
	assert.Equal(t, PolicyPassThrough, s.Policy)
	assert.Equal(t, []float64{1, 2}, s.Snapshot().Samples)
}

func TestGraphRegistrySweepRemovesSilentSeries(t *testing.T) {
	r := NewGraphRegistry()
	r.Reconcile([]GraphPoint{point("a", 1), point("b", 1)}, TickFast)
	assert.Empty(t, r.Sweep())

	r.Reconcile([]GraphPoint{point("a", 2)}, TickFast)
	assert.Equal(t, []string{"b"}, r.Sweep())
	assert.Equal(t, []string{"a"}, r.IDs())

	assert.Equal(t, []string{"a"}, r.Sweep())
	assert.Equal(t, 0, r.Len())
}

func TestGraphRegistrySlowWindowSurvivesSweep(t *testing.T) {
	r := NewGraphRegistry()
	created := r.Reconcile([]GraphPoint{point("phys", 1)}, TickSlow)
	assert.Equal(t, []string{"phys"}, created)

	s, _ := r.Get("phys")
	assert.Equal(t, TickSlow, s.Origin)

	// no simulation step ran since: the Slow window is still open
	assert.Empty(t, r.Sweep())
	assert.Empty(t, r.Sweep())

	r.ResetWindow(TickSlow)
	assert.Equal(t, []string{"phys"}, r.Sweep())
}

func TestGraphRegistrySnapshotsSortedByID(t *testing.T) {
	r := NewGraphRegistry()
	r.Reconcile([]GraphPoint{point("zeta", 1), point("alpha", 1), point("mid", 1)}, TickFast)

	var ids []string
	for _, s := range r.Snapshots() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids)
}
