package overlay

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHost keeps every lifecycle event as a string.
type recordingHost struct {
	events []string
}

func (h *recordingHost) CategoryCreated(name string) {
	h.events = append(h.events, "+cat "+name)
}

func (h *recordingHost) CategoryDestroyed(name string) {
	h.events = append(h.events, "-cat "+name)
}

func (h *recordingHost) GraphCreated(category string, graph GraphSnapshot) {
	h.events = append(h.events, fmt.Sprintf("+graph %s/%s", category, graph.ID))
}

func (h *recordingHost) GraphDestroyed(category, graphID string) {
	h.events = append(h.events, fmt.Sprintf("-graph %s/%s", category, graphID))
}

func (h *recordingHost) Reorder() {
	h.events = append(h.events, "reorder")
}

func (h *recordingHost) take() []string {
	ev := h.events
	h.events = nil
	return ev
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fixture wires an engine and a router whose tick kind the test controls.
type fixture struct {
	engine *Engine
	router *Router
	host   *recordingHost
	tick   TickKind
}

func newFixture() *fixture {
	f := &fixture{host: &recordingHost{}}
	f.engine = NewEngine(Config{Enabled: true, Host: f.host, Logger: quietLogger()})
	f.router = NewRouter(f.engine, TickSourceFunc(func() TickKind { return f.tick }))
	return f
}

// slow runs fn as a simulation step: entries are logged as Slow, then the
// Slow phase drains them.
func (f *fixture) slow(fn func(r *Router)) {
	f.tick = TickSlow
	fn(f.router)
	f.engine.SlowPhase()
	f.tick = TickFast
}

func TestEngineClipScenario(t *testing.T) {
	f := newFixture()
	for _, v := range []float64{5, 70, -10} {
		f.router.Graph(v, "fps", 0, 60, WithLength(3), WithPolicy(PolicyClip))
	}
	f.engine.FastPhase()

	view, ok := f.engine.Category(DefaultCategory)
	require.True(t, ok)
	require.Len(t, view.Graphs, 1)
	g := view.Graphs[0]
	assert.Equal(t, []float64{5, 60, 0}, g.Samples)
	assert.Equal(t, 0.0, g.Min)
	assert.Equal(t, 60.0, g.Max)
}

func TestEngineTextOrdering(t *testing.T) {
	f := newFixture()
	for _, s := range []string{"b", "10", "2", "a"} {
		f.router.Text(s, InCategory("order"))
	}
	f.engine.FastPhase()

	view, ok := f.engine.Category("order")
	require.True(t, ok)
	assert.Equal(t, "10\n2\na\nb", view.Text)
}

func TestEngineCategorySilenceTeardown(t *testing.T) {
	f := newFixture()
	f.router.Text("x", InCategory("fast"))
	f.slow(func(r *Router) { r.Text("y", InCategory("slow")) })
	f.engine.FastPhase()
	assert.Equal(t, []string{"fast", "slow"}, categoryNames(f.engine))

	// a simulation step ran and referenced nothing, the frame referenced only "slow"
	f.slow(func(r *Router) {})
	f.router.Text("z", InCategory("slow"))
	frame := f.engine.FastPhase()
	assert.Equal(t, []string{"slow"}, categoryNames(f.engine))
	assert.Equal(t, 1, frame.Destroyed)

	f.slow(func(r *Router) {})
	frame = f.engine.FastPhase()
	assert.True(t, frame.Empty)
	assert.Empty(t, f.engine.Categories())
}

func TestEngineSlowTextShowsLatestStep(t *testing.T) {
	f := newFixture()
	// two simulation steps between frames, each logging its own position
	f.slow(func(r *Router) {
		r.Text("pos 1", InCategory("physics"))
		r.Graph(1, "velocity", 0, 10, InCategory("physics"))
	})
	f.slow(func(r *Router) {
		r.Text("pos 2", InCategory("physics"))
		r.Graph(2, "velocity", 0, 10, InCategory("physics"))
	})
	f.engine.FastPhase()

	view, ok := f.engine.Category("physics")
	require.True(t, ok)
	assert.Equal(t, "pos 2", view.Text)
	require.Len(t, view.Graphs, 1)
	assert.Equal(t, []float64{1, 2}, view.Graphs[0].Samples)

	// a later step that only pushes a graph point clears the old line
	f.slow(func(r *Router) { r.Graph(3, "velocity", 0, 10, InCategory("physics")) })
	f.engine.FastPhase()
	view, ok = f.engine.Category("physics")
	require.True(t, ok)
	assert.Empty(t, view.Text)
}

func TestEngineSlowEntryKeepsCategoryAlive(t *testing.T) {
	f := newFixture()
	f.slow(func(r *Router) { r.Text("only slow", InCategory("physics")) })
	f.engine.FastPhase()

	// frames outpace simulation steps: no Slow phase runs for a while
	for i := 0; i < 3; i++ {
		frame := f.engine.FastPhase()
		assert.False(t, frame.Empty)
		view, ok := f.engine.Category("physics")
		require.True(t, ok)
		assert.Equal(t, "only slow", view.Text)
	}
}

func TestEngineSlowGraphAccumulatesAcrossSteps(t *testing.T) {
	f := newFixture()
	for i := 1; i <= 3; i++ {
		v := float64(i)
		f.slow(func(r *Router) { r.Graph(v, "velocity", 0, 10, InCategory("physics")) })
	}
	f.engine.FastPhase()

	view, ok := f.engine.Category("physics")
	require.True(t, ok)
	require.Len(t, view.Graphs, 1)
	assert.Equal(t, []float64{1, 2, 3}, view.Graphs[0].Samples)
	assert.Equal(t, TickSlow, view.Graphs[0].Origin)

	// no step between frames: nothing is pushed twice and nothing is torn down
	f.engine.FastPhase()
	view, ok = f.engine.Category("physics")
	require.True(t, ok)
	require.Len(t, view.Graphs, 1)
	assert.Equal(t, []float64{1, 2, 3}, view.Graphs[0].Samples)

	f.slow(func(r *Router) { r.Graph(4, "velocity", 0, 10, InCategory("physics")) })
	f.engine.FastPhase()
	view, _ = f.engine.Category("physics")
	assert.Equal(t, []float64{1, 2, 3, 4}, view.Graphs[0].Samples)
}

func TestEngineSlowGraphTornDownAfterSilentStep(t *testing.T) {
	f := newFixture()
	f.slow(func(r *Router) {
		r.Graph(1, "a", 0, 10, InCategory("physics"))
		r.Graph(1, "b", 0, 10, InCategory("physics"))
	})
	f.engine.FastPhase()
	f.host.take()

	f.slow(func(r *Router) { r.Graph(2, "a", 0, 10, InCategory("physics")) })
	f.engine.FastPhase()
	assert.Equal(t, []string{"-graph physics/b"}, f.host.take())

	f.slow(func(r *Router) {})
	f.engine.FastPhase()
	assert.Equal(t, []string{"-graph physics/a", "-cat physics"}, f.host.take())
}

func TestEngineToleratesSlowAfterFast(t *testing.T) {
	f := newFixture()
	// cycle 1: frame first, then the simulation step
	f.router.Text("frame", InCategory("c"))
	f.engine.FastPhase()
	f.slow(func(r *Router) { r.Graph(1, "g", 0, 1, InCategory("c")) })

	// cycle 2: the step's graph is still live when the frame closes
	f.engine.FastPhase()
	view, ok := f.engine.Category("c")
	require.True(t, ok)
	require.Len(t, view.Graphs, 1)
	assert.Equal(t, []float64{1}, view.Graphs[0].Samples)
	assert.Empty(t, view.Text)
}

func TestEngineReorderSignal(t *testing.T) {
	f := newFixture()
	f.router.Text("a", InCategory("one"))
	f.router.Graph(1, "g1", 0, 1, InCategory("one"))
	f.router.Graph(1, "g2", 0, 1, InCategory("two"))
	frame := f.engine.FastPhase()
	assert.True(t, frame.NeedsReorder)
	assert.Equal(t, 4, frame.Created)
	assert.Equal(t, []string{
		"+cat one", "+graph one/g1", "+cat two", "+graph two/g2", "reorder",
	}, f.host.take())

	f.router.Text("a", InCategory("one"))
	f.router.Graph(2, "g1", 0, 1, InCategory("one"))
	f.router.Graph(2, "g2", 0, 1, InCategory("two"))
	frame = f.engine.FastPhase()
	assert.False(t, frame.NeedsReorder)
	assert.Zero(t, frame.Created)
	assert.Empty(t, f.host.take())
}

func TestEngineReorderFromSlowCreationReportedOnFrame(t *testing.T) {
	f := newFixture()
	f.slow(func(r *Router) { r.Graph(1, "g", 0, 1, InCategory("s")) })
	f.slow(func(r *Router) { r.Graph(1, "h", 0, 1, InCategory("s")) })
	assert.NotContains(t, f.host.events, "reorder")

	frame := f.engine.FastPhase()
	assert.True(t, frame.NeedsReorder)
	assert.Equal(t, 1, countOf(f.host.take(), "reorder"))
}

func TestEngineDropsMalformedIdentity(t *testing.T) {
	f := newFixture()
	f.router.Text("no category", InCategory(""))
	f.router.Graph(1, "", 0, 1)
	f.engine.Enqueue(TickFast, nil)
	frame := f.engine.FastPhase()

	assert.True(t, frame.Empty)
	stats := f.engine.Stats()
	assert.Equal(t, uint64(3), stats.Dropped)
	assert.Zero(t, stats.Entries)
}

func TestEngineDisabledIsNoop(t *testing.T) {
	host := &recordingHost{}
	e := NewEngine(Config{Enabled: false, Host: host, Logger: quietLogger()})
	r := NewRouter(e, nil)
	r.Text("ignored")
	r.Graph(1, "g", 0, 1)
	e.SlowPhase()
	frame := e.FastPhase()

	assert.True(t, frame.Empty)
	assert.Empty(t, host.events)
	assert.Zero(t, e.Stats().Entries)
}

func TestEngineStatsAndClose(t *testing.T) {
	f := newFixture()
	f.router.Graph(1, "g1", 0, 1, InCategory("a"))
	f.router.Graph(1, "g2", 0, 1, InCategory("a"))
	f.router.Text("t", InCategory("b"))
	f.engine.FastPhase()

	stats := f.engine.Stats()
	assert.Equal(t, 2, stats.Categories)
	assert.Equal(t, 2, stats.Graphs)
	assert.Equal(t, uint64(3), stats.Entries)
	assert.Equal(t, uint64(1), stats.Cycles)
	f.host.take()

	f.engine.Close()
	assert.Equal(t, []string{"-graph a/g1", "-graph a/g2", "-cat a", "-cat b"}, f.host.take())
	assert.False(t, f.engine.Enabled())
	assert.Empty(t, f.engine.Categories())
}

func categoryNames(e *Engine) []string {
	var names []string
	for _, c := range e.Categories() {
		names = append(names, c.Name)
	}
	return names
}

func countOf(events []string, want string) int {
	n := 0
	for _, e := range events {
		if e == want {
			n++
		}
	}
	return n
}
