package overlay

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Config configures an Engine.
type Config struct {
	// Enabled=false turns every call into a no-op, the equivalent of a
	// release build.
	Enabled bool
	Host    Host
	Logger  logrus.FieldLogger
}

// Engine owns every category and reconciles entries from the two cadences.
// It is not safe for concurrent use: SlowPhase, FastPhase and the Router
// must be called from the same update loop.
type Engine struct {
	enabled bool
	host    Host
	log     logrus.FieldLogger

	pending    [2][]Entry
	categories map[string]*Category

	// slowStale is set by FastPhase; the next SlowPhase then opens a new
	// Slow window.
	slowStale    bool
	needsReorder bool
	created      int

	entries uint64
	dropped uint64
	cycles  uint64
}

func NewEngine(cfg Config) *Engine {
	host := cfg.Host
	if host == nil {
		host = NopHost{}
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "overlay")
	}
	return &Engine{
		enabled:    cfg.Enabled,
		host:       host,
		log:        log,
		categories: make(map[string]*Category),
	}
}

func (e *Engine) Enabled() bool { return e.enabled }

// Enqueue buffers an entry for the next phase of the given cadence.
// Entries with an empty category or graph id are dropped.
func (e *Engine) Enqueue(kind TickKind, entry Entry) {
	if !e.enabled {
		return
	}
	if entry == nil || !valid(entry) {
		e.dropped++
		e.log.WithField("tick", kind).Debug("dropping entry without identity")
		return
	}
	e.entries++
	e.pending[kind] = append(e.pending[kind], entry)
}

// SlowPhase drains entries logged from simulation steps and applies them
// at once. It may run any number of times between two FastPhase calls.
func (e *Engine) SlowPhase() {
	if !e.enabled {
		return
	}
	if e.slowStale {
		for _, c := range e.categories {
			c.ResetWindow(TickSlow)
		}
		e.slowStale = false
	}
	e.reconcile(TickSlow, e.drain(TickSlow))
}

// FastPhase drains entries logged from render steps, then closes the cycle:
// silent graphs and categories are torn down and the text blobs rebuilt.
func (e *Engine) FastPhase() Frame {
	if !e.enabled {
		return Frame{Empty: true}
	}
	e.reconcile(TickFast, e.drain(TickFast))
	return e.evaluate()
}

func (e *Engine) drain(kind TickKind) []Entry {
	entries := e.pending[kind]
	e.pending[kind] = make([]Entry, 0, cap(entries))
	return entries
}

// reconcile is shared by both phases. Entries are grouped per category in
// order of first appearance; arrival order inside a category is kept.
func (e *Engine) reconcile(kind TickKind, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	var order []string
	groups := make(map[string][]Entry)
	for _, en := range entries {
		name := en.CategoryName()
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], en)
	}

	for _, name := range order {
		cat, ok := e.categories[name]
		if !ok {
			cat = NewCategory(name)
			e.categories[name] = cat
			e.markCreated()
			e.log.WithFields(logrus.Fields{"category": name, "tick": kind}).Debug("category created")
			e.host.CategoryCreated(name)
		}
		for _, id := range cat.Reconcile(kind, groups[name]) {
			g, _ := cat.graphs.Get(id)
			e.markCreated()
			e.log.WithFields(logrus.Fields{"category": name, "graph": id, "tick": kind}).Debug("graph created")
			e.host.GraphCreated(name, g.Snapshot())
		}
	}
}

func (e *Engine) markCreated() {
	e.created++
	e.needsReorder = true
}

func (e *Engine) evaluate() Frame {
	destroyed := 0
	for _, name := range e.names() {
		cat := e.categories[name]
		alive, removed := cat.Evaluate()
		for _, id := range removed {
			destroyed++
			e.log.WithFields(logrus.Fields{"category": name, "graph": id}).Debug("graph destroyed")
			e.host.GraphDestroyed(name, id)
		}
		if !alive {
			delete(e.categories, name)
			destroyed++
			e.log.WithField("category", name).Debug("category destroyed")
			e.host.CategoryDestroyed(name)
		}
	}
	e.slowStale = true
	e.cycles++

	frame := Frame{
		NeedsReorder: e.needsReorder,
		Empty:        len(e.categories) == 0,
		Created:      e.created,
		Destroyed:    destroyed,
	}
	if e.needsReorder {
		e.host.Reorder()
	}
	e.needsReorder = false
	e.created = 0
	return frame
}

// names returns live category names in display order.
func (e *Engine) names() []string {
	names := make([]string, 0, len(e.categories))
	for name := range e.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns every live category in display order.
func (e *Engine) Categories() []CategoryView {
	names := e.names()
	out := make([]CategoryView, 0, len(names))
	for _, name := range names {
		out = append(out, e.categories[name].View())
	}
	return out
}

func (e *Engine) Category(name string) (CategoryView, bool) {
	c, ok := e.categories[name]
	if !ok {
		return CategoryView{}, false
	}
	return c.View(), true
}

func (e *Engine) Stats() Stats {
	s := Stats{
		Categories: len(e.categories),
		Entries:    e.entries,
		Dropped:    e.dropped,
		Cycles:     e.cycles,
	}
	for _, c := range e.categories {
		s.Graphs += c.graphs.Len()
	}
	return s
}

// Close tears down every category, reporting each teardown to the host,
// and disables the engine.
func (e *Engine) Close() {
	for _, name := range e.names() {
		cat := e.categories[name]
		for _, id := range cat.graphs.IDs() {
			e.host.GraphDestroyed(name, id)
		}
		delete(e.categories, name)
		e.host.CategoryDestroyed(name)
	}
	e.pending[TickFast] = nil
	e.pending[TickSlow] = nil
	e.enabled = false
}
