package overlay

import "debug-overlay/core"

const (
	DefaultCategory = "Uncategorized"
	DefaultLength   = 100
)

// TickSource reports the cadence currently executing.
type TickSource interface {
	CurrentTick() TickKind
}

// TickSourceFunc adapts a function to TickSource.
type TickSourceFunc func() TickKind

func (f TickSourceFunc) CurrentTick() TickKind { return f() }

type options struct {
	category string
	length   int
	color    core.Color
	policy   DisplayPolicy
}

// Option overrides a per-call default. Text only looks at the category.
type Option func(*options)

func InCategory(name string) Option {
	return func(o *options) { o.category = name }
}

// WithLength sets the number of samples a new graph keeps.
func WithLength(n int) Option {
	return func(o *options) { o.length = n }
}

func WithColor(c core.Color) Option {
	return func(o *options) { o.color = c }
}

func WithPolicy(p DisplayPolicy) Option {
	return func(o *options) { o.policy = p }
}

// Router is the logging facade handed to client code. Every call is
// stamped with the cadence reported by the TickSource and buffered in the
// engine until the matching phase runs.
type Router struct {
	engine   *Engine
	clock    TickSource
	defaults []Option
}

// NewRouter binds a router to engine. A nil clock stamps every call as
// TickFast. defaults are applied before the options of each call.
func NewRouter(engine *Engine, clock TickSource, defaults ...Option) *Router {
	return &Router{engine: engine, clock: clock, defaults: defaults}
}

func (r *Router) resolve(opts []Option) options {
	o := options{
		category: DefaultCategory,
		length:   DefaultLength,
		color:    core.ColorWhite,
		policy:   PolicyPassThrough,
	}
	for _, opt := range r.defaults {
		opt(&o)
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (r *Router) tick() TickKind {
	if r.clock == nil {
		return TickFast
	}
	return r.clock.CurrentTick()
}

// Text logs one line under a category for the current cycle.
func (r *Router) Text(text string, opts ...Option) {
	if !r.engine.Enabled() {
		return
	}
	o := r.resolve(opts)
	r.engine.Enqueue(r.tick(), TextEntry{Category: o.category, Text: text})
}

// Graph pushes value to the graph named graphID, creating the graph with
// min, max and the call's options if it does not exist yet. Configuration
// passed after creation is ignored.
func (r *Router) Graph(value float64, graphID string, min, max float64, opts ...Option) {
	if !r.engine.Enabled() {
		return
	}
	o := r.resolve(opts)
	r.engine.Enqueue(r.tick(), GraphPoint{
		Category: o.category,
		GraphID:  graphID,
		Value:    value,
		Min:      min,
		Max:      max,
		Length:   o.length,
		Color:    o.color,
		Policy:   o.policy,
	})
}
