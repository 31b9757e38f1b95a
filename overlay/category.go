package overlay

import (
	"sort"
	"strings"
)

// Category aggregates the text lines and graphs logged under one name.
//
// Each cadence keeps its own window of text lines and a "seen" mark. The
// Fast window covers one cycle; the Slow window lasts until the engine
// starts the next SlowPhase, so simulation-step output stays visible across
// frames in which no simulation step ran. Slow text shows only the latest
// simulation step that logged to the category.
type Category struct {
	Name string

	text   [2][]string
	seen   [2]bool
	graphs *GraphRegistry
	blob   string
}

func NewCategory(name string) *Category {
	return &Category{
		Name:   name,
		graphs: NewGraphRegistry(),
	}
}

// Reconcile folds entries logged from one cadence into the category, in
// arrival order. Graph points are pushed immediately. It returns the ids of
// graphs created by this call.
//
// A Slow call replaces the Slow text of earlier steps in the window. Graph
// ids and the seen mark keep accumulating until ResetWindow.
func (c *Category) Reconcile(kind TickKind, entries []Entry) []string {
	if kind == TickSlow && len(entries) > 0 {
		c.text[TickSlow] = c.text[TickSlow][:0]
	}
	var points []GraphPoint
	for _, e := range entries {
		switch e := e.(type) {
		case TextEntry:
			c.text[kind] = append(c.text[kind], e.Text)
		case GraphPoint:
			points = append(points, e)
		default:
			continue
		}
		c.seen[kind] = true
	}
	if len(points) == 0 {
		return nil
	}
	return c.graphs.Reconcile(points, kind)
}

// Evaluate closes a cycle. It rebuilds the text blob from both windows,
// removes silent graphs and resets the Fast window. alive is false when
// neither cadence referenced the category; the caller then drops it.
func (c *Category) Evaluate() (alive bool, removed []string) {
	alive = c.seen[TickFast] || c.seen[TickSlow]

	lines := make([]string, 0, len(c.text[TickFast])+len(c.text[TickSlow]))
	lines = append(lines, c.text[TickFast]...)
	lines = append(lines, c.text[TickSlow]...)
	sort.Strings(lines)
	c.blob = strings.Join(lines, "\n")

	removed = c.graphs.Sweep()
	c.ResetWindow(TickFast)
	return alive, removed
}

// ResetWindow clears what the given cadence contributed so far.
func (c *Category) ResetWindow(kind TickKind) {
	c.text[kind] = c.text[kind][:0]
	c.seen[kind] = false
	c.graphs.ResetWindow(kind)
}

// Text returns the display blob built by the last Evaluate.
func (c *Category) Text() string { return c.blob }

func (c *Category) Graphs() *GraphRegistry { return c.graphs }

// View copies the category for rendering.
func (c *Category) View() CategoryView {
	return CategoryView{
		Name:   c.Name,
		Text:   c.blob,
		Graphs: c.graphs.Snapshots(),
	}
}
