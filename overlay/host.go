package overlay

// Host receives lifecycle events for the display nodes that mirror the
// engine's categories and graphs. Events are delivered synchronously from
// SlowPhase and FastPhase. Graph teardown is reported before the teardown
// of its category.
type Host interface {
	CategoryCreated(name string)
	CategoryDestroyed(name string)
	GraphCreated(category string, graph GraphSnapshot)
	GraphDestroyed(category, graphID string)
	// Reorder asks the host to re-sort its nodes: categories by name, then
	// graphs by id within each category. It fires at most once per FastPhase.
	Reorder()
}

// NopHost ignores every event.
type NopHost struct{}

func (NopHost) CategoryCreated(string) {}
func (NopHost) CategoryDestroyed(string) {}
func (NopHost) GraphCreated(string, GraphSnapshot) {}
func (NopHost) GraphDestroyed(string, string) {}
func (NopHost) Reorder() {}

// Hosts fans events out to several hosts in order.
type Hosts []Host

func (hs Hosts) CategoryCreated(name string) {
	for _, h := range hs {
		h.CategoryCreated(name)
	}
}

func (hs Hosts) CategoryDestroyed(name string) {
	for _, h := range hs {
		h.CategoryDestroyed(name)
	}
}

func (hs Hosts) GraphCreated(category string, graph GraphSnapshot) {
	for _, h := range hs {
		h.GraphCreated(category, graph)
	}
}

func (hs Hosts) GraphDestroyed(category, graphID string) {
	for _, h := range hs {
		h.GraphDestroyed(category, graphID)
	}
}

func (hs Hosts) Reorder() {
	for _, h := range hs {
		h.Reorder()
	}
}
