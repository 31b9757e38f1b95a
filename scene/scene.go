package scene

import (
	"github.com/sirupsen/logrus"

	"debug-overlay/overlay"
)

// EmptyMessage is shown when no category is live.
const EmptyMessage = "No log entries"

// Scene is the retained widget tree of the overlay panel. It implements
// overlay.Host: the engine creates and destroys nodes through lifecycle
// events, and Sync copies the latest text and samples into them.
type Scene struct {
	Root    *Node
	Visible bool

	categories map[string]*Node
	log        logrus.FieldLogger
}

func NewScene(log logrus.FieldLogger) *Scene {
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "scene")
	}
	return &Scene{
		Root:       NewNode("Root", KindRoot),
		Visible:    true,
		categories: make(map[string]*Node),
		log:        log,
	}
}

func (s *Scene) CategoryCreated(name string) {
	if _, ok := s.categories[name]; ok {
		return
	}
	node := NewNode(name, KindCategory)
	s.categories[name] = node
	s.Root.AddChild(node)
}

func (s *Scene) CategoryDestroyed(name string) {
	node, ok := s.categories[name]
	if !ok {
		return
	}
	delete(s.categories, name)
	s.Root.RemoveChild(node)
}

func (s *Scene) GraphCreated(category string, graph overlay.GraphSnapshot) {
	parent, ok := s.categories[category]
	if !ok {
		s.log.WithFields(logrus.Fields{"category": category, "graph": graph.ID}).Warn("graph for unknown category")
		return
	}
	if parent.Child(graph.ID) != nil {
		return
	}
	node := NewNode(graph.ID, KindGraph)
	node.Color = graph.Color
	node.Origin = graph.Origin
	node.Graph = graph
	parent.AddChild(node)
}

func (s *Scene) GraphDestroyed(category, graphID string) {
	parent, ok := s.categories[category]
	if !ok {
		return
	}
	if node := parent.Child(graphID); node != nil {
		parent.RemoveChild(node)
	}
}

// Reorder sorts categories, and the graphs inside each, by name.
func (s *Scene) Reorder() {
	s.Root.SortChildren()
}

// Sync copies the current engine state into the existing nodes. Views for
// categories or graphs the scene has no node for are ignored.
func (s *Scene) Sync(views []overlay.CategoryView) {
	for _, v := range views {
		node, ok := s.categories[v.Name]
		if !ok {
			continue
		}
		node.Text = v.Text
		for _, g := range v.Graphs {
			if child := node.Child(g.ID); child != nil {
				child.Graph = g
			}
		}
	}
}

// Category returns the node for a live category.
func (s *Scene) Category(name string) (*Node, bool) {
	n, ok := s.categories[name]
	return n, ok
}

// Categories returns category nodes in panel order.
func (s *Scene) Categories() []*Node {
	return s.Root.Children
}

// Empty reports whether the "no log entries" message should be shown.
func (s *Scene) Empty() bool { return len(s.categories) == 0 }

func (s *Scene) SetVisible(v bool) {
	if s.Visible != v {
		s.log.WithField("visible", v).Info("[Overlay] visibility changed")
	}
	s.Visible = v
}

func (s *Scene) ToggleVisible() { s.SetVisible(!s.Visible) }
