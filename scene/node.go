package scene

import (
	"sort"

	"debug-overlay/core"
	"debug-overlay/overlay"
)

type NodeKind int

const (
	KindRoot NodeKind = iota
	KindCategory
	KindGraph
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindCategory:
		return "category"
	case KindGraph:
		return "graph"
	}
	return "unknown"
}

// Node is one widget of the overlay panel: the root, a category block or
// a graph box inside a category.
type Node struct {
	Name     string
	Kind     NodeKind
	Parent   *Node
	Children []*Node
	Visible  bool
	Id       uint32

	// Category nodes
	Text string

	// Graph nodes
	Color  core.Color
	Origin overlay.TickKind
	Graph  overlay.GraphSnapshot
}

var nodeIdCounter uint32 = 0

func NewNode(name string, kind NodeKind) *Node {
	nodeIdCounter++
	return &Node{
		Name:     name,
		Kind:     kind,
		Children: make([]*Node, 0),
		Visible:  true,
		Id:       nodeIdCounter,
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Child returns the direct child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SortChildren orders the subtree's children by name.
func (n *Node) SortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Name < n.Children[j].Name
	})
	for _, child := range n.Children {
		child.SortChildren()
	}
}

// Traverse visits all nodes in the tree
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
