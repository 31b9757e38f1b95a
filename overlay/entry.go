package overlay

import (
	"fmt"
	"strings"

	"debug-overlay/core"
)

// TickKind identifies the cadence an entry was logged from.
type TickKind int

const (
	TickFast TickKind = iota // variable-rate render step
	TickSlow                 // fixed-rate simulation step
)

func (k TickKind) String() string {
	switch k {
	case TickFast:
		return "fast"
	case TickSlow:
		return "slow"
	default:
		return fmt.Sprintf("TickKind(%d)", int(k))
	}
}

// DisplayPolicy controls how samples outside [min, max] are stored.
type DisplayPolicy int

const (
	PolicyPassThrough DisplayPolicy = iota // store raw, line leaves the box
	PolicyClip                             // clamp into [min, max]
	PolicyAutoScale                        // widen bounds to floor/ceil of the sample
)

func (p DisplayPolicy) String() string {
	switch p {
	case PolicyPassThrough:
		return "passthrough"
	case PolicyClip:
		return "clip"
	case PolicyAutoScale:
		return "autoscale"
	default:
		return fmt.Sprintf("DisplayPolicy(%d)", int(p))
	}
}

// ParsePolicy accepts the names produced by DisplayPolicy.String plus
// "default" and the empty string for pass-through.
func ParsePolicy(s string) (DisplayPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "passthrough", "pass-through":
		return PolicyPassThrough, nil
	case "clip":
		return PolicyClip, nil
	case "autoscale", "auto-scale":
		return PolicyAutoScale, nil
	}
	return PolicyPassThrough, fmt.Errorf("unknown display policy %q", s)
}

// Entry is either a TextEntry or a GraphPoint.
type Entry interface {
	CategoryName() string
	isEntry()
}

// TextEntry is one line of text for a category.
type TextEntry struct {
	Category string
	Text     string
}

func (e TextEntry) CategoryName() string { return e.Category }
func (TextEntry) isEntry() {}

// GraphPoint is one sample for a graph. Min, Max, Length, Color and Policy
// only matter for the point that creates the graph.
type GraphPoint struct {
	Category string
	GraphID  string
	Value    float64
	Min      float64
	Max      float64
	Length   int
	Color    core.Color
	Policy   DisplayPolicy
}

func (p GraphPoint) CategoryName() string { return p.Category }
func (GraphPoint) isEntry() {}

// valid reports whether the entry carries a usable identity.
func valid(e Entry) bool {
	if e.CategoryName() == "" {
		return false
	}
	if p, ok := e.(GraphPoint); ok && p.GraphID == "" {
		return false
	}
	return true
}
