package diagram

import (
	"strings"
)

// Kind is the UML relationship type of a [Relationship].
type Kind string

// Relationship kinds.
const (
	Association Kind = "association"
	Inheritance Kind = "inheritance"
	Realization Kind = "realization"
	Dependency  Kind = "dependency"
	Aggregation Kind = "aggregation"
	Composition Kind = "composition"
)

// Kinds lists every recognised kind in a stable order.
var Kinds = []Kind{Association, Inheritance, Realization, Dependency, Aggregation, Composition}

// ParseKind normalizes s (case and surrounding space) into a Kind.
// Unrecognised values are returned as-is; check with [Kind.Known].
func ParseKind(s string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether k is one of the six recognised kinds.
func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Title returns the kind with its first letter upper-cased ("Composition").
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

func (k Kind) String() string { return string(k) }

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// Node is a rectangular class box. X and Y are the top-left corner.
type Node struct {
	ID     string  `json:"id" toml:"id"`
	Name   string  `json:"name,omitempty" toml:"name"`
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Center returns the midpoint of the rectangle.
func (n Node) Center() Point {
	return Point{X: n.X + n.Width/2, Y: n.Y + n.Height/2}
}

// DisplayName returns Name if set, otherwise the ID.
func (n Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Relationship is a directed, typed connection from one node to another.
type Relationship struct {
	ID   string `json:"id" toml:"id"`
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
	Kind Kind   `json:"kind" toml:"kind"`
}

// Diagram is a set of nodes and the relationships between them.
type Diagram struct {
	Name          string         `json:"name,omitempty"`
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// NodeSet is the caller-owned collection of nodes a relationship is resolved
// against. Order is irrelevant to lookups.
type NodeSet []Node

// Lookup returns the first node with the given id.
func (s NodeSet) Lookup(id string) (Node, bool) {
	for _, n := range s {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Resolve looks up both endpoints of r. ok is false if either is missing.
func Resolve(nodes NodeSet, r Relationship) (from, to Node, ok bool) {
	from, okFrom := nodes.Lookup(r.From)
	to, okTo := nodes.Lookup(r.To)
	return from, to, okFrom && okTo
}

// Dangling returns the relationships whose source or target is not in the
// diagram's node set.
func (d *Diagram) Dangling() []Relationship {
	var out []Relationship
	for _, r := range d.Relationships {
		if _, _, ok := Resolve(d.Nodes, r); !ok {
			out = append(out, r)
		}
	}
	return out
}

// Bounds returns the bounding box of all nodes. It does not consider
// relationship decorations, which may extend slightly past the box.
func (d *Diagram) Bounds() (minX, minY, maxX, maxY float64) {
	for i, n := range d.Nodes {
		if i == 0 {
			minX, minY, maxX, maxY = n.X, n.Y, n.X+n.Width, n.Y+n.Height
			continue
		}
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.X+n.Width)
		maxY = max(maxY, n.Y+n.Height)
	}
	return minX, minY, maxX, maxY
}
