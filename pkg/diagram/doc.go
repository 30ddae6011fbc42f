// Package diagram defines the class-diagram model shared by the geometry,
// rendering and XMI packages.
//
// # Overview
//
// A [Diagram] holds rectangular class boxes ([Node]) and directed, typed
// connections between them ([Relationship]). Nodes are owned by the caller:
// classlink reads their geometry but never moves, creates or deletes them.
//
// Relationships reference nodes by identifier. A relationship whose source or
// target cannot be found in the node set is not an error; downstream packages
// simply produce no output for it. Use [NodeSet.Lookup] and [Resolve] to
// perform the by-id lookup the way the renderer does:
//
//	nodes := diagram.NodeSet(d.Nodes)
//	src, dst, ok := diagram.Resolve(nodes, rel)
//	if !ok {
//	    return // dangling relationship, draw nothing
//	}
//
// # Relationship Kinds
//
// Six kinds are recognised: [Association], [Inheritance], [Realization],
// [Dependency], [Aggregation] and [Composition]. [Kind] is string-backed so a
// diagram file may carry kinds this package does not know; [Kind.Known]
// reports whether a kind is one of the six.
//
// # Serialization
//
// [ReadJSON] and [WriteJSON] convert diagrams to and from the JSON exchange
// format used by the classlink CLI:
//
//	{
//	  "nodes": [{"id": "A", "x": 0, "y": 0, "width": 100, "height": 50}],
//	  "relationships": [{"id": "r1", "from": "A", "to": "B", "kind": "composition"}]
//	}
//
// Elements without an id are assigned a random UUID on import.
package diagram
