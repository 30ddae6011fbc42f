// Package nodelink renders class diagrams through Graphviz.
//
// # Overview
//
// Instead of painting relationships at the caller's node positions, this
// package hands the diagram to Graphviz, which routes edges and (optionally)
// lays out the boxes itself. Relationship kinds map to Graphviz arrowheads
// using the same style table as the native renderer:
//
//	association   arrowhead=none
//	inheritance   arrowhead=empty
//	realization   arrowhead=empty
//	dependency    arrowhead=empty, style=dashed
//	aggregation   arrowhead=odiamond
//	composition   arrowhead=diamond
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Set [Options.Pinned] to keep the diagram's own coordinates (neato with
// pinned positions) rather than a dot hierarchy.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
