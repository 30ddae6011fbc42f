// Package render draws UML relationships onto an abstract drawing surface.
//
// # Overview
//
// A relationship is drawn as a straight line between the two boundary points
// resolved by [geometry.Endpoints], followed by a terminal decoration at the
// target end. What the line and decoration look like depends only on the
// relationship kind and is fixed by the [Styles] table:
//
//	association  solid   none
//	inheritance  solid   open arrowhead
//	realization  solid   open arrowhead
//	dependency   dashed  open arrowhead (drawn solid)
//	aggregation  solid   open diamond
//	composition  solid   filled diamond
//
// # Surfaces
//
// Rendering targets the [Surface] interface, a minimal canvas-style path API.
// Concrete surfaces live in [sink] (SVG, PNG, PDF). [Recorder] captures the
// calls for inspection in tests.
//
//	var rec render.Recorder
//	render.Draw(&rec, rel, nodes)
//
// Drawing mutates surface state (current path, fill color, dash pattern).
// Every routine that turns dashing on restores the solid pattern before it
// returns.
//
// # Format Conversion
//
// [ToPDF] converts SVG output to PDF with the external rsvg-convert tool
// (from librsvg). PNG output is rasterized natively by the [sink] package.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage lays out a diagram with Graphviz instead of using
// the caller's node positions.
//
// [geometry.Endpoints]: github.com/matzehuels/classlink/pkg/geometry#Endpoints
// [sink]: github.com/matzehuels/classlink/pkg/render/sink
// [nodelink]: github.com/matzehuels/classlink/pkg/render/nodelink
package render
