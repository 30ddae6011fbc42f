// Package sink turns a whole [diagram.Diagram] into a finished artifact.
//
// # Overview
//
// Each sink pairs a concrete [render.Surface] with the code that paints the
// class boxes, so a relationship is drawn by exactly the same calls whether
// the target is vector or raster:
//
//   - SVG: [RenderSVG] writes boxes, labels and one <path> per stroke or fill
//   - PNG: [RenderPNG] rasterizes directly with fogleman/gg
//   - PDF: [RenderPDF] converts the SVG with rsvg-convert
//
// # Options
//
// All sinks share [Options]. The zero value is valid; unset fields fall back
// to [DefaultOptions]:
//
//	svg := sink.RenderSVG(d, sink.Options{Padding: 40})
//
// The canvas covers [diagram.Diagram.Bounds] plus padding on every side, so
// diagrams with negative coordinates are not clipped.
package sink
