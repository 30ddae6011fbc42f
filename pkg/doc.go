// Package pkg provides the libraries behind classlink, which draws and
// exports the relationships of a UML class diagram.
//
// # Overview
//
// A diagram is a set of rectangular class boxes and typed relationships
// between them. For each relationship classlink finds where the
// center-to-center line leaves the source box and enters the target box,
// draws the line with the UML decoration of its kind, and can serialize it
// as an XMI 1.1 fragment.
//
//  1. [diagram] - nodes, relationships, kinds, JSON import
//  2. [geometry] - boundary points of a relationship
//  3. [render] - line and decoration drawing on an abstract Surface
//  4. [xmi] - Generalization/Association fragments and whole documents
//  5. [pipeline] - load → render/export with caching
//
// # Data Flow
//
//	diagram JSON
//	     ↓
//	[diagram] (ids assigned, kinds normalized)
//	     ↓
//	[geometry] (start and end point per relationship)
//	     ↓
//	[render] → [render/sink] (SVG, PNG, PDF) or [render/nodelink] (DOT, Graphviz)
//	[xmi]    → XMI 1.1 document
//
// # Quick Start
//
//	d, err := diagram.ImportJSON("shapes.json")
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(d, sink.DefaultOptions())
//	model, skipped, err := xmi.Export(d, "Shapes")
//
// Or through the pipeline, which adds caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.ExecuteFile(ctx, "shapes.json", pipeline.Options{
//	    Formats: []string{"svg", "xmi"},
//	})
//
// # Supporting Packages
//
//   - [cache]: null, file and Redis artifact caches
//   - [errors]: coded errors shared by loaders, pipeline and CLI
//   - [observability]: hooks for load, render, export and cache events
//   - [buildinfo]: version information set at link time
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/diagram
// [geometry]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/geometry
// [render]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/render/nodelink
// [xmi]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/xmi
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/classlink/pkg/buildinfo
package pkg
