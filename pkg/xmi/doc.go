// Package xmi exports class diagrams as XMI 1.1 (UML 1.3) metamodel
// documents, the interchange format read by Enterprise Architect and other
// modeling tools.
//
// # Fragments
//
// [ToFragment] maps one relationship onto a metamodel fragment through an
// abstract [Builder]:
//
//	inheritance                         UML:Generalization
//	association, aggregation,
//	composition                         UML:Association (two ends)
//	realization, dependency, unknown    nothing (nil)
//
// Realization and dependency have no fragment. Callers that assemble full
// documents should report them as skipped rather than guess a mapping.
//
// Fragments only carry identifiers, so exporting never needs node geometry
// and never fails when an endpoint is missing from the diagram.
//
// # Documents
//
// [Document] assembles a complete file: header, model, one UML:Class per
// node and one fragment per exportable relationship. It is built on
// [github.com/beevik/etree] via [EtreeBuilder].
//
//	doc := xmi.NewDocument("Orders")
//	skipped := doc.AddDiagram(d)
//	_, err := doc.WriteTo(w)
package xmi
