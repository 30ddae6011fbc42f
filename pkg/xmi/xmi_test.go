package xmi

import (
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/matzehuels/classlink/pkg/diagram"
)

func fragment(t *testing.T, kind diagram.Kind) *etree.Element {
	t.Helper()
	el := ToFragment(EtreeBuilder{}, diagram.Relationship{ID: "r1", From: "A", To: "B", Kind: kind})
	if el == nil {
		t.Fatalf("ToFragment(%q) = nil", kind)
	}
	return Unwrap(el)
}

func children(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.FullTag() == tag {
			out = append(out, c)
		}
	}
	return out
}

func attr(el *etree.Element, key string) string {
	return el.SelectAttrValue(key, "<missing>")
}

func ends(t *testing.T, assoc *etree.Element) (source, target *etree.Element) {
	t.Helper()
	conns := children(assoc, "UML:Association.connection")
	if len(conns) != 1 {
		t.Fatalf("connection count = %d, want 1", len(conns))
	}
	e := children(conns[0], "UML:AssociationEnd")
	if len(e) != 2 {
		t.Fatalf("end count = %d, want 2", len(e))
	}
	return e[0], e[1]
}

func TestGeneralization(t *testing.T) {
	el := fragment(t, diagram.Inheritance)

	if el.FullTag() != "UML:Generalization" {
		t.Fatalf("tag = %s, want UML:Generalization", el.FullTag())
	}
	for key, want := range map[string]string{
		"xmi.id":     "EAID_r1",
		"subtype":    "EAID_A",
		"supertype":  "EAID_B",
		"visibility": "public",
	} {
		if got := attr(el, key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	tags := children(el, "UML:ModelElement.taggedValue")
	if len(tags) != 1 || len(tags[0].ChildElements()) != 0 {
		t.Errorf("want one empty tagged-value container, got %d", len(tags))
	}
}

func TestAssociationKinds(t *testing.T) {
	tests := []struct {
		kind        diagram.Kind
		aggregation string
		eaType      string
	}{
		{diagram.Composition, "composite", "Composition"},
		{diagram.Aggregation, "shared", "Aggregation"},
		{diagram.Association, "none", "Association"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			el := fragment(t, tt.kind)
			if el.FullTag() != "UML:Association" {
				t.Fatalf("tag = %s, want UML:Association", el.FullTag())
			}
			for key, want := range map[string]string{
				"xmi.id":     "EAID_r1",
				"visibility": "public",
				"isRoot":     "false",
				"isLeaf":     "false",
				"isAbstract": "false",
			} {
				if got := attr(el, key); got != want {
					t.Errorf("%s = %q, want %q", key, got, want)
				}
			}

			tags := children(el, "UML:ModelElement.taggedValue")
			if len(tags) != 1 {
				t.Fatalf("tagged-value containers = %d, want 1", len(tags))
			}
			tv := children(tags[0], "UML:TaggedValue")
			if len(tv) != 1 || attr(tv[0], "tag") != "ea_type" || attr(tv[0], "value") != tt.eaType {
				t.Errorf("ea_type tagged value wrong: %d values", len(tv))
			}

			source, target := ends(t, el)
			if got := attr(source, "aggregation"); got != tt.aggregation {
				t.Errorf("source aggregation = %q, want %q", got, tt.aggregation)
			}
			if got := attr(target, "aggregation"); got != "none" {
				t.Errorf("target aggregation = %q, want none", got)
			}
			if got := attr(source, "isNavigable"); got != "false" {
				t.Errorf("source isNavigable = %q, want false", got)
			}
			if got := attr(target, "isNavigable"); got != "true" {
				t.Errorf("target isNavigable = %q, want true", got)
			}
			if attr(source, "type") != "EAID_A" || attr(target, "type") != "EAID_B" {
				t.Errorf("end types = %q, %q", attr(source, "type"), attr(target, "type"))
			}
			for _, end := range []*etree.Element{source, target} {
				for key, want := range map[string]string{
					"visibility":  "public",
					"isOrdered":   "false",
					"targetScope": "instance",
					"changeable":  "none",
				} {
					if got := attr(end, key); got != want {
						t.Errorf("end %s = %q, want %q", key, got, want)
					}
				}
				if len(children(end, "UML:ModelElement.taggedValue")) != 1 {
					t.Error("end is missing its tagged-value container")
				}
			}
		})
	}
}

// Realization renders with an arrowhead but has no metamodel mapping; the
// exporter must keep returning nil for it.
func TestNoFragment(t *testing.T) {
	for _, kind := range []diagram.Kind{diagram.Realization, diagram.Dependency, "friendship", ""} {
		rel := diagram.Relationship{ID: "r1", From: "A", To: "B", Kind: kind}
		if el := ToFragment(EtreeBuilder{}, rel); el != nil {
			t.Errorf("ToFragment(%q) = %v, want nil", kind, el)
		}
		if Exportable(kind) {
			t.Errorf("Exportable(%q) = true", kind)
		}
	}
}

func TestFragmentWithoutGeometry(t *testing.T) {
	// Export only uses identifiers, so endpoints absent from any node set
	// still produce a fragment.
	rel := diagram.Relationship{ID: "r9", From: "Ghost", To: "Nowhere", Kind: diagram.Composition}
	el := Unwrap(ToFragment(EtreeBuilder{}, rel))
	if el == nil {
		t.Fatal("ToFragment() = nil for dangling composition")
	}
	source, _ := ends(t, el)
	if attr(source, "type") != "EAID_Ghost" {
		t.Errorf("source type = %q", attr(source, "type"))
	}
}

type recordingBuilder struct {
	created []string
}

type recordedElement struct {
	name     string
	attrs    [][2]string
	children []Element
}

func (b *recordingBuilder) CreateElement(name string) Element {
	b.created = append(b.created, name)
	return &recordedElement{name: name}
}

func (e *recordedElement) SetAttr(name, value string) {
	e.attrs = append(e.attrs, [2]string{name, value})
}

func (e *recordedElement) AppendChild(c Element) { e.children = append(e.children, c) }

func TestToFragmentUsesBuilder(t *testing.T) {
	b := &recordingBuilder{}
	el := ToFragment(b, diagram.Relationship{ID: "r1", From: "A", To: "B", Kind: diagram.Aggregation})

	root, ok := el.(*recordedElement)
	if !ok {
		t.Fatalf("fragment type = %T, want *recordedElement", el)
	}
	if root.name != "UML:Association" || len(root.children) != 2 {
		t.Errorf("root = %s with %d children", root.name, len(root.children))
	}
	if len(b.created) != 8 {
		t.Errorf("created %d elements, want 8: %v", len(b.created), b.created)
	}
	if Unwrap(el) != nil {
		t.Error("Unwrap() of foreign element should be nil")
	}
}

func TestDocument(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: diagram.NodeSet{
			{ID: "A", Name: "Order", Width: 100, Height: 50},
			{ID: "B", Name: "Customer", X: 200, Width: 100, Height: 50},
		},
		Relationships: []diagram.Relationship{
			{ID: "r1", From: "A", To: "B", Kind: diagram.Composition},
			{ID: "r2", From: "A", To: "B", Kind: diagram.Realization},
			{ID: "r3", From: "A", To: "B", Kind: diagram.Inheritance},
		},
	}

	doc := NewDocument("Shop", WithModelID("MX_EAID_model"), WithTimestamp("2026-01-02 03:04:05"))
	skipped := doc.AddDiagram(d)
	if len(skipped) != 1 || skipped[0].ID != "r2" {
		t.Errorf("skipped = %v, want [r2]", skipped)
	}
	if classes, rels := doc.Counts(); classes != 2 || rels != 2 {
		t.Errorf("Counts() = %d, %d, want 2, 2", classes, rels)
	}

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("missing XML declaration: %.60s", out)
	}

	parsed := etree.NewDocument()
	if err := parsed.ReadFromBytes(data); err != nil {
		t.Fatalf("ReadFromBytes() error: %v", err)
	}
	root := parsed.Root()
	if root.Tag != "XMI" || attr(root, "xmi.version") != "1.1" || attr(root, "timestamp") != "2026-01-02 03:04:05" {
		t.Fatalf("unexpected root %s %v", root.Tag, root.Attr)
	}

	content := children(root, "XMI.content")
	if len(content) != 1 {
		t.Fatal("missing XMI.content")
	}
	models := children(content[0], "UML:Model")
	if len(models) != 1 || attr(models[0], "name") != "Shop" || attr(models[0], "xmi.id") != "MX_EAID_model" {
		t.Fatal("missing or wrong UML:Model")
	}
	owned := children(models[0], "UML:Namespace.ownedElement")[0]

	classes := children(owned, "UML:Class")
	if len(classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(classes))
	}
	if attr(classes[0], "name") != "Order" || attr(classes[0], "xmi.id") != "EAID_A" || attr(classes[0], "namespace") != "MX_EAID_model" {
		t.Errorf("class attrs wrong: %v", classes[0].Attr)
	}
	if len(children(owned, "UML:Association")) != 1 {
		t.Error("want one association")
	}
	if len(children(owned, "UML:Generalization")) != 1 {
		t.Error("want one generalization")
	}

	header := children(root, "XMI.header")
	if len(header) != 1 || !strings.Contains(out, "<XMI.exporter>classlink</XMI.exporter>") {
		t.Error("missing exporter header")
	}
}

func TestDocumentGeneratedModelID(t *testing.T) {
	a := NewDocument("A")
	b := NewDocument("B")
	if a.modelID == b.modelID {
		t.Error("generated model ids collide")
	}
	if !strings.HasPrefix(a.modelID, "MX_EAID_") {
		t.Errorf("modelID = %q", a.modelID)
	}
}

func TestExport(t *testing.T) {
	d := &diagram.Diagram{
		Nodes:         diagram.NodeSet{{ID: "A"}, {ID: "B"}},
		Relationships: []diagram.Relationship{{ID: "r1", From: "A", To: "B", Kind: diagram.Dependency}},
	}
	data, skipped, err := Export(d, "M")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %d, want 1", len(skipped))
	}
	if strings.Contains(string(data), "UML:Association") {
		t.Error("dependency should not be exported")
	}
}
