package xmi

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/matzehuels/classlink/pkg/buildinfo"
	"github.com/matzehuels/classlink/pkg/diagram"
)

// Option configures a Document.
type Option func(*Document)

// WithModelID fixes the model identifier instead of generating one.
func WithModelID(id string) Option { return func(d *Document) { d.modelID = id } }

// WithTimestamp records t (already formatted) on the XMI root.
func WithTimestamp(t string) Option { return func(d *Document) { d.timestamp = t } }

// Document is an XMI 1.1 file under construction.
type Document struct {
	doc       *etree.Document
	owned     *etree.Element
	builder   EtreeBuilder
	modelID   string
	timestamp string
	classes   int
	exported  int
}

// NewDocument starts a document whose model is called name.
func NewDocument(name string, opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	if d.modelID == "" {
		d.modelID = "MX_" + ID(uuid.NewString())
	}

	d.doc = etree.NewDocument()
	d.doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := d.doc.CreateElement("XMI")
	root.CreateAttr("xmi.version", "1.1")
	root.CreateAttr("xmlns:UML", "omg.org/UML1.3")
	if d.timestamp != "" {
		root.CreateAttr("timestamp", d.timestamp)
	}

	docs := root.CreateElement("XMI.header").CreateElement("XMI.documentation")
	docs.CreateElement("XMI.exporter").SetText(buildinfo.Name)
	docs.CreateElement("XMI.exporterVersion").SetText(buildinfo.Version)

	model := root.CreateElement("XMI.content").CreateElement("UML:Model")
	model.CreateAttr("name", name)
	model.CreateAttr("xmi.id", d.modelID)
	d.owned = model.CreateElement("UML:Namespace.ownedElement")
	return d
}

// AddClass adds a UML:Class for n.
func (d *Document) AddClass(n diagram.Node) {
	c := d.owned.CreateElement("UML:Class")
	c.CreateAttr("name", n.DisplayName())
	c.CreateAttr("xmi.id", ID(n.ID))
	c.CreateAttr("visibility", "public")
	c.CreateAttr("namespace", d.modelID)
	c.CreateAttr("isRoot", "false")
	c.CreateAttr("isLeaf", "false")
	c.CreateAttr("isAbstract", "false")
	c.CreateAttr("isActive", "false")

	tags := c.CreateElement("UML:ModelElement.taggedValue")
	for _, tv := range [][2]string{
		{"ea_stype", "Class"},
		{"ea_localid", n.ID},
	} {
		el := tags.CreateElement("UML:TaggedValue")
		el.CreateAttr("tag", tv[0])
		el.CreateAttr("value", tv[1])
	}
	d.classes++
}

// AddRelationship appends the fragment for rel. It reports false when the
// kind has no fragment.
func (d *Document) AddRelationship(rel diagram.Relationship) bool {
	frag := ToFragment(d.builder, rel)
	if frag == nil {
		return false
	}
	d.owned.AddChild(Unwrap(frag))
	d.exported++
	return true
}

// AddDiagram adds every node and relationship of dg and returns the
// relationships that could not be exported.
func (d *Document) AddDiagram(dg *diagram.Diagram) []diagram.Relationship {
	for _, n := range dg.Nodes {
		d.AddClass(n)
	}
	var skipped []diagram.Relationship
	for _, rel := range dg.Relationships {
		if !d.AddRelationship(rel) {
			skipped = append(skipped, rel)
		}
	}
	return skipped
}

// Counts returns the number of classes and relationship fragments added.
func (d *Document) Counts() (classes, relationships int) {
	return d.classes, d.exported
}

// WriteTo writes the indented document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	n, err := d.doc.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write xmi: %w", err)
	}
	return n, nil
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export renders dg as a complete XMI document named name. The skipped
// relationships are returned alongside the output.
func Export(dg *diagram.Diagram, name string, opts ...Option) ([]byte, []diagram.Relationship, error) {
	doc := NewDocument(name, opts...)
	skipped := doc.AddDiagram(dg)
	data, err := doc.Bytes()
	if err != nil {
		return nil, nil, err
	}
	return data, skipped, nil
}
