package xmi

import "github.com/matzehuels/classlink/pkg/diagram"

// IDPrefix namespaces every exported identifier.
const IDPrefix = "EAID_"

// ID returns the exported identifier for a node or relationship id.
func ID(id string) string { return IDPrefix + id }

type branch int

const (
	branchNone branch = iota
	branchGeneralization
	branchAssociation
)

// branches maps each kind to its fragment shape. Kinds missing from the table
// (realization, dependency and anything unrecognised) export nothing.
var branches = map[diagram.Kind]branch{
	diagram.Inheritance: branchGeneralization,
	diagram.Association: branchAssociation,
	diagram.Aggregation: branchAssociation,
	diagram.Composition: branchAssociation,
}

// aggregation is the source end's aggregation attribute per association kind.
var aggregation = map[diagram.Kind]string{
	diagram.Association: "none",
	diagram.Aggregation: "shared",
	diagram.Composition: "composite",
}

// Exportable reports whether kind produces a fragment.
func Exportable(kind diagram.Kind) bool {
	return branches[kind] != branchNone
}

// ToFragment builds the metamodel fragment for rel, or returns nil when its
// kind has none.
func ToFragment(b Builder, rel diagram.Relationship) Element {
	switch branches[rel.Kind] {
	case branchGeneralization:
		return generalization(b, rel)
	case branchAssociation:
		return association(b, rel)
	default:
		return nil
	}
}

func generalization(b Builder, rel diagram.Relationship) Element {
	el := b.CreateElement("UML:Generalization")
	el.SetAttr("xmi.id", ID(rel.ID))
	el.SetAttr("subtype", ID(rel.From))
	el.SetAttr("supertype", ID(rel.To))
	el.SetAttr("visibility", "public")
	el.AppendChild(b.CreateElement("UML:ModelElement.taggedValue"))
	return el
}

func association(b Builder, rel diagram.Relationship) Element {
	el := b.CreateElement("UML:Association")
	el.SetAttr("xmi.id", ID(rel.ID))
	el.SetAttr("visibility", "public")
	el.SetAttr("isRoot", "false")
	el.SetAttr("isLeaf", "false")
	el.SetAttr("isAbstract", "false")

	tags := b.CreateElement("UML:ModelElement.taggedValue")
	tags.AppendChild(taggedValue(b, "ea_type", rel.Kind.Title()))
	el.AppendChild(tags)

	source := b.CreateElement("UML:AssociationEnd")
	source.SetAttr("visibility", "public")
	source.SetAttr("isOrdered", "false")
	source.SetAttr("targetScope", "instance")
	source.SetAttr("changeable", "none")
	source.SetAttr("isNavigable", "false")
	source.SetAttr("type", ID(rel.From))
	source.SetAttr("aggregation", aggregation[rel.Kind])
	source.AppendChild(b.CreateElement("UML:ModelElement.taggedValue"))

	target := b.CreateElement("UML:AssociationEnd")
	target.SetAttr("visibility", "public")
	target.SetAttr("aggregation", "none")
	target.SetAttr("isOrdered", "false")
	target.SetAttr("targetScope", "instance")
	target.SetAttr("changeable", "none")
	target.SetAttr("isNavigable", "true")
	target.SetAttr("type", ID(rel.To))
	target.AppendChild(b.CreateElement("UML:ModelElement.taggedValue"))

	conn := b.CreateElement("UML:Association.connection")
	conn.AppendChild(source)
	conn.AppendChild(target)
	el.AppendChild(conn)
	return el
}

func taggedValue(b Builder, tag, value string) Element {
	tv := b.CreateElement("UML:TaggedValue")
	tv.SetAttr("tag", tag)
	tv.SetAttr("value", value)
	return tv
}
