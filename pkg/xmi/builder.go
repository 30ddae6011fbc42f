package xmi

import "github.com/beevik/etree"

// Element is a node of the document tree under construction.
type Element interface {
	SetAttr(name, value string)
	AppendChild(child Element)
}

// Builder creates named elements.
type Builder interface {
	CreateElement(name string) Element
}

// EtreeBuilder builds elements backed by etree.
type EtreeBuilder struct{}

func (EtreeBuilder) CreateElement(name string) Element {
	return &EtreeElement{E: etree.NewElement(name)}
}

// EtreeElement wraps an etree element.
type EtreeElement struct {
	E *etree.Element
}

func (e *EtreeElement) SetAttr(name, value string) { e.E.CreateAttr(name, value) }

// AppendChild appends child. Children created by another Builder are ignored.
func (e *EtreeElement) AppendChild(child Element) {
	if c, ok := child.(*EtreeElement); ok {
		e.E.AddChild(c.E)
	}
}

// Unwrap returns the etree element behind el, or nil if el was not built by
// an EtreeBuilder.
func Unwrap(el Element) *etree.Element {
	if e, ok := el.(*EtreeElement); ok {
		return e.E
	}
	return nil
}
