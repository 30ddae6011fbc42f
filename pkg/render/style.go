package render

import "github.com/matzehuels/classlink/pkg/diagram"

// LineStyle is the stroke pattern of the relationship line.
type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
)

func (l LineStyle) String() string {
	if l == Dashed {
		return "dashed"
	}
	return "solid"
}

// Shape is the glyph drawn at the target end.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeArrowhead
	ShapeDiamond
)

func (s Shape) String() string {
	switch s {
	case ShapeArrowhead:
		return "arrowhead"
	case ShapeDiamond:
		return "diamond"
	default:
		return "none"
	}
}

// Decoration is a terminal glyph and whether it is filled.
type Decoration struct {
	Shape  Shape
	Filled bool
}

// Decorations shared by several kinds.
var (
	NoDecoration  = Decoration{}
	OpenArrowhead = Decoration{Shape: ShapeArrowhead}
	OpenDiamond   = Decoration{Shape: ShapeDiamond}
	FilledDiamond = Decoration{Shape: ShapeDiamond, Filled: true}
)

// Style is how a relationship kind is drawn.
type Style struct {
	Line       LineStyle
	Decoration Decoration
}

// Styles maps every known kind to its drawing style. Inheritance and
// realization share the open arrowhead.
var Styles = map[diagram.Kind]Style{
	diagram.Association: {Line: Solid, Decoration: NoDecoration},
	diagram.Inheritance: {Line: Solid, Decoration: OpenArrowhead},
	diagram.Realization: {Line: Solid, Decoration: OpenArrowhead},
	diagram.Dependency:  {Line: Dashed, Decoration: OpenArrowhead},
	diagram.Aggregation: {Line: Solid, Decoration: OpenDiamond},
	diagram.Composition: {Line: Solid, Decoration: FilledDiamond},
}

// StyleFor returns the style for k. Unknown kinds get a plain solid line
// and ok is false.
func StyleFor(k diagram.Kind) (s Style, ok bool) {
	s, ok = Styles[k]
	return s, ok
}
