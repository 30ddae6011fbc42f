package render

import (
	"math"

	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/geometry"
)

// Glyph dimensions in surface units.
const (
	ArrowLength   = 20.0
	ArrowSpread   = math.Pi / 6 // half-angle between the arrowhead's sides
	DiamondSize   = 18.0
	DiamondSpread = math.Pi / 3
	FillColor     = "#000000"
)

// DashPattern is the on/off pattern of dashed relationship lines.
var DashPattern = []float64{5, 5}

// Render draws the line from -> to and the decoration for kind at to.
func Render(s Surface, from, to diagram.Point, kind diagram.Kind) {
	style, _ := StyleFor(kind)

	line(s, from, to, style.Line)

	angle := geometry.Angle(from, to)
	switch style.Decoration.Shape {
	case ShapeArrowhead:
		arrowhead(s, to, angle, style.Decoration.Filled)
	case ShapeDiamond:
		diamond(s, to, angle, style.Decoration.Filled)
	}
}

// Draw resolves rel against nodes and renders it. It draws nothing and
// returns false when either endpoint is missing from nodes.
func Draw(s Surface, rel diagram.Relationship, nodes diagram.NodeSet) bool {
	from, to, ok := diagram.Resolve(nodes, rel)
	if !ok {
		return false
	}
	start, end := geometry.Endpoints(from, to)
	Render(s, start, end, rel.Kind)
	return true
}

// DrawAll draws every relationship of d in order and returns how many were
// drawn. Dangling relationships are skipped.
func DrawAll(s Surface, d *diagram.Diagram) int {
	drawn := 0
	for _, rel := range d.Relationships {
		if Draw(s, rel, d.Nodes) {
			drawn++
		}
	}
	return drawn
}

func line(s Surface, from, to diagram.Point, style LineStyle) {
	if style == Dashed {
		s.SetDash(DashPattern...)
		defer s.SetDash()
	}
	s.BeginPath()
	s.MoveTo(from.X, from.Y)
	s.LineTo(to.X, to.Y)
	s.Stroke()
}

func arrowhead(s Surface, tip diagram.Point, angle float64, filled bool) {
	s.BeginPath()
	s.MoveTo(tip.X, tip.Y)
	s.LineTo(back(tip, angle-ArrowSpread, ArrowLength))
	s.LineTo(back(tip, angle+ArrowSpread, ArrowLength))
	s.ClosePath()
	finish(s, filled)
}

func diamond(s Surface, tip diagram.Point, angle float64, filled bool) {
	s.BeginPath()
	s.MoveTo(tip.X, tip.Y)
	s.LineTo(back(tip, angle-DiamondSpread, DiamondSize))
	s.LineTo(back(tip, angle, DiamondSize))
	s.LineTo(back(tip, angle+DiamondSpread, DiamondSize))
	s.ClosePath()
	finish(s, filled)
}

func finish(s Surface, filled bool) {
	if filled {
		s.SetFillColor(FillColor)
		s.Fill()
	}
	s.Stroke()
}

// back returns the point dist units behind p along direction angle.
func back(p diagram.Point, angle, dist float64) (x, y float64) {
	return p.X - dist*math.Cos(angle), p.Y - dist*math.Sin(angle)
}
