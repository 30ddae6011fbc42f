package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/render"
)

// SVG is a [render.Surface] that writes SVG path elements. Every Stroke and
// every Fill emits one <path> for the current path.
type SVG struct {
	buf       bytes.Buffer
	path      strings.Builder
	dash      []float64
	fill      string
	stroke    string
	lineWidth float64
}

// NewSVG returns a surface stroking with the given color and width.
func NewSVG(stroke string, lineWidth float64) *SVG {
	return &SVG{stroke: stroke, lineWidth: lineWidth, fill: render.FillColor}
}

func (s *SVG) BeginPath() { s.path.Reset() }

func (s *SVG) MoveTo(x, y float64) { s.segment("M", x, y) }

func (s *SVG) LineTo(x, y float64) { s.segment("L", x, y) }

func (s *SVG) ClosePath() {
	if s.path.Len() > 0 {
		s.path.WriteString(" Z")
	}
}

func (s *SVG) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	dash := ""
	if len(s.dash) > 0 {
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, joinFloats(s.dash))
	}
	fmt.Fprintf(&s.buf, `  <path class="relationship" d="%s" fill="none" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		s.path.String(), escapeXML(s.stroke), s.lineWidth, dash)
}

func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.buf, `  <path class="relationship" d="%s" fill="%s" stroke="none"/>`+"\n",
		s.path.String(), escapeXML(s.fill))
}

func (s *SVG) SetDash(pattern ...float64) { s.dash = append(s.dash[:0], pattern...) }

func (s *SVG) SetFillColor(color string) { s.fill = color }

// Bytes returns the elements written so far, without a document wrapper.
func (s *SVG) Bytes() []byte { return s.buf.Bytes() }

func (s *SVG) segment(op string, x, y float64) {
	if s.path.Len() > 0 {
		s.path.WriteByte(' ')
	}
	fmt.Fprintf(&s.path, "%s %.2f %.2f", op, x, y)
}

// RenderSVG renders the class boxes and all resolvable relationships of d as a
// standalone SVG document.
func RenderSVG(d *diagram.Diagram, opts Options) []byte {
	o := opts.withDefaults()
	f := frameFor(d, o.Padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.x, f.y, f.w, f.h, f.w, f.h)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white"/>`+"\n", f.x, f.y, f.w, f.h)

	for _, n := range d.Nodes {
		renderNodeSVG(&buf, n, o)
	}

	surface := NewSVG(o.Stroke, o.LineWidth)
	render.DrawAll(surface, d)
	buf.Write(surface.Bytes())

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNodeSVG(buf *bytes.Buffer, n diagram.Node, o Options) {
	fmt.Fprintf(buf, `  <rect id="node-%s" class="class" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		escapeXML(n.ID), n.X, n.Y, n.Width, n.Height, escapeXML(o.NodeFill), escapeXML(o.Stroke), o.LineWidth)
	if o.NoLabels {
		return
	}
	c := n.Center()
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		c.X, c.Y, o.FontSize, escapeXML(o.TextColor), escapeXML(n.DisplayName()))
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return strings.Join(parts, " ")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
