package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/render"
)

// pointsPerInch converts diagram units, treated as points, to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Pinned fixes every node at its diagram position and size.
	Pinned bool
	// RankDir is the dot layout direction. Defaults to "BT" so superclasses
	// end up above their subclasses.
	RankDir string
}

// ToDOT converts a diagram to Graphviz DOT. Relationships whose endpoints are
// missing are left out.
func ToDOT(d *diagram.Diagram, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "BT"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  splines=line;\n")
	} else {
		fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=1.2];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(nodeAttrs(n, opts.Pinned), ", "))
	}

	buf.WriteString("\n")
	for _, rel := range d.Relationships {
		if _, _, ok := diagram.Resolve(d.Nodes, rel); !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(rel.From), quote(rel.To), strings.Join(EdgeAttrs(rel.Kind), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// quote renders s as a DOT double-quoted string. DOT only understands \" and
// \\ inside quotes, so other control characters become spaces and invalid
// UTF-8 is replaced.
func quote(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func nodeAttrs(n diagram.Node, pinned bool) []string {
	attrs := []string{"label=" + quote(n.DisplayName())}
	if pinned {
		c := n.Center()
		// neato reads pos in inches with the y axis pointing up.
		attrs = append(attrs,
			fmt.Sprintf("pos=\"%.3f,%.3f!\"", c.X/pointsPerInch, -c.Y/pointsPerInch),
			fmt.Sprintf("width=%.3f", n.Width/pointsPerInch),
			fmt.Sprintf("height=%.3f", n.Height/pointsPerInch),
			"fixedsize=true",
		)
	}
	return attrs
}

// EdgeAttrs returns the DOT edge attributes for kind, derived from
// [render.Styles]. Unknown kinds get a plain solid edge without arrowhead.
func EdgeAttrs(kind diagram.Kind) []string {
	style, _ := render.StyleFor(kind)

	attrs := []string{"arrowhead=" + arrowhead(style.Decoration)}
	if style.Line == render.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

func arrowhead(dec render.Decoration) string {
	switch dec.Shape {
	case render.ShapeArrowhead:
		if dec.Filled {
			return "normal"
		}
		return "empty"
	case render.ShapeDiamond:
		if dec.Filled {
			return "diamond"
		}
		return "odiamond"
	default:
		return "none"
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
