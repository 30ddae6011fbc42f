package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/errors"
	"github.com/matzehuels/classlink/pkg/render"
)

// MaxPNGPixels bounds the raster RenderPNG allocates (about 256 MiB RGBA).
const MaxPNGPixels = 64 << 20

// PNG is a [render.Surface] backed by a gg raster context. Stroke and Fill
// keep the current path, as on a canvas, so a decoration can be filled and
// then outlined.
type PNG struct {
	dc     *gg.Context
	stroke string
	fill   string
}

// NewPNG wraps dc. Strokes use the given color.
func NewPNG(dc *gg.Context, stroke string) *PNG {
	return &PNG{dc: dc, stroke: stroke, fill: render.FillColor}
}

func (p *PNG) BeginPath()          { p.dc.ClearPath() }
func (p *PNG) MoveTo(x, y float64) { p.dc.MoveTo(x, y) }
func (p *PNG) LineTo(x, y float64) { p.dc.LineTo(x, y) }
func (p *PNG) ClosePath()          { p.dc.ClosePath() }

func (p *PNG) Stroke() {
	p.dc.SetHexColor(p.stroke)
	p.dc.StrokePreserve()
}

func (p *PNG) Fill() {
	p.dc.SetHexColor(p.fill)
	p.dc.FillPreserve()
}

func (p *PNG) SetDash(pattern ...float64) { p.dc.SetDash(pattern...) }
func (p *PNG) SetFillColor(color string)  { p.fill = color }

// RenderPNG rasterizes d at opts.Scale. Labels use gg's built-in bitmap face,
// so FontSize has no effect here.
func RenderPNG(d *diagram.Diagram, opts Options) ([]byte, error) {
	o := opts.withDefaults()
	f := frameFor(d, o.Padding)

	w, h := math.Ceil(f.w*o.Scale), math.Ceil(f.h*o.Scale)
	if math.IsNaN(w) || math.IsNaN(h) || w < 1 || h < 1 || w*h > MaxPNGPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png of %.0fx%.0f pixels exceeds the %d pixel limit; lower scale or move distant nodes", w, h, MaxPNGPixels)
	}
	dc := gg.NewContext(int(w), int(h))
	dc.SetHexColor("#ffffff")
	dc.Clear()

	dc.Scale(o.Scale, o.Scale)
	dc.Translate(-f.x, -f.y)
	dc.SetLineWidth(o.LineWidth)

	for _, n := range d.Nodes {
		renderNodePNG(dc, n, o)
	}

	surface := NewPNG(dc, o.Stroke)
	render.DrawAll(surface, d)
	dc.ClearPath()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func renderNodePNG(dc *gg.Context, n diagram.Node, o Options) {
	dc.DrawRectangle(n.X, n.Y, n.Width, n.Height)
	dc.SetHexColor(o.NodeFill)
	dc.FillPreserve()
	dc.SetHexColor(o.Stroke)
	dc.Stroke()

	if o.NoLabels {
		return
	}
	c := n.Center()
	dc.SetHexColor(o.TextColor)
	dc.DrawStringAnchored(n.DisplayName(), c.X, c.Y, 0.5, 0.5)
}
