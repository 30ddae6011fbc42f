package sink

import "github.com/matzehuels/classlink/pkg/diagram"

// Options controls the appearance shared by every sink.
type Options struct {
	Padding   float64 // margin around the diagram bounds
	Scale     float64 // raster scale factor, PNG only
	Stroke    string  // line and box border color
	NodeFill  string  // class box background
	TextColor string
	LineWidth float64
	FontSize  float64
	NoLabels  bool
}

// DefaultOptions returns the options used for unset fields.
func DefaultOptions() Options {
	return Options{
		Padding:   20,
		Scale:     2,
		Stroke:    "#222222",
		NodeFill:  "#ffffff",
		TextColor: "#222222",
		LineWidth: 1.5,
		FontSize:  13,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Padding <= 0 {
		o.Padding = def.Padding
	}
	if o.Scale <= 0 {
		o.Scale = def.Scale
	}
	if o.Stroke == "" {
		o.Stroke = def.Stroke
	}
	if o.NodeFill == "" {
		o.NodeFill = def.NodeFill
	}
	if o.TextColor == "" {
		o.TextColor = def.TextColor
	}
	if o.LineWidth <= 0 {
		o.LineWidth = def.LineWidth
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	return o
}

// frame is the drawing area in diagram coordinates.
type frame struct {
	x, y, w, h float64
}

func frameFor(d *diagram.Diagram, pad float64) frame {
	minX, minY, maxX, maxY := d.Bounds()
	return frame{
		x: minX - pad,
		y: minY - pad,
		w: maxX - minX + 2*pad,
		h: maxY - minY + 2*pad,
	}
}
