package render

// Surface is the drawing capability the renderer needs. Its methods mirror a
// canvas 2D context: path construction, stroking, filling and dashing.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	Fill()
	// SetDash sets the dash pattern for subsequent strokes. An empty pattern
	// means a solid line.
	SetDash(pattern ...float64)
	SetFillColor(color string)
}
