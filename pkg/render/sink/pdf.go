package sink

import (
	"context"

	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/render"
)

// RenderPDF renders d as PDF by converting its SVG rendering.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, d *diagram.Diagram, opts Options) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(d, opts))
}
