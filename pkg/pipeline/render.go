package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/errors"
	"github.com/matzehuels/classlink/pkg/render/nodelink"
	"github.com/matzehuels/classlink/pkg/render/sink"
	"github.com/matzehuels/classlink/pkg/xmi"
)

// RenderFormat produces one artifact for d. It does not touch the cache.
func RenderFormat(ctx context.Context, d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	switch format {
	case FormatXMI:
		data, _, err := xmi.Export(d, opts.ModelName)
		return data, err
	case FormatDOT:
		return []byte(nodelink.ToDOT(d, opts.dotOptions())), nil
	}

	if opts.IsGraphviz() {
		return renderGraphviz(ctx, d, format, opts)
	}
	return renderNative(ctx, d, format, opts)
}

func renderNative(ctx context.Context, d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	so := opts.SinkOptions()
	switch format {
	case FormatSVG:
		return sink.RenderSVG(d, so), nil
	case FormatPNG:
		return sink.RenderPNG(d, so)
	case FormatPDF:
		return sink.RenderPDF(ctx, d, so)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %q not supported by the native renderer", format)
	}
}

func renderGraphviz(ctx context.Context, d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	dot := nodelink.ToDOT(d, opts.dotOptions())
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %q not supported by the graphviz renderer", format)
	}
	if err != nil {
		return nil, fmt.Errorf("graphviz %s: %w", format, err)
	}
	return data, nil
}

func (o *Options) dotOptions() nodelink.Options {
	return nodelink.Options{Pinned: o.Pinned}
}

// ExportSkipped returns the relationships of d that have no XMI fragment.
func ExportSkipped(d *diagram.Diagram) []diagram.Relationship {
	var out []diagram.Relationship
	for _, rel := range d.Relationships {
		if !xmi.Exportable(rel.Kind) {
			out = append(out, rel)
		}
	}
	return out
}
