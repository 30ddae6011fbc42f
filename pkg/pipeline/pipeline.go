// Package pipeline runs the load → render/export sequence shared by the CLI
// and the HTTP API.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.ExecuteFile(ctx, "shapes.json", pipeline.Options{
//	    Formats: []string{"svg", "xmi"},
//	})
//	svg := result.Artifacts["svg"]
//
// Every artifact is cached under a key derived from the input bytes and the
// options that affect it, so a second run with the same input is served from
// the cache.
//
// # Formats
//
//	svg  native renderer (or Graphviz with Renderer "graphviz")
//	png  native gg rasterizer (or Graphviz)
//	pdf  SVG converted with rsvg-convert
//	dot  Graphviz source
//	xmi  XMI 1.1 metamodel document
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classlink/pkg/cache"
	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/errors"
	"github.com/matzehuels/classlink/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	DefaultPadding   = 20.0
	DefaultScale     = 2.0
	DefaultModelName = "Model"
	DefaultRenderer  = RendererNative

	// MaxScale bounds the PNG scale factor.
	MaxScale = 16.0
)

const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
	FormatXMI = "xmi"
)

const (
	RendererNative   = "native"
	RendererGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats, in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatXMI}

// ValidRenderers is the set of supported renderers.
var ValidRenderers = []string{RendererNative, RendererGraphviz}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	Formats  []string `json:"formats,omitempty"`
	Renderer string   `json:"renderer,omitempty"`

	Padding  float64 `json:"padding,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Stroke   string  `json:"stroke,omitempty"`
	NodeFill string  `json:"node_fill,omitempty"`
	NoLabels bool    `json:"no_labels,omitempty"`
	// Pinned keeps node positions when rendering through Graphviz.
	Pinned bool `json:"pinned,omitempty"`

	ModelName string `json:"model_name,omitempty"`

	// Refresh bypasses cached artifacts (fresh ones are still stored).
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Diagram     *diagram.Diagram
	DiagramHash string
	Artifacts   map[string][]byte
	// Skipped lists relationships with no XMI fragment. It is filled whenever
	// xmi is among the requested formats.
	Skipped []diagram.Relationship
	// Dangling lists relationships whose endpoints are missing. They are not
	// drawn.
	Dangling []diagram.Relationship
	Stats    Stats
	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains execution statistics.
type Stats struct {
	Nodes         int
	Relationships int
	LoadTime      time.Duration
	RenderTime    time.Duration
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRenderer checks that a renderer is supported.
func ValidateRenderer(renderer string) error {
	if !slices.Contains(ValidRenderers, renderer) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid renderer: %q (must be one of: %s)",
			renderer, strings.Join(ValidRenderers, ", "))
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates the options. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if o.Scale < 0 || o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale and padding must not be negative")
	}
	if o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g exceeds the maximum of %g", o.Scale, MaxScale)
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.ModelName == "" {
		o.ModelName = DefaultModelName
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsGraphviz reports whether rendering goes through Graphviz.
func (o *Options) IsGraphviz() bool {
	return o.Renderer == RendererGraphviz
}

// SinkOptions returns the native renderer options.
func (o *Options) SinkOptions() sink.Options {
	return sink.Options{
		Padding:  o.Padding,
		Scale:    o.Scale,
		Stroke:   o.Stroke,
		NodeFill: o.NodeFill,
		NoLabels: o.NoLabels,
	}
}

// ArtifactKeyOpts returns cache key options for one format. Fields that do
// not affect the format are left zero so they do not split the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatXMI:
		k.ModelName = o.ModelName
	case FormatDOT:
		k.Pinned = o.Pinned
	default:
		k.Renderer = o.Renderer
		if o.IsGraphviz() {
			k.Pinned = o.Pinned
			break
		}
		k.Padding = o.Padding
		k.Stroke = o.Stroke
		k.NodeFill = o.NodeFill
		k.NoLabels = o.NoLabels
		if format == FormatPNG {
			k.Scale = o.Scale
		}
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
