package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classlink/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command. Zero values
// fall back to the config file.
type renderOpts struct {
	output   string
	formats  string
	renderer string
	padding  float64
	scale    float64
	stroke   string
	fill     string
	noLabels bool
	pinned   bool
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <diagram.json>",
		Short: "Draw a class diagram to SVG, PNG, PDF or DOT",
		Long: `Draw every relationship of a class diagram between the borders of its boxes,
with the UML decoration of its kind:

  association   solid line
  inheritance   solid line, open arrowhead
  realization   solid line, open arrowhead
  dependency    dashed line, open arrowhead
  aggregation   solid line, open diamond
  composition   solid line, filled diamond

Relationships whose source or target box is missing are skipped with a warning.`,
		Example: `  classlink render shapes.json
  classlink render shapes.json -f svg,png -o out/shapes
  classlink render shapes.json -f png --renderer graphviz --pinned`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, xmi (comma-separated)")
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "renderer: native (default), graphviz")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "margin around the diagram in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().StringVar(&opts.stroke, "stroke", "", "line color")
	cmd.Flags().StringVar(&opts.fill, "fill", "", "box fill color")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "do not draw class names")
	cmd.Flags().BoolVar(&opts.pinned, "pinned", false, "keep box positions (graphviz renderer)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// pipelineOptions merges flags over the config file. Only flags the user set
// override the config.
func (o renderOpts) pipelineOptions(cmd *cobra.Command, cfg *Config) pipeline.Options {
	p := cfg.pipelineOptions()
	flags := cmd.Flags()
	if f := parseFormats(o.formats); len(f) > 0 {
		p.Formats = f
	}
	if flags.Changed("renderer") {
		p.Renderer = o.renderer
	}
	if flags.Changed("padding") {
		p.Padding = o.padding
	}
	if flags.Changed("scale") {
		p.Scale = o.scale
	}
	if flags.Changed("stroke") {
		p.Stroke = o.stroke
	}
	if flags.Changed("fill") {
		p.NodeFill = o.fill
	}
	if flags.Changed("no-labels") {
		p.NoLabels = o.noLabels
	}
	if flags.Changed("pinned") {
		p.Pinned = o.pinned
	}
	p.Refresh = o.refresh
	return p
}

func (c *CLI) runRender(ctx context.Context, input string, cmd *cobra.Command, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	popts := opts.pipelineOptions(cmd, c.Config)
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()
	result, err := runner.ExecuteFile(ctx, input, popts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result, popts.Formats, opts.output, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.Nodes, result.Stats.Relationships, result.CacheHit)
	for _, p := range paths {
		printFile(p)
	}
	if n := len(result.Dangling); n > 0 {
		printWarning("%d relationship(s) not drawn: endpoint missing", n)
	}
	if n := len(result.Skipped); n > 0 {
		printWarning("%d relationship(s) not exported: no XMI mapping for their kind", n)
	}
	return nil
}

// writeArtifacts writes one file per format. With a single format and an
// explicit output path, that path is used verbatim.
func writeArtifacts(result *pipeline.Result, formats []string, output, input string) ([]string, error) {
	var paths []string
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths = []string{output}
	} else {
		base := basePath(output, input)
		for _, f := range formats {
			paths = append(paths, base+"."+f)
		}
	}

	for i, f := range formats {
		if err := writeFile(paths[i], result.Artifacts[f]); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
