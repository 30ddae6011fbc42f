package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classlink/pkg/pipeline"
)

type exportOpts struct {
	output  string
	model   string
	noCache bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <diagram.json>",
		Short: "Export a class diagram as an XMI 1.1 model",
		Long: `Export the boxes of a class diagram as UML classes and its relationships as
UML Generalization (inheritance) or UML Association (association, aggregation,
composition) elements.

Realization and dependency relationships have no XMI mapping and are skipped
with a warning.`,
		Example: `  classlink export shapes.json
  classlink export shapes.json -o model.xmi --model Shapes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.xmi)")
	cmd.Flags().StringVar(&opts.model, "model", "", "UML model name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	popts := c.Config.pipelineOptions()
	popts.Formats = []string{pipeline.FormatXMI}
	popts.Logger = logger
	if opts.model != "" {
		popts.ModelName = opts.model
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.ExecuteFile(ctx, input, popts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = basePath("", input) + "." + pipeline.FormatXMI
	}
	if err := writeFile(output, result.Artifacts[pipeline.FormatXMI]); err != nil {
		return err
	}
	prog.done("Exported " + filepath.Base(output))

	exported := result.Stats.Relationships - len(result.Skipped)
	printSuccess("Exported %d classes, %d relationships", result.Stats.Nodes, exported)
	printFile(output)
	for _, rel := range result.Skipped {
		printWarning("skipped %s (%s): no XMI mapping", rel.ID, rel.Kind)
	}
	return nil
}
