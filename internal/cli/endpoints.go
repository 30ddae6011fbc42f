package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/geometry"
)

// endpointsCommand creates the endpoints command, which prints where each
// relationship line meets its boxes.
func (c *CLI) endpointsCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "endpoints <diagram.json>",
		Short: "Print the boundary points of every relationship",
		Long: `Print the start point (on the source box) and end point (on the target box)
of every relationship.

By default the offset along the exit side is clamped so both points lie on the
box perimeter. --raw prints the unclamped values, which can fall outside wide
or tall boxes at diagonal angles.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpoints(cmd.Context(), args[0], raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "do not clamp points to the box perimeter")

	return cmd
}

func runEndpoints(ctx context.Context, input string, raw bool) error {
	logger := loggerFromContext(ctx)

	d, err := diagram.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded diagram", "nodes", len(d.Nodes), "relationships", len(d.Relationships))

	for _, line := range endpointLines(d, raw) {
		fmt.Println(line)
	}
	return nil
}

// endpointLines formats one line per relationship.
func endpointLines(d *diagram.Diagram, raw bool) []string {
	resolve := geometry.ResolveBoundaryPoint
	if raw {
		resolve = geometry.RawBoundaryPoint
	}

	lines := make([]string, 0, len(d.Relationships))
	for _, rel := range d.Relationships {
		head := fmt.Sprintf("%s %s %s %s", StyleHighlight.Render(rel.ID), rel.From, iconArrow, rel.To)
		from, to, ok := diagram.Resolve(d.Nodes, rel)
		if !ok {
			lines = append(lines, head+"  "+StyleWarning.Render("missing endpoint"))
			continue
		}
		start, end := resolve(from, to), resolve(to, from)
		lines = append(lines, fmt.Sprintf("%s  %s  %s %s %s",
			head, StyleDim.Render(string(rel.Kind)),
			formatPoint(start), StyleDim.Render(iconArrow), formatPoint(end)))
	}
	return lines
}

func formatPoint(p diagram.Point) string {
	return StyleNumber.Render(fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y))
}
