package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/squaremap/pkg/io"

	"github.com/matzehuels/squaremap/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize <layout>",
		Short: "Render a layout document",
		Long: `Render a layout document written by 'layout' (.layout.json or .msgpack).

Rectangles are taken as stored, so a layout can be rendered to several formats
or styles without being recomputed:

  squaremap visualize portfolio.layout.json -f svg,png --style heat
  squaremap visualize portfolio.layout.json -f txt -o -

Use 'render' to go from items to output in one step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := c.resolveOptions(&opts); err != nil {
				return err
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	l, err := pkgio.ImportLayout(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	var artifacts map[string][]byte
	elapsed, err := c.step(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")), func() (err error) {
		artifacts, err = c.newRunner().Render(ctx, l, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}
	c.Logger.Info("rendered layout", "cells", len(l.Cells), "formats", len(opts.Formats), "elapsed", elapsed.Round(time.Millisecond))

	return c.writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
}
