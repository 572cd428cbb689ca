package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squaremap/pkg/pipeline"
)

// renderCommand creates the render command (layout + render in one step).
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		formatsStr  string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [items]",
		Short: "Render a treemap directly from an item file",
		Long: `Render a treemap directly from an item file.

This is a shortcut for 'layout' followed by 'visualize'. Formats are rendered
concurrently. With a single format, -o names the output file; with several,
-o is the base path and each format gets its own extension.

Use "-o -" to write a single format to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := c.resolveOptions(&opts); err != nil {
				return err
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], inputFormat, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&inputFormat, "input", "", "input format: "+formatList()+" (default: from extension)")
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runRender loads the items and runs the complete pipeline.
func (c *CLI) runRender(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string) error {
	ds, err := readDataset(input, inputFormat)
	if err != nil {
		return err
	}

	var result *pipeline.Result
	_, err = c.step(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")), func() (err error) {
		result, err = c.newRunner().Execute(ctx, ds, opts)
		return err
	})
	if err != nil {
		return err
	}

	if input == "-" {
		input = "items"
	}
	if err := c.writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}
	if output != "-" {
		c.ui().layoutStats(result.Layout, result.Stats.LayoutTime+result.Stats.RenderTime)
	}
	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format to its file, or the single
// format to c.Out when the output is "-".
func (c *CLI) writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(p.formats))
		}
		_, err := c.Out.Write(p.artifacts[p.formats[0]])
		return err
	}

	var paths []string
	if len(p.formats) == 1 && p.output != "" {
		paths = []string{p.output}
	} else {
		base := basePath(p.output, p.input)
		for _, f := range p.formats {
			paths = append(paths, base+pipeline.Extensions[f])
		}
	}

	for i, f := range p.formats {
		if filepath.Clean(paths[i]) == filepath.Clean(p.input) {
			return fmt.Errorf("refusing to overwrite input %s (use -o)", p.input)
		}
		if err := writeFile(paths[i], p.artifacts[f]); err != nil {
			return fmt.Errorf("write %s: %w", paths[i], err)
		}
	}

	ui := c.ui()
	ui.success("Rendered %d format(s)", len(p.formats))
	for _, path := range paths {
		ui.file(path)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return trimInputExt(input)
	}
	if strings.HasSuffix(output, layoutSuffix) {
		return strings.TrimSuffix(output, layoutSuffix)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
