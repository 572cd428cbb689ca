package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/squaremap/pkg/io"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/pipeline"
)

// topCellCount is how many of the largest cells the layout summary lists.
const topCellCount = 5

// layoutCommand creates the layout command for computing treemap layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [items]",
		Short: "Compute a treemap layout from an item file",
		Long: `Compute a treemap layout from an item file.

The layout command reads weighted items (JSON, CSV, TOML or .tiles, detected
from the extension or set with --input) and computes one rectangle per item.
The output is a layout document (.layout.json, or MessagePack with -o x.msgpack)
that can be rendered to SVG/PNG/PDF/text using the 'visualize' command.

Use "-" to read items from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveOptions(&opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], inputFormat, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&inputFormat, "input", "", "input format: "+formatList()+" (default: from extension)")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the items, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string) error {
	ds, err := readDataset(input, inputFormat)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded items", "input", input, "items", ds.Len())

	var l dataset.Layout
	elapsed, err := c.step(ctx, "Computing layout...", func() (err error) {
		l, err = c.newRunner().Layout(ctx, ds, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		if input == "-" {
			outputPath = "items" + layoutSuffix
		} else {
			outputPath = trimInputExt(input) + layoutSuffix
		}
	}

	if err := pkgio.ExportLayout(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	ui := c.ui()
	ui.success("Layout complete")
	ui.file(outputPath)
	ui.layoutStats(l, elapsed)
	ui.topCells(l, topCellCount)
	ui.nextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// readDataset loads items from a file, or from stdin when input is "-".
func readDataset(input, format string) (dataset.Dataset, error) {
	if input == "-" {
		f := pkgio.FormatJSON
		if format != "" {
			parsed, err := pkgio.ParseFormat(format)
			if err != nil {
				return dataset.Dataset{}, err
			}
			f = parsed
		}
		return pkgio.ReadItems(os.Stdin, f)
	}

	if format == "" {
		ds, err := pkgio.ImportItems(input)
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("load items %s: %w", input, err)
		}
		return ds, nil
	}

	f, err := pkgio.ParseFormat(format)
	if err != nil {
		return dataset.Dataset{}, err
	}
	file, err := os.Open(input)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("load items %s: %w", input, err)
	}
	defer file.Close()
	return pkgio.ReadItems(file, f)
}

func formatList() string {
	names := make([]string, len(pkgio.Formats))
	for i, f := range pkgio.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
