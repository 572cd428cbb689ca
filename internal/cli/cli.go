// Package cli implements the squaremap command-line interface.
package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/squaremap/pkg/buildinfo"
	"github.com/matzehuels/squaremap/pkg/config"
	"github.com/matzehuels/squaremap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "squaremap"

	// layoutSuffix is appended to the input base name for layout documents.
	layoutSuffix = ".layout.json"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives status lines and artifacts written to "-".
	Out io.Writer
	// Err receives logs and the progress spinner.
	Err io.Writer

	// ConfigPath overrides the default configuration file location.
	ConfigPath string

	verbose bool
}

// New creates a CLI that prints results to out and diagnostics to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		Logger: newLogger(errOut, log.InfoLevel),
		Out:    out,
		Err:    errOut,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Squaremap lays out weighted items as squarified treemaps",
		Long:          `Squaremap is a CLI tool for turning weighted items (portfolio positions, disk usage, budgets) into squarified treemaps, rendered as SVG, PNG, PDF, text or an interactive terminal view.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", c.ConfigPath, "config file (default: $XDG_CONFIG_HOME/squaremap/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Configuration
// =============================================================================

// configPath returns the --config path or the default location.
func (c *CLI) configPath() (string, error) {
	if c.ConfigPath != "" {
		return c.ConfigPath, nil
	}
	return config.Path()
}

// loadConfig reads the configuration file. A missing file is not an error.
func (c *CLI) loadConfig() (config.Config, error) {
	path, err := c.configPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// resolveOptions layers flags over the config file over pipeline defaults.
func (c *CLI) resolveOptions(opts *pipeline.Options) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cfg.Apply(opts)
	opts.Logger = c.Logger
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// addLayoutFlags registers the flags shared by commands that compute layouts.
// Zero values mean "not set" so config file values can fill them.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Title, "title", "", "title (overrides the input's title)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, fmt.Sprintf("frame width (default %g)", pipeline.DefaultWidth))
	cmd.Flags().Float64Var(&opts.Height, "height", 0, fmt.Sprintf("frame height (default %g)", pipeline.DefaultHeight))
	cmd.Flags().StringVar(&opts.Alignment, "align", "", "edge alignment: precise (default), half, coarse")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", 0, "reject inputs with more items (0 = unlimited)")
}

// addRenderFlags registers the flags shared by commands that render.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.ValidFormats, ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: simple (default), heat")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "palette for items without a color: categorical (default), heat, heat:#low:#high")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, fmt.Sprintf("PNG scale factor (default %g)", pipeline.DefaultScale))
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit tile labels")
	cmd.Flags().BoolVar(&opts.ShowTitle, "show-title", false, "draw the title above the treemap")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "add hover highlighting to SVG output")
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the config file or default applies.
func parseFormats(s string) []string {
	return pipeline.ParseFormats(s)
}

// trimInputExt strips the data or layout extension from an input path.
func trimInputExt(input string) string {
	if strings.HasSuffix(input, layoutSuffix) {
		return strings.TrimSuffix(input, layoutSuffix)
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
