// Package pipeline provides the layout and render pipeline for squaremap.
//
// This package implements the complete validate → layout → render pipeline
// used by both the CLI and the HTTP API, so that defaults, validation and
// output formats behave the same from every entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: validate the dataset and compute one cell per item
//  2. Render: produce output in one or more formats (SVG, PNG, PDF, JSON,
//     MessagePack, plain text), concurrently
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Width:   1200,
//	    Height:  800,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, ds, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	layout, err := runner.Layout(ctx, ds, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/errors"
	"github.com/matzehuels/squaremap/pkg/render"
	"github.com/matzehuels/squaremap/pkg/render/styles"
	"github.com/matzehuels/squaremap/pkg/treemap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultAlignment is the default edge alignment.
	DefaultAlignment = "precise"

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"

	// DefaultPalette is the default palette for items without a color.
	DefaultPalette = "categorical"

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultTextCols and DefaultTextRows size the plain text output.
	DefaultTextCols = 80
	DefaultTextRows = 24
)

// Format constants for output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
	FormatText    = "txt"
)

// ValidFormats lists the supported output formats in a stable order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatMsgpack, FormatText}

// ContentTypes maps each output format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:     "image/svg+xml",
	FormatPNG:     "image/png",
	FormatPDF:     "application/pdf",
	FormatJSON:    "application/json",
	FormatMsgpack: "application/vnd.msgpack",
	FormatText:    "text/plain; charset=utf-8",
}

// Extensions maps each output format to its file extension.
var Extensions = map[string]string{
	FormatSVG:     ".svg",
	FormatPNG:     ".png",
	FormatPDF:     ".pdf",
	FormatJSON:    ".layout.json",
	FormatMsgpack: ".msgpack",
	FormatText:    ".txt",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Title     string  `json:"title,omitempty"` // Overrides the dataset title when set
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Alignment string  `json:"alignment,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Palette     string   `json:"palette,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	NoLabels    bool     `json:"no_labels,omitempty"`
	ShowTitle   bool     `json:"show_title,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	TextCols    int      `json:"text_cols,omitempty"`
	TextRows    int      `json:"text_rows,omitempty"`

	// Runtime options (not serialized)
	MaxItems int         `json:"-"` // Zero means unlimited
	Logger   *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout document.
	Layout dataset.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items       int
	WorstAspect float64
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok || style == "" {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names, ", "))
	}
	return nil
}

// ValidateAlignment checks that an alignment name is valid.
func ValidateAlignment(alignment string) error {
	if _, err := treemap.ParseAlignment(alignment); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAlignment, err, "invalid alignment: %q", alignment)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates while keeping order.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Alignment == "" {
		o.Alignment = DefaultAlignment
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateContainer(0, 0, o.Width, o.Height); err != nil {
		return err
	}
	return ValidateAlignment(o.Alignment)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TextCols == 0 {
		o.TextCols = DefaultTextCols
	}
	if o.TextRows == 0 {
		o.TextRows = DefaultTextRows
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if _, err := render.ParsePalette(o.Palette); err != nil {
		return err
	}
	if !(o.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.TextCols < 0 || o.TextRows < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "text size %dx%d must be positive", o.TextCols, o.TextRows)
	}
	return nil
}
