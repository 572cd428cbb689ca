package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/errors"
	"github.com/matzehuels/squaremap/pkg/observability"
	"github.com/matzehuels/squaremap/pkg/treemap"
)

// Runner executes pipeline stages and reports them to the logger and the
// registered observability hooks.
//
// The Runner is stateless except for its logger; it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, ds dataset.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, err := r.Layout(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.Items = len(l.Cells)
	result.Stats.WorstAspect = l.WorstAspect()
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Layout validates ds and computes its layout.
func (r *Runner) Layout(ctx context.Context, ds dataset.Dataset, opts Options) (dataset.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return dataset.Layout{}, err
	}
	if opts.MaxItems > 0 && len(ds.Items) > opts.MaxItems {
		return dataset.Layout{}, errors.New(errors.ErrCodePayloadTooLarge, "%d items exceeds the limit of %d", len(ds.Items), opts.MaxItems)
	}
	if opts.Title != "" {
		ds.Title = opts.Title
	}
	mode, _ := treemap.ParseAlignment(opts.Alignment)

	start := time.Now()
	l, err := dataset.ComputeLayout(ds, opts.Width, opts.Height, mode)
	ev := observability.LayoutEvent{
		Items:     len(ds.Items),
		Alignment: mode.String(),
		Width:     opts.Width,
		Height:    opts.Height,
		Duration:  time.Since(start),
		Err:       err,
	}
	if err == nil {
		ev.Cells = len(l.Cells)
		ev.ZeroArea = len(l.ZeroArea())
		ev.WorstAspect = l.WorstAspect()
	}
	observability.Pipeline().OnLayout(ctx, ev)
	if err != nil {
		return dataset.Layout{}, err
	}

	opts.Logger.Info("computed layout",
		"cells", ev.Cells,
		"zero_area", ev.ZeroArea,
		"worst_aspect", fmt.Sprintf("%.2f", ev.WorstAspect),
		"alignment", mode,
		"duration", ev.Duration)
	return l, nil
}

// Render produces every requested format concurrently. The first failure
// cancels the remaining formats.
func (r *Runner) Render(ctx context.Context, l dataset.Layout, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()

	outputs := make([][]byte, len(opts.Formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			formatStart := time.Now()
			data, err := RenderFormat(l, format, opts)
			hooks.OnRender(gctx, observability.RenderEvent{
				Format:   format,
				Bytes:    len(data),
				Duration: time.Since(formatStart),
				Err:      err,
			})
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			outputs[i] = data
			opts.Logger.Debug("rendered format", "format", format, "bytes", len(data))
			return nil
		})
	}
	err := g.Wait()
	duration := time.Since(start)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for i, format := range opts.Formats {
		artifacts[format] = outputs[i]
	}
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", duration)
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
