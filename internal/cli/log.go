// Package cli implements the squaremap command-line interface.
//
// Commands compute treemap layouts from item files, render them to SVG, PNG,
// PDF, JSON, MessagePack or text, show them in the terminal, and serve the
// same pipeline over HTTP:
//
//	squaremap layout portfolio.csv           # portfolio.layout.json
//	squaremap visualize portfolio.layout.json -f svg,png
//	squaremap render disk.tiles -f txt -o -  # layout + render to stdout
//	squaremap view budget.toml               # interactive
//	squaremap serve --addr :9000
//
// Status lines go to the CLI's Out writer; logs and the progress spinner go
// to Err, so "-o -" output can be piped. --verbose enables debug logs.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger, e.g. "14:32:01.45 INFO computed layout cells=4".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// step runs fn behind a spinner showing msg and returns how long it took.
// The duration is logged at debug level.
func (c *CLI) step(ctx context.Context, msg string, fn func() error) (time.Duration, error) {
	s := startSpinner(ctx, c.Err, msg)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	s.stop()

	if err != nil {
		c.Logger.Debug("step failed", "step", msg, "elapsed", elapsed, "error", err)
		return elapsed, err
	}
	c.Logger.Debug("step done", "step", msg, "elapsed", elapsed)
	return elapsed, ctx.Err()
}
