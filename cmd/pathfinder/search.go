package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/fwojciec/pathfinder"
	"github.com/fwojciec/pathfinder/fs"
	"github.com/fwojciec/pathfinder/search"
	pfslog "github.com/fwojciec/pathfinder/slog"
	"github.com/fwojciec/pathfinder/text"
)

// progressInterval throttles redraws of the progress line.
const progressInterval = 100 * time.Millisecond

// Run executes the search.
func (c *CLI) Run(deps *Dependencies) error {
	q, err := pathfinder.ParseQuery(c.Term, c.FilenameOnly)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pathfinder.ErrorMessage(err))
		return err
	}

	cfg, err := c.config(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pathfinder.ErrorMessage(err))
		return err
	}

	label := "paths"
	roots := cfg.Roots
	if len(roots) == 0 {
		label = "common folders"
		roots, err = deps.DefaultRoots()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: resolving common folders: %v\n", err)
			return err
		}
	}

	ctx := deps.Ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	out := newPrinter(deps, c.JSON, c.Info)

	report := c.pass(ctx, deps, out, cfg, q, "pass 1: "+label, roots)
	if len(report.Results) > 0 || report.Truncated {
		return nil
	}

	if !c.Expanded {
		out.hint("No matches in pass 1. Rerun with --expanded to search all drives.")
		return nil
	}

	out.hint("Expanding to all drives...")
	c.pass(ctx, deps, out, cfg, q, "pass 2: all drives", deps.DriveRoots())
	return nil
}

// pass runs one search over roots and prints its results and status.
func (c *CLI) pass(ctx context.Context, deps *Dependencies, out *printer, cfg pathfinder.Config, q *pathfinder.Query, label string, roots []string) *pathfinder.Report {
	walker := pfslog.NewLoggingWalker(fs.NewWalkerFromConfig(cfg), deps.Logger)
	scanner := pfslog.NewLoggingScanner(text.NewScanner(text.WithMaxSize(cfg.MaxContentSize)), deps.Logger)

	opts := []search.Option{
		search.WithConcurrency(cfg.Concurrency),
		search.WithLimit(cfg.Limit),
		search.WithLogger(deps.Logger),
	}
	if deps.Progress {
		sometimes := &rate.Sometimes{Interval: progressInterval}
		opts = append(opts, search.WithProgress(func(p search.Progress) {
			sometimes.Do(func() { out.progress(p) })
		}))
	}

	begin := time.Now()
	// Search only fails on a nil query.
	report, _ := search.NewSearcher(walker, scanner, opts...).Search(ctx, q, roots)
	elapsed := time.Since(begin)

	if deps.Progress {
		out.clearProgress()
	}
	out.results(report.Results)
	out.warnings(report.Warnings, c.Verbose)
	out.status(label, report, elapsed, stopReason(ctx, report))
	return report
}

func stopReason(ctx context.Context, report *pathfinder.Report) string {
	switch {
	case !report.Truncated:
		return "completed"
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	default:
		return "interrupted"
	}
}
