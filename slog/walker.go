// Package slog provides logging decorators for pathfinder services.
package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/pathfinder"
)

// Ensure LoggingWalker implements pathfinder.Walker.
var _ pathfinder.Walker = (*LoggingWalker)(nil)

// LoggingWalker wraps a Walker and logs a summary when each walk ends.
type LoggingWalker struct {
	next   pathfinder.Walker
	logger *slog.Logger
}

// NewLoggingWalker creates a new LoggingWalker.
func NewLoggingWalker(next pathfinder.Walker, logger *slog.Logger) *LoggingWalker {
	return &LoggingWalker{next: next, logger: logger}
}

// Walk delegates to the wrapped walker and logs the roots, candidate and
// warning counts, and duration once the sequence is done.
func (w *LoggingWalker) Walk(ctx context.Context, roots []string, warn pathfinder.WarnFunc) iter.Seq[*pathfinder.FileCandidate] {
	return func(yield func(*pathfinder.FileCandidate) bool) {
		var candidates, warnings int
		counted := func(wn pathfinder.Warning) {
			warnings++
			w.logger.Debug("walk warning", "path", wn.Path, "code", wn.Code(), "message", wn.Message())
			if warn != nil {
				warn(wn)
			}
		}

		defer func(begin time.Time) {
			w.logger.Info("walk",
				"roots", roots,
				"candidates", candidates,
				"warnings", warnings,
				"duration", time.Since(begin),
				"err", ctx.Err(),
			)
		}(time.Now())

		for c := range w.next.Walk(ctx, roots, counted) {
			candidates++
			if !yield(c) {
				return
			}
		}
	}
}
