// Package search runs a query over a set of roots: it walks the roots,
// scans and scores every candidate on a bounded worker pool, and ranks
// the results.
package search

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/pathfinder"
)

// Progress reports how far a search has come.
type Progress struct {
	Visited int
	Matched int
	Path    string
}

// ProgressFunc receives progress updates. It is called from a single
// goroutine, once per visited candidate.
type ProgressFunc func(Progress)

// Searcher orchestrates walk, scan, score, and aggregation.
type Searcher struct {
	walker      pathfinder.Walker
	scanner     pathfinder.ContentScanner
	concurrency int
	limit       int
	logger      *slog.Logger
	progress    ProgressFunc
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithConcurrency sets the number of candidates processed in parallel.
// Defaults to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(s *Searcher) {
		s.concurrency = n
	}
}

// WithLimit caps the number of results returned. Zero returns all.
func WithLimit(n int) Option {
	return func(s *Searcher) {
		s.limit = n
	}
}

// WithLogger sets the logger used for the end-of-run summary.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// WithProgress sets a callback receiving progress updates.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Searcher) {
		s.progress = fn
	}
}

// NewSearcher creates a Searcher. A nil scanner disables content search.
func NewSearcher(walker pathfinder.Walker, scanner pathfinder.ContentScanner, opts ...Option) *Searcher {
	s := &Searcher{
		walker:      walker,
		scanner:     scanner,
		concurrency: runtime.GOMAXPROCS(0),
		limit:       pathfinder.DefaultLimit,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs q over roots and returns the ranked report.
//
// Only an invalid query is an error. Missing roots, unreadable entries,
// and oversized files become warnings. When ctx is canceled the walk
// stops and the results gathered so far are returned with Truncated set.
func (s *Searcher) Search(ctx context.Context, q *pathfinder.Query, roots []string) (*pathfinder.Report, error) {
	if q == nil {
		return nil, pathfinder.Errorf(pathfinder.EINVALID, "search query required")
	}
	begin := time.Now()

	var (
		mu       sync.Mutex
		warnings []pathfinder.Warning
	)
	warn := func(w pathfinder.Warning) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, w)
	}

	agg := pathfinder.NewAggregator()
	var visited int
	var scanned atomic.Int64

	concurrency := s.concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for c := range s.walker.Walk(ctx, roots, warn) {
		// Candidates produced after an interrupt are dropped.
		if ctx.Err() != nil {
			break
		}
		visited++
		g.Go(func() error {
			m := s.scan(gctx, c, q, warn)
			if m != nil {
				scanned.Add(1)
			}
			if r, ok := pathfinder.Score(c, q, m); ok {
				agg.Add(r)
			}
			return nil
		})
		if s.progress != nil {
			s.progress(Progress{Visited: visited, Matched: agg.Len(), Path: c.Path})
		}
	}
	_ = g.Wait()

	pathfinder.SortWarnings(warnings)
	report := &pathfinder.Report{
		Results:   agg.Results(s.limit),
		Warnings:  warnings,
		Truncated: ctx.Err() != nil,
		Visited:   visited,
		Scanned:   int(scanned.Load()),
	}

	s.logger.Info("search",
		"term", q.Raw,
		"mode", q.Mode.String(),
		"roots", len(roots),
		"visited", report.Visited,
		"scanned", report.Scanned,
		"matched", agg.Len(),
		"warnings", len(report.Warnings),
		"truncated", report.Truncated,
		"duration", time.Since(begin),
	)
	return report, nil
}

// scan returns the content match of c, converting failures to warnings.
func (s *Searcher) scan(ctx context.Context, c *pathfinder.FileCandidate, q *pathfinder.Query, warn pathfinder.WarnFunc) *pathfinder.ContentMatch {
	if s.scanner == nil || !q.SearchContent {
		return nil
	}
	if !c.Readable {
		warn(pathfinder.Warning{Path: c.Path, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "%s is not readable", c.Path)})
		return nil
	}

	m, err := s.scanner.Scan(ctx, c, q)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	} else if err != nil {
		warn(pathfinder.Warning{Path: c.Path, Err: err})
		return nil
	}
	return m
}
