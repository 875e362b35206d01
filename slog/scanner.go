package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pathfinder"
)

// Ensure LoggingScanner implements pathfinder.ContentScanner.
var _ pathfinder.ContentScanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a ContentScanner with debug logging.
type LoggingScanner struct {
	next   pathfinder.ContentScanner
	logger *slog.Logger
}

// NewLoggingScanner creates a new LoggingScanner.
func NewLoggingScanner(next pathfinder.ContentScanner, logger *slog.Logger) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger}
}

// Scan delegates to the wrapped scanner and logs the operation.
func (s *LoggingScanner) Scan(ctx context.Context, c *pathfinder.FileCandidate, q *pathfinder.Query) (m *pathfinder.ContentMatch, err error) {
	defer func(begin time.Time) {
		attrs := []any{"path", c.Path}
		if m != nil {
			attrs = append(attrs, "hits", m.Occurrences, "encoding", m.Encoding.String())
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Debug("scan", attrs...)
	}(time.Now())
	return s.next.Scan(ctx, c, q)
}
