package mock

import (
	"context"

	"github.com/fwojciec/pathfinder"
)

var _ pathfinder.ContentScanner = (*ContentScanner)(nil)

// ContentScanner is a mock implementation of pathfinder.ContentScanner.
type ContentScanner struct {
	ScanFn func(ctx context.Context, c *pathfinder.FileCandidate, q *pathfinder.Query) (*pathfinder.ContentMatch, error)
}

func (s *ContentScanner) Scan(ctx context.Context, c *pathfinder.FileCandidate, q *pathfinder.Query) (*pathfinder.ContentMatch, error) {
	return s.ScanFn(ctx, c, q)
}
