package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/pathfinder"
)

var _ pathfinder.Walker = (*Walker)(nil)

// Walker is a mock implementation of pathfinder.Walker.
type Walker struct {
	WalkFn func(ctx context.Context, roots []string, warn pathfinder.WarnFunc) iter.Seq[*pathfinder.FileCandidate]
}

func (w *Walker) Walk(ctx context.Context, roots []string, warn pathfinder.WarnFunc) iter.Seq[*pathfinder.FileCandidate] {
	return w.WalkFn(ctx, roots, warn)
}

// Candidates returns a WalkFn producing cs in order, stopping early when
// ctx is canceled.
func Candidates(cs ...*pathfinder.FileCandidate) func(context.Context, []string, pathfinder.WarnFunc) iter.Seq[*pathfinder.FileCandidate] {
	return func(ctx context.Context, _ []string, _ pathfinder.WarnFunc) iter.Seq[*pathfinder.FileCandidate] {
		return func(yield func(*pathfinder.FileCandidate) bool) {
			for _, c := range cs {
				if ctx.Err() != nil {
					return
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}
