package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pathfinder"
	"github.com/fwojciec/pathfinder/mock"
	"github.com/stretchr/testify/assert"
)

func TestCandidates(t *testing.T) {
	t.Parallel()

	a := &pathfinder.FileCandidate{Path: "/a"}
	b := &pathfinder.FileCandidate{Path: "/b"}

	t.Run("yields candidates in order", func(t *testing.T) {
		t.Parallel()

		w := &mock.Walker{WalkFn: mock.Candidates(a, b)}

		var got []string
		for c := range w.Walk(context.Background(), nil, nil) {
			got = append(got, c.Path)
		}

		assert.Equal(t, []string{"/a", "/b"}, got)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := &mock.Walker{WalkFn: mock.Candidates(a, b)}

		var got []string
		for c := range w.Walk(ctx, nil, nil) {
			got = append(got, c.Path)
		}

		assert.Empty(t, got)
	})
}
