// Package fs implements pathfinder.Walker over the local filesystem and
// resolves the host's well-known folders used as default search roots.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/fwojciec/pathfinder"
	"github.com/fwojciec/pathfinder/bloom"
)

// Visited-set sizing for a single walk.
const (
	// visitedExpectedPaths is the expected number of paths for Bloom filter sizing.
	visitedExpectedPaths = 100_000
	// visitedFalsePositiveRate is the Bloom prefilter's false positive rate.
	visitedFalsePositiveRate = 0.01
)

// Ensure Walker implements pathfinder.Walker at compile time.
var _ pathfinder.Walker = (*Walker)(nil)

// Walker walks directory trees depth-first, visiting entries of each
// directory in lexicographic order. Entries whose name starts with a dot
// are skipped, as are paths matching the exclude patterns. Every file and
// directory is visited at most once per walk, keyed by canonical path.
type Walker struct {
	maxDepth       int
	followSymlinks bool
	exclude        *ignore.GitIgnore
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth sets how many directory levels below a root are entered.
// Defaults to pathfinder.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(w *Walker) {
		w.maxDepth = n
	}
}

// WithFollowSymlinks makes the walker resolve symbolic links instead of
// skipping them.
func WithFollowSymlinks(follow bool) Option {
	return func(w *Walker) {
		w.followSymlinks = follow
	}
}

// WithExclude sets .gitignore-style patterns, matched against paths
// relative to each root.
func WithExclude(patterns []string) Option {
	return func(w *Walker) {
		if len(patterns) == 0 {
			w.exclude = nil
			return
		}
		w.exclude = ignore.CompileIgnoreLines(patterns...)
	}
}

// NewWalker creates a new Walker.
func NewWalker(opts ...Option) *Walker {
	w := &Walker{
		maxDepth: pathfinder.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewWalkerFromConfig creates a Walker from the traversal settings of cfg.
func NewWalkerFromConfig(cfg pathfinder.Config) *Walker {
	return NewWalker(
		WithMaxDepth(cfg.MaxDepth),
		WithFollowSymlinks(cfg.FollowSymlinks),
		WithExclude(cfg.Exclude),
	)
}

// dirEntry is a directory waiting on the walk stack.
type dirEntry struct {
	path  string
	canon string
	depth int
}

// Walk implements pathfinder.Walker.
func (w *Walker) Walk(ctx context.Context, roots []string, warn pathfinder.WarnFunc) iter.Seq[*pathfinder.FileCandidate] {
	if warn == nil {
		warn = func(pathfinder.Warning) {}
	}
	return func(yield func(*pathfinder.FileCandidate) bool) {
		visited := bloom.NewSet(visitedExpectedPaths, visitedFalsePositiveRate)
		for _, root := range roots {
			if ctx.Err() != nil {
				return
			}
			if !w.walkRoot(ctx, root, visited, warn, yield) {
				return
			}
		}
	}
}

// walkRoot walks a single root. It returns false when the consumer stopped
// the sequence or ctx was canceled.
func (w *Walker) walkRoot(ctx context.Context, root string, visited *bloom.Set, warn pathfinder.WarnFunc, yield func(*pathfinder.FileCandidate) bool) bool {
	abs, err := filepath.Abs(root)
	if err != nil {
		warn(pathfinder.Warning{Path: root, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "resolving root %q: %v", root, err)})
		return true
	}

	info, err := os.Stat(abs)
	if errors.Is(err, iofs.ErrNotExist) {
		warn(pathfinder.Warning{Path: abs, Err: pathfinder.Errorf(pathfinder.ENOTFOUND, "root %q does not exist", abs)})
		return true
	} else if err != nil {
		warn(pathfinder.Warning{Path: abs, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "root %q: %v", abs, err)})
		return true
	}
	if !info.IsDir() {
		warn(pathfinder.Warning{Path: abs, Err: pathfinder.Errorf(pathfinder.ENOTFOUND, "root %q is not a directory", abs)})
		return true
	}

	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		warn(pathfinder.Warning{Path: abs, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "root %q: %v", abs, err)})
		return true
	}
	// Already covered by an earlier root.
	if !visited.Visit(canon) {
		return true
	}

	stack := []dirEntry{{path: abs, canon: canon, depth: 0}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			return false
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// ReadDir returns entries sorted by name, plus any read before an error.
		entries, err := os.ReadDir(dir.path)
		if err != nil {
			warn(pathfinder.Warning{Path: dir.path, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "reading directory %q: %v", dir.path, err)})
		}

		var subdirs []dirEntry
		for _, e := range entries {
			if ctx.Err() != nil {
				return false
			}

			name := e.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}

			path := filepath.Join(dir.path, name)
			if w.excluded(abs, path) {
				continue
			}

			target, info, ok := w.resolve(e, path, filepath.Join(dir.canon, name), warn)
			if !ok {
				continue
			}

			if info.IsDir() {
				if dir.depth+1 > w.maxDepth {
					continue
				}
				if !visited.Visit(target) {
					continue
				}
				subdirs = append(subdirs, dirEntry{path: path, canon: target, depth: dir.depth + 1})
				continue
			}

			if !info.Mode().IsRegular() || !visited.Visit(target) {
				continue
			}

			if !yield(newCandidate(abs, path, name, dir.depth+1, info)) {
				return false
			}
		}

		// Push in reverse so subdirectories are popped in name order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return true
}

// resolve returns the canonical path and file info of an entry. Symbolic
// links are skipped unless the walker follows them.
func (w *Walker) resolve(e os.DirEntry, path, canon string, warn pathfinder.WarnFunc) (string, os.FileInfo, bool) {
	if e.Type()&os.ModeSymlink == 0 {
		info, err := e.Info()
		if err != nil {
			// Removed between listing and stat.
			if !errors.Is(err, iofs.ErrNotExist) {
				warn(pathfinder.Warning{Path: path, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "stat %q: %v", path, err)})
			}
			return "", nil, false
		}
		return canon, info, true
	}

	if !w.followSymlinks {
		return "", nil, false
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		warn(pathfinder.Warning{Path: path, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "resolving link %q: %v", path, err)})
		return "", nil, false
	}
	info, err := os.Stat(target)
	if err != nil {
		warn(pathfinder.Warning{Path: path, Err: pathfinder.Errorf(pathfinder.EUNREADABLE, "stat %q: %v", target, err)})
		return "", nil, false
	}
	return target, info, true
}

func (w *Walker) excluded(root, path string) bool {
	if w.exclude == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return w.exclude.MatchesPath(filepath.ToSlash(rel))
}

func newCandidate(root, path, name string, depth int, info os.FileInfo) *pathfinder.FileCandidate {
	stem, ext := pathfinder.SplitName(name)
	return &pathfinder.FileCandidate{
		Path:     path,
		Root:     root,
		Name:     name,
		Stem:     stem,
		Ext:      ext,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Depth:    depth,
		Readable: info.Mode().Perm()&0o444 != 0,
	}
}
