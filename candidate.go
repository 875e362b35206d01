package pathfinder

import (
	"context"
	"iter"
	"time"
)

// FileCandidate is one file produced by a Walker.
type FileCandidate struct {
	// Path is the path as reached from Root (not resolved).
	Path string
	// Root is the root directory the file was found under.
	Root string

	Name    string
	Stem    string
	Ext     string // Leading dot included; empty if none.
	Size    int64
	ModTime time.Time

	// Depth is the number of path elements between Root and the file;
	// a file directly inside Root has depth 1.
	Depth int

	// Readable is false when the file's permissions rule out reading it.
	// Unreadable candidates are never passed to a ContentScanner.
	Readable bool
}

// Encoding identifies how a file's bytes were decoded for content search.
type Encoding int

// Encoding constants.
const (
	EncodingUTF8 Encoding = iota
	EncodingLatin1
	EncodingBinary
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingLatin1:
		return "latin-1"
	case EncodingBinary:
		return "binary"
	}
	return "unknown"
}

// ContentMatch is the outcome of scanning one file's text.
type ContentMatch struct {
	Occurrences uint
	Encoding    Encoding
}

// WarnFunc receives non-fatal problems found during a search.
type WarnFunc func(Warning)

// Walker produces the files below a set of root directories.
type Walker interface {
	// Walk returns a lazy sequence of candidates below roots, visited in
	// root order and lexicographic order within each directory. Each call
	// performs a fresh walk. Missing roots and unreadable entries are
	// reported through warn and skipped. The sequence ends early when ctx
	// is canceled.
	Walk(ctx context.Context, roots []string, warn WarnFunc) iter.Seq[*FileCandidate]
}

// ContentScanner searches a file's text for a query term.
type ContentScanner interface {
	// Scan counts case-insensitive occurrences of q.Term in the file.
	// Returns a nil match when scanning does not apply (binary content,
	// content search disabled). Errors carry EUNREADABLE or ETOOLARGE and
	// are never fatal to a search.
	Scan(ctx context.Context, c *FileCandidate, q *Query) (*ContentMatch, error)
}
