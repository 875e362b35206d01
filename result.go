package pathfinder

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"
)

// Signals is the set of signals a result matched on.
type Signals uint8

// Signal constants.
const (
	SignalFilename Signals = 1 << iota
	SignalExtension
	SignalContent
)

// Has reports whether all signals in o are set.
func (s Signals) Has(o Signals) bool {
	return s&o == o
}

// Names returns the names of the set signals in a fixed order.
func (s Signals) Names() []string {
	var names []string
	if s.Has(SignalFilename) {
		names = append(names, "filename")
	}
	if s.Has(SignalExtension) {
		names = append(names, "extension")
	}
	if s.Has(SignalContent) {
		names = append(names, "content")
	}
	return names
}

// String returns the signal names joined by commas.
func (s Signals) String() string {
	return strings.Join(s.Names(), ",")
}

// ScoredResult is a ranked match.
type ScoredResult struct {
	Path      string
	Root      string
	Score     float64
	MatchedOn Signals

	Depth       int
	Occurrences uint
	Size        int64
	ModTime     time.Time
}

// CompareResults orders results by score descending, then by depth
// ascending, then by path.
func CompareResults(a, b *ScoredResult) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}

// Aggregator collects scored results and returns them ranked.
// It is safe for concurrent use by multiple goroutines.
type Aggregator struct {
	mu      sync.Mutex
	results []*ScoredResult
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add records r. Nil results and results without a positive score are dropped.
func (a *Aggregator) Add(r *ScoredResult) {
	if r == nil || r.Score <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, r)
}

// Len returns the number of results collected so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.results)
}

// Results returns the collected results sorted by CompareResults and
// truncated to limit. A limit <= 0 returns everything.
func (a *Aggregator) Results(limit int) []*ScoredResult {
	a.mu.Lock()
	out := slices.Clone(a.results)
	a.mu.Unlock()

	slices.SortFunc(out, CompareResults)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Warning is a non-fatal problem encountered during a search.
type Warning struct {
	Path string
	Err  error
}

// Code returns the application error code of the warning.
func (w Warning) Code() string {
	return ErrorCode(w.Err)
}

// Message returns the user-facing warning message.
func (w Warning) Message() string {
	return ErrorMessage(w.Err)
}

// SortWarnings orders warnings by path, then code.
func SortWarnings(ws []Warning) {
	slices.SortStableFunc(ws, func(a, b Warning) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.Code(), b.Code())
	})
}

// Report is the complete outcome of a search.
type Report struct {
	Results  []*ScoredResult
	Warnings []Warning

	// Truncated is true when the search was canceled before the walk
	// finished; Results then holds what was gathered until that point.
	Truncated bool

	// Visited counts candidates produced by the walk; Scanned counts
	// candidates whose content was searched.
	Visited int
	Scanned int
}
