// Package bloom provides canonical-path deduplication using Bloom filters.
package bloom

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Set records visited paths as 64-bit xxhash keys. The exact key set is
// authoritative; the Bloom filter only lets first visits skip the key
// lookup, so a saturated filter costs lookups but never reports a false
// duplicate. It is safe for concurrent use by multiple goroutines.
type Set struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	keys   map[uint64]struct{}
}

// NewSet creates a Set whose Bloom filter is sized for n expected paths
// at the given false positive rate. The key set grows on demand.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter: bloom.NewWithEstimates(n, fpRate),
		keys:   make(map[uint64]struct{}),
	}
}

// Visit marks path as visited. It returns true the first time a path is
// seen and false on every later call.
func (s *Set) Visit(path string) bool {
	key := xxhash.Sum64String(path)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestAndAdd(buf[:]) {
		if _, ok := s.keys[key]; ok {
			return false
		}
	}
	s.keys[key] = struct{}{}
	return true
}
