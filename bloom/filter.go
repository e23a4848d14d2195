// Package bloom provides content deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/doxhund"
)

// Ensure Filter implements doxhund.FingerprintFilter at compile time.
var _ doxhund.FingerprintFilter = (*Filter)(nil)

// Filter wraps a Bloom filter of content fingerprints.
// It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected fingerprints
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a fingerprint to the filter.
func (f *Filter) Add(fingerprint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(fingerprint)
}

// Test returns true if the fingerprint might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(fingerprint string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(fingerprint)
}

// TestAndAdd returns the result of Test and adds the fingerprint.
func (f *Filter) TestAndAdd(fingerprint string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(fingerprint)
}

// EstimatedCount returns the approximate number of fingerprints in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
