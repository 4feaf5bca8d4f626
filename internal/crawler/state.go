package crawler

import (
	"slices"
	"sync"
	"sync/atomic"
)

// VisitedSet is the set of URLs claimed by a crawl.
// It is safe for concurrent use.
//
// Design decision: We use sync.Map rather than a map guarded by a mutex
// because:
//  1. Keys are written once and then only read, the case sync.Map is built for
//  2. LoadOrStore gives an atomic insert-if-absent in a single call
//  3. Tasks on different URLs never contend on a shared lock
type VisitedSet struct {
	urls sync.Map
	size atomic.Int64
}

// NewVisitedSet returns an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{}
}

// Add claims url. It returns true if url was not in the set before; of
// several concurrent calls with the same url exactly one returns true.
func (v *VisitedSet) Add(url string) bool {
	if _, loaded := v.urls.LoadOrStore(url, struct{}{}); loaded {
		return false
	}
	v.size.Add(1)
	return true
}

// Contains reports whether url has been claimed.
func (v *VisitedSet) Contains(url string) bool {
	_, ok := v.urls.Load(url)
	return ok
}

// Len returns the number of claimed URLs.
func (v *VisitedSet) Len() int {
	return int(v.size.Load())
}

// URLs returns the claimed URLs in lexical order.
func (v *VisitedSet) URLs() []string {
	out := make([]string, 0, v.Len())
	v.urls.Range(func(key, _ any) bool {
		out = append(out, key.(string)) //nolint:forcetypeassert // only strings are stored
		return true
	})
	slices.Sort(out)
	return out
}

// WordCounts accumulates word frequencies from many pages.
// It is safe for concurrent use, and the totals do not depend on the order
// in which pages are merged.
type WordCounts struct {
	counts sync.Map // word -> *atomic.Int64
}

// NewWordCounts returns an empty WordCounts.
func NewWordCounts() *WordCounts {
	return &WordCounts{}
}

// Add adds n occurrences of word.
func (w *WordCounts) Add(word string, n int) {
	counter, ok := w.counts.Load(word)
	if !ok {
		counter, _ = w.counts.LoadOrStore(word, new(atomic.Int64))
	}
	counter.(*atomic.Int64).Add(int64(n)) //nolint:forcetypeassert // only counters are stored
}

// Merge adds every count of page.
func (w *WordCounts) Merge(page map[string]int) {
	for word, n := range page {
		w.Add(word, n)
	}
}

// Get returns the count of word.
func (w *WordCounts) Get(word string) int {
	counter, ok := w.counts.Load(word)
	if !ok {
		return 0
	}
	return int(counter.(*atomic.Int64).Load()) //nolint:forcetypeassert // only counters are stored
}

// Snapshot returns a copy of all counts.
// Call it after all merges have finished to get the final totals.
func (w *WordCounts) Snapshot() map[string]int {
	out := make(map[string]int)
	w.counts.Range(func(key, value any) bool {
		out[key.(string)] = int(value.(*atomic.Int64).Load()) //nolint:forcetypeassert // only counters are stored
		return true
	})
	return out
}
