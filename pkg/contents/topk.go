package contents

import (
	"container/heap"
	"sort"
	"strings"
)

// Entry is one row of a ranked result: a package name and the number of
// files associated with it.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// less orders entries for ranking: higher count first, ties broken by
// ascending package name so output is reproducible across runs and
// implementations.
func less(a, b Entry) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return strings.Compare(a.Name, b.Name) < 0
}

// Top returns the k entries of c with the largest counts, sorted by count
// descending with ties broken by name ascending. If c has fewer than k
// packages all of them are returned; if k <= 0 the result is empty. The
// map is not mutated.
//
// Selection uses a bounded min-heap, O(n log k) over n distinct packages.
// The result is identical to sorting the whole map and truncating, which
// [sortedEntries] does and the tests cross-check.
func Top(c Counts, k int) []Entry {
	if k <= 0 || len(c) == 0 {
		return nil
	}
	if k >= len(c) {
		return sortedEntries(c)
	}

	h := make(bottomHeap, 0, k)
	for name, count := range c {
		e := Entry{Name: name, Count: count}
		if len(h) < k {
			heap.Push(&h, e)
			continue
		}
		// h[0] is the current weakest of the kept k; replace it only if
		// e would outrank it.
		if less(e, h[0]) {
			h[0] = e
			heap.Fix(&h, 0)
		}
	}

	entries := []Entry(h)
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	return entries
}

// sortedEntries returns every entry of c in ranked order.
func sortedEntries(c Counts) []Entry {
	entries := make([]Entry, 0, len(c))
	for name, count := range c {
		entries = append(entries, Entry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	return entries
}

// bottomHeap is a min-heap by rank: the root is the entry that would be
// evicted first. Since less ranks best-first, the heap comparison inverts it.
type bottomHeap []Entry

func (h bottomHeap) Len() int           { return len(h) }
func (h bottomHeap) Less(i, j int) bool { return less(h[j], h[i]) }
func (h bottomHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *bottomHeap) Push(x any)        { *h = append(*h, x.(Entry)) }
func (h *bottomHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
