// Package timeindex answers overlap queries over half-open [start, end)
// intervals keyed by id.
package timeindex

import (
	"sort"
	"sync"
)

type entry struct {
	id    string
	start float64
	end   float64
	seq   uint64 // insertion order, used as a tie breaker
}

// Index keeps intervals sorted by start. Queries binary-search the start
// column and use the longest stored interval to bound the scan.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	byID    map[string]entry
	maxSpan float64
	nextSeq uint64
}

// New returns an empty index.
func New() *Index {
	return &Index{byID: make(map[string]entry)}
}

// Put inserts or replaces the interval for id.
func (x *Index) Put(id string, start, duration float64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	seq := x.nextSeq
	if old, ok := x.byID[id]; ok {
		x.removeLocked(old)
		seq = old.seq
	} else {
		x.nextSeq++
	}
	e := entry{id: id, start: start, end: start + duration, seq: seq}
	pos := sort.Search(len(x.entries), func(i int) bool { return less(e, x.entries[i]) })
	x.entries = append(x.entries, entry{})
	copy(x.entries[pos+1:], x.entries[pos:])
	x.entries[pos] = e
	x.byID[id] = e
	if duration > x.maxSpan {
		x.maxSpan = duration
	}
}

// Remove drops id. It reports whether the id was indexed.
func (x *Index) Remove(id string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	old, ok := x.byID[id]
	if !ok {
		return false
	}
	x.removeLocked(old)
	return true
}

// Query returns the ids whose interval overlaps [a, b), ordered by start
// then insertion. An interval overlaps when start < b and end > a, so a
// point query (a == b) selects the intervals strictly containing it.
func (x *Index) Query(a, b float64) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if len(x.entries) == 0 {
		return nil
	}
	// Anything starting before a-maxSpan has already ended.
	lo := sort.Search(len(x.entries), func(i int) bool { return x.entries[i].start >= a-x.maxSpan })
	hi := sort.Search(len(x.entries), func(i int) bool { return x.entries[i].start >= b })
	if lo >= hi {
		return nil
	}
	var out []string
	for _, e := range x.entries[lo:hi] {
		if e.end > a {
			out = append(out, e.id)
		}
	}
	return out
}

// At returns the ids whose interval contains t.
func (x *Index) At(t float64) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	hi := sort.Search(len(x.entries), func(i int) bool { return x.entries[i].start > t })
	var out []string
	for _, e := range x.entries[:hi] {
		if e.end > t {
			out = append(out, e.id)
		}
	}
	return out
}

// Len reports the number of indexed intervals.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Clear removes every interval.
func (x *Index) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = nil
	x.byID = make(map[string]entry)
	x.maxSpan = 0
}

func (x *Index) removeLocked(old entry) {
	pos := sort.Search(len(x.entries), func(i int) bool { return !less(x.entries[i], old) })
	for pos < len(x.entries) && x.entries[pos].id != old.id {
		pos++
	}
	if pos < len(x.entries) {
		x.entries = append(x.entries[:pos], x.entries[pos+1:]...)
	}
	delete(x.byID, old.id)
	if old.end-old.start >= x.maxSpan {
		x.recomputeSpanLocked()
	}
}

func (x *Index) recomputeSpanLocked() {
	x.maxSpan = 0
	for _, e := range x.entries {
		if span := e.end - e.start; span > x.maxSpan {
			x.maxSpan = span
		}
	}
}

func less(a, b entry) bool {
	if a.start != b.start {
		return a.start < b.start
	}
	return a.seq < b.seq
}
