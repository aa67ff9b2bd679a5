// Package activity keeps a bounded, in-memory audit trail of engine mutations.
package activity

import (
	"fmt"
	"sync"
	"time"

	"reelfx/internal/effects"
)

// Type classifies an activity entry.
type Type string

const (
	TypeCreated    Type = "created"
	TypeUpdated    Type = "updated"
	TypeDeleted    Type = "deleted"
	TypeToggled    Type = "toggled"
	TypeDuplicated Type = "duplicated"
	TypeApplied    Type = "applied"
)

// DefaultCapacity bounds the log when no capacity is configured.
const DefaultCapacity = 1000

// Entry records one mutation.
type Entry struct {
	Sequence    uint64         `json:"seq"`
	ID          string         `json:"id"`
	Type        Type           `json:"type"`
	TargetID    string         `json:"target_id"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"ts"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Log is a fixed-capacity ring buffer. The oldest entry is evicted first.
type Log struct {
	mu       sync.RWMutex
	buffer   []Entry
	head     int // index of the oldest entry
	size     int
	nextSeq  uint64
	now      func() time.Time
	capacity int
}

// NewLog constructs a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		buffer:   make([]Entry, capacity),
		capacity: capacity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the timestamp source. Intended for tests.
func (l *Log) SetClock(now func() time.Time) {
	if l == nil || now == nil {
		return
	}
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

// Append records a new entry, assigning its sequence number, id and timestamp.
// The stored entry is returned.
func (l *Log) Append(typ Type, targetID, description string, metadata map[string]any) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextSeq++
	entry := Entry{
		Sequence:    l.nextSeq,
		ID:          fmt.Sprintf("activity-%d", l.nextSeq),
		Type:        typ,
		TargetID:    targetID,
		Description: description,
		Timestamp:   l.now(),
		Metadata:    effects.CloneMetadata(metadata),
	}
	if l.size < l.capacity {
		l.buffer[(l.head+l.size)%l.capacity] = entry
		l.size++
	} else {
		l.buffer[l.head] = entry
		l.head = (l.head + 1) % l.capacity
	}
	return entry.clone()
}

// Recent returns up to limit entries, most recent first. A limit <= 0
// returns the whole buffer.
func (l *Log) Recent(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > l.size {
		limit = l.size
	}
	out := make([]Entry, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (l.head + l.size - 1 - i) % l.capacity
		out = append(out, l.buffer[idx].clone())
	}
	return out
}

// Since returns entries with a sequence greater than seq, oldest first, along
// with the latest assigned sequence.
func (l *Log) Since(seq uint64) ([]Entry, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Entry
	for i := 0; i < l.size; i++ {
		e := l.buffer[(l.head+i)%l.capacity]
		if e.Sequence > seq {
			out = append(out, e.clone())
		}
	}
	return out, l.nextSeq
}

// Len reports the number of buffered entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Capacity reports the buffer bound.
func (l *Log) Capacity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.capacity
}

// Resize changes the capacity, keeping the newest entries that fit.
func (l *Log) Resize(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if capacity == l.capacity {
		return
	}
	keep := l.size
	if keep > capacity {
		keep = capacity
	}
	next := make([]Entry, capacity)
	for i := 0; i < keep; i++ {
		next[i] = l.buffer[(l.head+l.size-keep+i)%l.capacity]
	}
	l.buffer = next
	l.head = 0
	l.size = keep
	l.capacity = capacity
}

// Clear drops every entry. Sequence numbers keep increasing.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buffer = make([]Entry, l.capacity)
	l.head = 0
	l.size = 0
}

func (e Entry) clone() Entry {
	e.Metadata = effects.CloneMetadata(e.Metadata)
	return e
}
