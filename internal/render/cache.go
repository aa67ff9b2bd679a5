package render

import (
	"container/list"
	"sync"
)

// Key identifies a cached frame.
type Key struct {
	FrameNumber int
	Time        float64
	Fingerprint uint64
}

// KeyFor builds the cache key of a frame request.
func KeyFor(frame int, t float64, opts Options) Key {
	return Key{FrameNumber: frame, Time: t, Fingerprint: opts.Fingerprint()}
}

type cacheEntry struct {
	key    Key
	start  float64
	end    float64
	result Result
}

// CacheStats summarizes cache effectiveness.
type CacheStats struct {
	Entries  int     `json:"entries"`
	Capacity int     `json:"capacity"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRate  float64 `json:"hit_rate"`
}

// Cache is a least-recently-used frame cache with its own lock.
// A capacity of zero disables caching.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[Key]*list.Element
	hits     uint64
	misses   uint64
	epoch    uint64
}

// NewCache constructs a cache holding at most capacity frames.
func NewCache(capacity int) *Cache {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[Key]*list.Element),
	}
}

// Get returns the cached result and marks it recently used.
func (c *Cache) Get(key Key) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		c.misses++
		return Result{}, false
	}
	c.hits++
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).result.Clone(), true
}

// Put stores result for key, covering the frame window [start, end).
// It returns the number of entries evicted to make room.
func (c *Cache) Put(key Key, start, end float64, result Result) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capacity == 0 {
		return 0
	}
	return c.storeLocked(key, start, end, result)
}

func (c *Cache) storeLocked(key Key, start, end float64, result Result) int {
	if el, ok := c.items[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.start, entry.end, entry.result = start, end, result.Clone()
		c.ll.MoveToFront(el)
		return 0
	}
	c.items[key] = c.ll.PushFront(&cacheEntry{key: key, start: start, end: end, result: result.Clone()})
	return c.trimLocked()
}

// Epoch changes whenever frames are invalidated or the cache is cleared.
// A render planned under an older epoch may describe stale state.
func (c *Cache) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// PutAt stores result like Put unless the cache was invalidated after epoch
// was observed. It reports whether the result was stored.
func (c *Cache) PutAt(epoch uint64, key Key, start, end float64, result Result) (bool, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch || c.capacity == 0 {
		return false, 0
	}
	return true, c.storeLocked(key, start, end, result)
}

// InvalidateRange evicts every frame whose window overlaps [a, b) and
// returns the count. A zero-width window at t overlaps when a <= t < b.
func (c *Cache) InvalidateRange(a, b float64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	evicted := 0
	for el := c.ll.Front(); el != nil; {
		next := el.Next()
		entry := el.Value.(*cacheEntry)
		if overlaps(entry.start, entry.end, a, b) {
			c.ll.Remove(el)
			delete(c.items, entry.key)
			evicted++
		}
		el = next
	}
	return evicted
}

// Resize changes the capacity, evicting the least recently used frames.
func (c *Cache) Resize(capacity int) int {
	if capacity < 0 {
		capacity = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capacity = capacity
	return c.trimLocked()
}

// Clear empties the cache and resets the hit counters. It returns the
// number of frames dropped.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.ll.Len()
	c.ll.Init()
	c.items = make(map[Key]*list.Element)
	c.hits, c.misses = 0, 0
	c.epoch++
	return n
}

// Len reports the number of cached frames.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := CacheStats{Entries: c.ll.Len(), Capacity: c.capacity, Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

func (c *Cache) trimLocked() int {
	evicted := 0
	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
		evicted++
	}
	return evicted
}

func overlaps(start, end, a, b float64) bool {
	if end <= start {
		return start >= a && start < b
	}
	return start < b && end > a
}
