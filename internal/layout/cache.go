package layout

import (
	"hash/fnv"
)

// Cache stores computed line layouts keyed by row, validated by a
// content hash so a stale entry for an edited line is treated as a
// miss. Callers synchronize access; the Typesetter holds its own lock.
type Cache struct {
	entries map[int]*cacheEntry
	maxSize int
}

type cacheEntry struct {
	hash   uint64
	layout *LineLayout
}

// NewCache creates a cache holding up to maxSize layouts. Sizes below
// 1 default to 256.
func NewCache(maxSize int) *Cache {
	if maxSize < 1 {
		maxSize = 256
	}
	return &Cache{
		entries: make(map[int]*cacheEntry),
		maxSize: maxSize,
	}
}

// Lookup returns the cached layout for a row if its content hash
// still matches.
func (c *Cache) Lookup(row int, hash uint64) (*LineLayout, bool) {
	e, ok := c.entries[row]
	if !ok || e.hash != hash {
		return nil, false
	}
	return e.layout, true
}

// Store caches a layout for a row.
func (c *Cache) Store(row int, hash uint64, layout *LineLayout) {
	if len(c.entries) >= c.maxSize {
		c.evict()
	}
	c.entries[row] = &cacheEntry{hash: hash, layout: layout}
}

// Invalidate drops the entry for a row.
func (c *Cache) Invalidate(row int) {
	delete(c.entries, row)
}

// InvalidateFrom drops entries for row and all rows after it. Used
// when an edit shifts every following line.
func (c *Cache) InvalidateFrom(row int) {
	for r := range c.entries {
		if r >= row {
			delete(c.entries, r)
		}
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.entries = make(map[int]*cacheEntry)
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	return len(c.entries)
}

// evict removes about a quarter of the entries. Map iteration order
// stands in for LRU; layouts are cheap to recompute.
func (c *Cache) evict() {
	toRemove := len(c.entries) / 4
	if toRemove < 1 {
		toRemove = 1
	}
	for row := range c.entries {
		delete(c.entries, row)
		toRemove--
		if toRemove == 0 {
			break
		}
	}
}

// contentHash hashes line content with FNV-1a, mixing in the length
// to cut collision odds.
func contentHash(s string) uint64 {
	h := fnv.New64a()
	n := uint64(len(s))
	h.Write([]byte{
		byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24),
		byte(n >> 32), byte(n >> 40), byte(n >> 48), byte(n >> 56),
	})
	h.Write([]byte(s))
	return h.Sum64()
}
