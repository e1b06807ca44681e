package internal

import (
	"crypto/md5"
	"fmt"
	"sync"
	"time"
)

// CacheEntry holds one parsed tree together with its bookkeeping times.
type CacheEntry struct {
	Tree         *Tree
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache avoids re-parsing identical templates. Entries are keyed by the md5
// of the normalized source text, so two files with the same content share one
// tree. Purely an optimization; correctness never depends on it.
type Cache struct {
	mutex   sync.Mutex
	entries map[string]CacheEntry
	maxAge  time.Duration
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]CacheEntry),
	}
}

// Get returns the cached tree for the given normalized source, if present
// and not expired.
func (c *Cache) Get(normalized string) (*Tree, bool) {
	key := sourceKey(normalized)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		delete(c.entries, key)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry

	return entry.Tree, true
}

// Set stores the tree for the given normalized source.
func (c *Cache) Set(normalized string, tree *Tree) {
	key := sourceKey(normalized)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = CacheEntry{
		Tree:         tree,
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}
}

// SetMaxAge bounds entry lifetime. Zero means entries never expire.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

func sourceKey(normalized string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(normalized)))
}
