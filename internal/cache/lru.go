package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the catalog result cache size used when none is configured.
const DefaultCapacity = 512

// LRU is a bounded least-recently-used cache keyed by normalized query string.
//
// A Get hit refreshes recency; Put evicts the single least-recently-used
// entry when at capacity. There is no expiry beyond capacity-driven eviction.
// Safe for concurrent use. Concurrent identical lookups are not de-duplicated:
// two parallel misses for the same key may both consult the catalog provider.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type lruEntry[V any] struct {
	key   string
	value V
}

// NewLRU creates an LRU cache with the given capacity.
// Capacities below 1 fall back to [DefaultCapacity].
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &LRU[V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached value for key and refreshes its recency.
// The second return reports whether the key was present.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry[V]).value, true
}

// Put stores value under key, evicting the least-recently-used entry first
// when the cache is at capacity. Storing an existing key refreshes its
// recency and replaces its value.
func (c *LRU[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*lruEntry[V]).value = value
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry[V]).key)
		}
	}

	c.entries[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the configured capacity.
func (c *LRU[V]) Capacity() int {
	return c.capacity
}
