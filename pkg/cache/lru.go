package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a thread-safe cache that evicts the least recently used entry
// when it grows past its capacity.
type LRUCache[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

// NewLRUCache creates a cache holding up to capacity entries.
// It panics when capacity is not positive.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		eviction: list.New(),
	}
}

// Get returns the value stored under key and marks it as recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.eviction.MoveToFront(elem)
	return elem.Value.(*lruEntry[K, V]).value, true
}

// Put stores value under key. It returns the replaced value, if any.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		old := entry.value
		entry.value = value
		return old, true
	}

	c.items[key] = c.eviction.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*lruEntry[K, V]).key)
	}

	var zero V
	return zero, false
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}
