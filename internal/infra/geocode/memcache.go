package geocode

import (
	"container/list"
	"context"
	"sync"

	"partage/internal/usecase/shared"
)

// DefaultMemoryCacheCapacity applies when no explicit capacity is configured.
const DefaultMemoryCacheCapacity = 128

// MemoryCache is a fixed-capacity LRU address cache. It serves deployments
// without redis and keeps unit tests hermetic; once full, inserting a new
// address evicts the least recently used one.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	recency  *list.List // front is most recently used
	items    map[string]*list.Element
}

type memoryCacheEntry struct {
	address string
	coords  shared.Coordinates
}

func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultMemoryCacheCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		recency:  list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

var _ Cache = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context, address string) (shared.Coordinates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[address]
	if !ok {
		return shared.Coordinates{}, false
	}
	c.recency.MoveToFront(el)
	return el.Value.(*memoryCacheEntry).coords, true
}

func (c *MemoryCache) Set(_ context.Context, address string, coords shared.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[address]; ok {
		el.Value.(*memoryCacheEntry).coords = coords
		c.recency.MoveToFront(el)
		return
	}

	c.items[address] = c.recency.PushFront(&memoryCacheEntry{address: address, coords: coords})
	if c.recency.Len() > c.capacity {
		oldest := c.recency.Back()
		c.recency.Remove(oldest)
		delete(c.items, oldest.Value.(*memoryCacheEntry).address)
	}
}

// Len reports the number of cached addresses.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}
