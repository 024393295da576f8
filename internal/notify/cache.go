package notify

import (
	"sync"

	"earnbot/internal/model"
)

// Cache eviction thresholds: Compact trims to the newest retainCount
// entries once the cache grows past maxEntries.
const (
	maxEntries  = 50
	retainCount = 25
)

// Cache is a bounded in-memory store of recently dispatched listings,
// keyed by listing ID. It exists so that a save callback arriving after
// the notification was sent can recover the full listing without
// re-querying the source. Eviction is by insertion order, not access
// order; entries do not survive a restart.
//
// The dispatcher writes to the cache while the bot's callback handler
// reads from it, so access is mutex-guarded.
type Cache struct {
	mu      sync.Mutex
	entries map[string]model.Listing
	order   []string
}

// NewCache returns an empty listing cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]model.Listing)}
}

// Put stores a listing snapshot. Re-inserting an existing ID overwrites
// the snapshot and moves it to the newest position.
func (c *Cache) Put(l model.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[l.ID]; ok {
		for i, id := range c.order {
			if id == l.ID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	c.entries[l.ID] = l
	c.order = append(c.order, l.ID)
}

// Get returns the cached listing for id, or false if it was never
// cached or has been evicted.
func (c *Cache) Get(id string) (model.Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.entries[id]
	return l, ok
}

// Compact enforces the size ceiling: once the cache holds more than
// maxEntries listings, only the newest retainCount are kept.
func (c *Cache) Compact() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.order) <= maxEntries {
		return
	}
	evict := c.order[:len(c.order)-retainCount]
	for _, id := range evict {
		delete(c.entries, id)
	}
	c.order = append([]string(nil), c.order[len(c.order)-retainCount:]...)
}

// Len returns the number of cached listings.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
