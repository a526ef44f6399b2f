package cache

import (
	"container/list"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// Recency keeps what was used most recently. Hits move an entry to the front
// of the recency list; eviction removes the back. Entries that were never
// accessed keep their relative insertion order, so ties resolve to the
// earliest-inserted entry.
type Recency struct {
	capacity int
	order    *list.List // front = most recently used
	index    map[string]*list.Element
}

// NewRecency constructs an LRU cache of the given capacity.
func NewRecency(capacity int) (*Recency, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Recency{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}, nil
}

// Lookup reports a hit and promotes the entry to most-recently-used.
func (c *Recency) Lookup(id string) bool {
	el, ok := c.index[id]
	if !ok {
		return false
	}
	c.order.MoveToFront(el)
	return true
}

// Contains probes without promoting.
func (c *Recency) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Insert admits id, evicting the least-recently-used entry when full.
func (c *Recency) Insert(id string) (string, bool) {
	if el, ok := c.index[id]; ok {
		c.order.MoveToFront(el)
		return "", false
	}

	var evicted string
	var ok bool
	if c.order.Len() >= c.capacity {
		back := c.order.Back()
		evicted = back.Value.(string)
		ok = true
		c.order.Remove(back)
		delete(c.index, evicted)
	}

	c.index[id] = c.order.PushFront(id)
	return evicted, ok
}

func (c *Recency) Len() int      { return c.order.Len() }
func (c *Recency) Capacity() int { return c.capacity }

func (c *Recency) Kind() model.PolicyKind { return model.PolicyRecency }
