package cache

import (
	"container/list"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// InsertionOrder keeps what arrived longest ago out of the cache last: a
// strict FIFO. Accesses never change eviction priority.
type InsertionOrder struct {
	capacity int
	order    *list.List // front = oldest insertion
	index    map[string]*list.Element
}

// NewInsertionOrder constructs a FIFO cache of the given capacity.
func NewInsertionOrder(capacity int) (*InsertionOrder, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &InsertionOrder{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}, nil
}

// Lookup reports a hit. FIFO order is fixed at insertion, so nothing moves.
func (c *InsertionOrder) Lookup(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Contains is identical to Lookup for FIFO; it exists to satisfy Policy.
func (c *InsertionOrder) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Insert admits id at the tail, evicting the oldest entry when full.
func (c *InsertionOrder) Insert(id string) (string, bool) {
	if _, ok := c.index[id]; ok {
		return "", false
	}

	var evicted string
	var ok bool
	if c.order.Len() >= c.capacity {
		front := c.order.Front()
		evicted = front.Value.(string)
		ok = true
		c.order.Remove(front)
		delete(c.index, evicted)
	}

	c.index[id] = c.order.PushBack(id)
	return evicted, ok
}

func (c *InsertionOrder) Len() int      { return c.order.Len() }
func (c *InsertionOrder) Capacity() int { return c.capacity }

func (c *InsertionOrder) Kind() model.PolicyKind { return model.PolicyInsertionOrder }
