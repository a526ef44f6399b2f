package cache

import "github.com/signalsfoundry/orbital-cdn/model"

type frequencyEntry struct {
	id       string
	count    uint64
	lastUsed uint64 // tick of the most recent insert or hit
}

// Frequency keeps what is used most often. Every hit increments an access
// counter; eviction removes the entry with the lowest counter, breaking ties
// by least-recently-used so stale high-frequency items cannot be retained
// forever by an old burst.
type Frequency struct {
	capacity int
	entries  map[string]*frequencyEntry

	// tick is a logical clock advanced on every insert and hit. It makes the
	// (count, lastUsed) eviction order total, and therefore deterministic.
	tick uint64
}

// NewFrequency constructs an LFU cache of the given capacity.
func NewFrequency(capacity int) (*Frequency, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Frequency{
		capacity: capacity,
		entries:  make(map[string]*frequencyEntry, capacity),
	}, nil
}

// Lookup reports a hit and increments the entry's access counter.
func (c *Frequency) Lookup(id string) bool {
	e, ok := c.entries[id]
	if !ok {
		return false
	}
	c.tick++
	e.count++
	e.lastUsed = c.tick
	return true
}

// Contains probes without counting an access.
func (c *Frequency) Contains(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// Insert admits id with an initial access count of one, evicting the
// least-frequently-used entry when full.
func (c *Frequency) Insert(id string) (string, bool) {
	c.tick++
	if e, ok := c.entries[id]; ok {
		e.count++
		e.lastUsed = c.tick
		return "", false
	}

	var evicted string
	var ok bool
	if len(c.entries) >= c.capacity {
		victim := c.victim()
		evicted = victim.id
		ok = true
		delete(c.entries, victim.id)
	}

	c.entries[id] = &frequencyEntry{id: id, count: 1, lastUsed: c.tick}
	return evicted, ok
}

// victim scans for the lowest (count, lastUsed) pair. lastUsed values are
// unique, so the scan yields the same entry regardless of map iteration order.
func (c *Frequency) victim() *frequencyEntry {
	var v *frequencyEntry
	for _, e := range c.entries {
		if v == nil || e.count < v.count || (e.count == v.count && e.lastUsed < v.lastUsed) {
			v = e
		}
	}
	return v
}

func (c *Frequency) Len() int      { return len(c.entries) }
func (c *Frequency) Capacity() int { return c.capacity }

func (c *Frequency) Kind() model.PolicyKind { return model.PolicyFrequency }
