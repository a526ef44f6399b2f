// Package catalog is the in-memory content catalog: immutable metadata for
// every deliverable content item, keyed by ID. The cache engine consumes the
// catalog but never owns or mutates its entries.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// ErrUnknownContent is returned when a lookup names an ID the catalog has
// never seen. The resolver surfaces it to the caller without retrying.
var ErrUnknownContent = errors.New("unknown content id")

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
	EventContentAdded EventType = iota
)

// Event is emitted to subscribers when the catalog changes.
type Event struct {
	Type    EventType
	Content model.ContentRef
}

// Catalog is a thread-safe store for content metadata.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]model.ContentRef

	subs []func(Event)
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]model.ContentRef),
	}
}

// Add registers a new content item. It returns an error if the ID is empty
// or already present.
func (c *Catalog) Add(ref model.ContentRef) error {
	if ref.ID == "" {
		return fmt.Errorf("content with empty id")
	}

	c.mu.Lock()
	if _, exists := c.entries[ref.ID]; exists {
		c.mu.Unlock()
		return fmt.Errorf("content with ID %q already exists", ref.ID)
	}
	c.entries[ref.ID] = ref
	event := Event{Type: EventContentAdded, Content: ref}
	subs := append([]func(Event){}, c.subs...)
	c.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Lookup returns the metadata for id, or ErrUnknownContent.
func (c *Catalog) Lookup(id string) (model.ContentRef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ref, ok := c.entries[id]
	if !ok {
		return model.ContentRef{}, fmt.Errorf("%w: %q", ErrUnknownContent, id)
	}
	return ref, nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// List returns a snapshot of all entries, sorted by ID for deterministic
// iteration.
func (c *Catalog) List() []model.ContentRef {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]model.ContentRef, 0, len(c.entries))
	for _, ref := range c.entries {
		res = append(res, ref)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Subscribe registers a callback for catalog events. It returns an
// unsubscribe function.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
	idx := len(c.subs) - 1

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if idx < 0 || idx >= len(c.subs) {
			return
		}
		c.subs = append(c.subs[:idx], c.subs[idx+1:]...)
		idx = -1
	}
}
