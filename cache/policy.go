// Package cache implements the eviction policies behind a satellite node's
// content store: recency-based (LRU), frequency-based (LFU), insertion-order
// (FIFO), and an adaptive meta-policy that arbitrates between the three.
//
// All policies are deterministic: an identical sequence of Lookup/Insert calls
// produces an identical sequence of evictions. None of them are safe for
// concurrent use on their own; the owning node serialises access.
package cache

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// ErrInvalidCapacity is returned by constructors when the configured capacity
// is not positive. Capacity problems fail at construction time, never at
// call time.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// Policy is the capability set shared by all eviction policies.
type Policy interface {
	// Lookup reports whether id is cached, touching the entry on a hit
	// (recency bump and/or frequency increment, depending on the policy).
	Lookup(id string) bool

	// Contains reports whether id is cached without any side effects. It is
	// used for neighbor probes that must not perturb the probed cache.
	Contains(id string) bool

	// Insert admits id into the cache. When the cache is full and id is not
	// already present, exactly one entry is evicted and returned with
	// ok=true. Inserting a present id only refreshes its metadata.
	Insert(id string) (evicted string, ok bool)

	// Len returns the current entry count. Len() <= Capacity() always holds.
	Len() int

	// Capacity returns the configured maximum entry count.
	Capacity() int

	// Kind identifies the policy for reporting and configuration.
	Kind() model.PolicyKind
}

// New constructs the policy implementation for the given kind.
func New(kind model.PolicyKind, capacity int) (Policy, error) {
	switch kind {
	case model.PolicyRecency:
		return NewRecency(capacity)
	case model.PolicyFrequency:
		return NewFrequency(capacity)
	case model.PolicyInsertionOrder:
		return NewInsertionOrder(capacity)
	case model.PolicyAdaptive:
		return NewAdaptive(capacity)
	default:
		return nil, fmt.Errorf("unsupported policy kind %v", kind)
	}
}
