package core

import (
	"fmt"
	"sync"

	"github.com/signalsfoundry/orbital-cdn/cache"
	"github.com/signalsfoundry/orbital-cdn/model"
)

// Node is one capacity-bounded cache instance in the constellation: an
// eviction policy bound to a position, plus cumulative performance counters.
//
// All cache mutations are serialised by the node's mutex, so at most one
// in-flight mutation exists per node regardless of how many requests the
// calling layer dispatches concurrently. Stats reads are snapshot-consistent.
type Node struct {
	ID       string
	Position model.SatellitePosition

	// ecef is derived from Position once at construction.
	ecef Vec3

	mu     sync.Mutex
	policy cache.Policy

	hits         uint64
	misses       uint64
	neighborHits uint64
	evictions    uint64
	requests     uint64
}

// NewNode constructs a cache node. Capacity and policy problems fail here,
// never during request processing.
func NewNode(id string, pos model.SatellitePosition, kind model.PolicyKind, capacity int) (*Node, error) {
	if id == "" {
		return nil, fmt.Errorf("node with empty id")
	}
	policy, err := cache.New(kind, capacity)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", id, err)
	}
	return &Node{
		ID:       id,
		Position: pos,
		ecef:     ECEFFromGeodetic(pos),
		policy:   policy,
	}, nil
}

// Request performs the local cache check for one content request, updating
// the hit/miss counters atomically with the lookup.
func (n *Node) Request(contentID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.requests++
	if n.policy.Lookup(contentID) {
		n.hits++
		return true
	}
	n.misses++
	return false
}

// RecordNeighborHit reclassifies the most recent local miss as a neighbor
// hit, so misses ends up counting origin fetches only. The resolver calls it
// after a successful neighbor probe.
func (n *Node) RecordNeighborHit() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.misses > 0 {
		n.misses--
	}
	n.neighborHits++
}

// Insert populates the cache after a neighbor or origin fetch, counting an
// eviction when the policy displaces an entry. The node never fetches
// content itself; the resolver owns that decision.
func (n *Node) Insert(contentID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, evicted := n.policy.Insert(contentID); evicted {
		n.evictions++
	}
}

// Contains probes the cache without side effects. Neighbor checks use it so
// a probe does not perturb the probed node's eviction state.
func (n *Node) Contains(contentID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.policy.Contains(contentID)
}

// Lookup probes the cache through the policy's touching path. It exists for
// the configurable mode where a neighbor hit also refreshes the neighbor's
// own cache entry.
func (n *Node) Lookup(contentID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.policy.Lookup(contentID)
}

// PolicyKind returns the node's configured policy kind.
func (n *Node) PolicyKind() model.PolicyKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.policy.Kind()
}

// SwitchHistory returns the adaptive strategy switches recorded by this
// node's policy. Fixed policies have no history.
func (n *Node) SwitchHistory() []model.StrategySwitchRecord {
	n.mu.Lock()
	defer n.mu.Unlock()

	if a, ok := n.policy.(*cache.Adaptive); ok {
		return a.History()
	}
	return nil
}

// Stats returns a snapshot of the node's counters.
func (n *Node) Stats() model.NodeStats {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := model.NodeStats{
		NodeID:       n.ID,
		Policy:       n.policy.Kind(),
		Hits:         n.hits,
		Misses:       n.misses,
		NeighborHits: n.neighborHits,
		Evictions:    n.evictions,
		Requests:     n.requests,
		Size:         n.policy.Len(),
		Capacity:     n.policy.Capacity(),
	}
	if s.Requests > 0 {
		s.HitRate = float64(s.Hits+s.NeighborHits) / float64(s.Requests)
	}
	return s
}
