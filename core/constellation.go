package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// Constellation owns the set of cache nodes and the geometric neighbor index
// used during request resolution. Nodes are created at configuration time and
// live until the constellation is discarded.
type Constellation struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	order []string // node IDs in insertion order, for deterministic listings
}

// NewConstellation constructs an empty constellation.
func NewConstellation() *Constellation {
	return &Constellation{
		nodes: make(map[string]*Node),
	}
}

// Configure builds a constellation from a scenario: one node per definition,
// all with the scenario's policy and capacity.
func Configure(sc *Scenario) (*Constellation, error) {
	if sc == nil {
		return nil, fmt.Errorf("configure: scenario is nil")
	}
	c := NewConstellation()
	for _, def := range sc.Nodes {
		node, err := NewNode(def.ID, def.Position, sc.Policy, sc.Capacity)
		if err != nil {
			return nil, fmt.Errorf("configure: %w", err)
		}
		if err := c.AddNode(node); err != nil {
			return nil, fmt.Errorf("configure: %w", err)
		}
	}
	return c, nil
}

// AddNode registers a node. It returns an error if the ID already exists.
func (c *Constellation) AddNode(n *Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.nodes[n.ID]; exists {
		return fmt.Errorf("node with ID %q already exists", n.ID)
	}
	c.nodes[n.ID] = n
	c.order = append(c.order, n.ID)
	return nil
}

// Node returns the node with the given ID, or nil if not found.
func (c *Constellation) Node(id string) *Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nodes[id]
}

// Len returns the number of nodes.
func (c *Constellation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.nodes)
}

// Nodes returns all nodes in insertion order.
func (c *Constellation) Nodes() []*Node {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]*Node, 0, len(c.order))
	for _, id := range c.order {
		res = append(res, c.nodes[id])
	}
	return res
}

// Distance returns the straight-line distance in kilometres between two
// nodes. It is symmetric by construction: both directions reduce to the same
// Vec3 subtraction.
func (c *Constellation) Distance(a, b string) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	na, nb := c.nodes[a], c.nodes[b]
	if na == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, a)
	}
	if nb == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, b)
	}
	return na.ecef.DistanceTo(nb.ecef), nil
}

// Neighbor is one entry of the ascending-distance probe order.
type Neighbor struct {
	Node       *Node
	DistanceKm float64
}

// Neighbors returns the other nodes in strict ascending distance from nodeID,
// truncated to limit. Equal distances order by node ID so the probe sequence
// is reproducible. limit <= 0 disables neighbor probing entirely.
func (c *Constellation) Neighbors(nodeID string, limit int) ([]Neighbor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	home := c.nodes[nodeID]
	if home == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, nodeID)
	}
	if limit <= 0 {
		return nil, nil
	}

	neighbors := make([]Neighbor, 0, len(c.nodes)-1)
	for _, id := range c.order {
		if id == nodeID {
			continue
		}
		n := c.nodes[id]
		neighbors = append(neighbors, Neighbor{
			Node:       n,
			DistanceKm: home.ecef.DistanceTo(n.ecef),
		})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].DistanceKm != neighbors[j].DistanceKm {
			return neighbors[i].DistanceKm < neighbors[j].DistanceKm
		}
		return neighbors[i].Node.ID < neighbors[j].Node.ID
	})

	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors, nil
}

// Stats returns the counter snapshot for one node.
func (c *Constellation) Stats(nodeID string) (model.NodeStats, error) {
	node := c.Node(nodeID)
	if node == nil {
		return model.NodeStats{}, fmt.Errorf("%w: %q", ErrUnknownNode, nodeID)
	}
	return node.Stats(), nil
}

// StatsAll returns per-node snapshots in insertion order.
func (c *Constellation) StatsAll() []model.NodeStats {
	nodes := c.Nodes()
	res := make([]model.NodeStats, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, n.Stats())
	}
	return res
}

// ConstellationStats aggregates all node counters, the figures the external
// dashboard displays.
func (c *Constellation) ConstellationStats() model.ConstellationStats {
	var agg model.ConstellationStats
	for _, s := range c.StatsAll() {
		agg.Nodes++
		agg.TotalRequests += s.Requests
		agg.TotalHits += s.Hits
		agg.TotalMisses += s.Misses
		agg.NeighborHits += s.NeighborHits
		agg.TotalEvictions += s.Evictions
	}
	if agg.TotalRequests > 0 {
		agg.OverallHitRate = float64(agg.TotalHits+agg.NeighborHits) / float64(agg.TotalRequests)
		agg.NeighborHitRate = float64(agg.NeighborHits) / float64(agg.TotalRequests)
	}
	return agg
}

// SwitchHistory returns the adaptive switch records for one node. Nodes with
// fixed policies return an empty history.
func (c *Constellation) SwitchHistory(nodeID string) ([]model.StrategySwitchRecord, error) {
	node := c.Node(nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, nodeID)
	}
	return node.SwitchHistory(), nil
}
