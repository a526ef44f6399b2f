package model

// NodeStats is a snapshot of one cache node's cumulative counters. Snapshots
// are consistent with each other but not linearizable with in-flight requests.
type NodeStats struct {
	NodeID string
	Policy PolicyKind

	Hits         uint64
	Misses       uint64
	NeighborHits uint64
	Evictions    uint64
	Requests     uint64

	// HitRate counts both local and neighbor hits, matching the original
	// dashboard's definition: (Hits+NeighborHits)/Requests.
	HitRate float64

	Size     int
	Capacity int
}

// ConstellationStats aggregates node counters for display.
type ConstellationStats struct {
	Nodes           int
	TotalRequests   uint64
	TotalHits       uint64
	TotalMisses     uint64
	NeighborHits    uint64
	TotalEvictions  uint64
	OverallHitRate  float64
	NeighborHitRate float64
}
