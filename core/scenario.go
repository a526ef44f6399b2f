// core/scenario.go
package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// NodeDefinition places one cache node in the constellation.
type NodeDefinition struct {
	ID       string
	Position model.SatellitePosition
}

// Scenario is a fully parsed constellation configuration.
type Scenario struct {
	Nodes         []NodeDefinition
	Policy        model.PolicyKind
	Capacity      int
	NeighborLimit int

	// TouchNeighborCache mirrors ResolverConfig.TouchNeighborCache.
	TouchNeighborCache bool
}

// ResolverConfig derives the resolver tuning from the scenario.
func (s *Scenario) ResolverConfig() ResolverConfig {
	return ResolverConfig{
		NeighborLimit:      s.NeighborLimit,
		TouchNeighborCache: s.TouchNeighborCache,
	}
}

// internal JSON shapes – kept unexported so we're free to evolve them.
type scenarioJSON struct {
	Nodes              []nodeJSON `json:"nodes"`
	Policy             string     `json:"policy"`
	Capacity           int        `json:"capacity"`
	NeighborLimit      *int       `json:"neighbor_limit"` // optional; defaults to 3
	TouchNeighborCache bool       `json:"touch_neighbor_cache"`
}

type nodeJSON struct {
	ID     string  `json:"id"`
	LatDeg float64 `json:"lat_deg"`
	LonDeg float64 `json:"lon_deg"`
	AltKm  float64 `json:"alt_km"`
}

// DefaultNeighborLimit caps neighbor probing when a scenario does not say
// otherwise, matching the original constellation's top-3 probe.
const DefaultNeighborLimit = 3

// LoadScenario reads a JSON scenario from r. It fails on JSON errors, empty
// node IDs, unknown policy names, and non-positive capacity; node uniqueness
// is enforced later by Configure.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	policy, err := model.ParsePolicyKind(payload.Policy)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: %w", err)
	}
	if payload.Capacity <= 0 {
		return nil, fmt.Errorf("LoadScenario: capacity must be positive, got %d", payload.Capacity)
	}
	if len(payload.Nodes) == 0 {
		return nil, fmt.Errorf("LoadScenario: scenario has no nodes")
	}

	limit := DefaultNeighborLimit
	if payload.NeighborLimit != nil {
		limit = *payload.NeighborLimit
	}

	sc := &Scenario{
		Policy:             policy,
		Capacity:           payload.Capacity,
		NeighborLimit:      limit,
		TouchNeighborCache: payload.TouchNeighborCache,
	}
	for _, jn := range payload.Nodes {
		if jn.ID == "" {
			return nil, fmt.Errorf("LoadScenario: node with empty id")
		}
		sc.Nodes = append(sc.Nodes, NodeDefinition{
			ID: jn.ID,
			Position: model.SatellitePosition{
				LatDeg: jn.LatDeg,
				LonDeg: jn.LonDeg,
				AltKm:  jn.AltKm,
			},
		})
	}
	return sc, nil
}

// DefaultScenario distributes n nodes evenly around an orbital plane at a
// typical LEO altitude. Unlike the original builder it applies no altitude
// jitter: runs must be reproducible.
func DefaultScenario(n int, policy model.PolicyKind, capacity int) *Scenario {
	sc := &Scenario{
		Policy:        policy,
		Capacity:      capacity,
		NeighborLimit: DefaultNeighborLimit,
	}
	for i := 0; i < n; i++ {
		step := float64(i) * 360.0 / float64(n)
		sc.Nodes = append(sc.Nodes, NodeDefinition{
			ID: fmt.Sprintf("LEO-%d", i+1),
			Position: model.SatellitePosition{
				LatDeg: mod(step, 180) - 90,
				LonDeg: mod(step, 360),
				AltKm:  550,
			},
		})
	}
	return sc
}

func mod(x, m float64) float64 {
	r := x - m*float64(int(x/m))
	if r < 0 {
		r += m
	}
	return r
}
