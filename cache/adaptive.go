package cache

import "github.com/signalsfoundry/orbital-cdn/model"

// EvaluationWindow is the number of lookups between adaptive policy
// evaluations.
const EvaluationWindow = 100

type trial struct {
	policy     Policy
	windowHits int
}

// Adaptive arbitrates between the three fixed policies. It runs one instance
// of each at equal capacity, feeds every Lookup and Insert to all of them
// identically, and exposes only the active policy's answers. After every
// EvaluationWindow lookups the per-window hit rates are compared and the
// strictly best policy becomes active.
//
// Tie handling: if the current active policy ties for best it is retained
// (hysteresis against strategy thrashing); a tie strictly between two
// non-active policies resolves in the fixed order recency > frequency >
// insertion-order.
type Adaptive struct {
	capacity int
	active   model.PolicyKind

	// trials iterates in the fixed priority order; evaluation relies on it.
	order  []model.PolicyKind
	trials map[model.PolicyKind]*trial

	windowLookups int
	window        int // completed evaluation windows
	history       []model.StrategySwitchRecord
}

// NewAdaptive constructs an adaptive selector with recency initially active.
func NewAdaptive(capacity int) (*Adaptive, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	order := []model.PolicyKind{
		model.PolicyRecency,
		model.PolicyFrequency,
		model.PolicyInsertionOrder,
	}
	trials := make(map[model.PolicyKind]*trial, len(order))
	for _, kind := range order {
		p, err := New(kind, capacity)
		if err != nil {
			return nil, err
		}
		trials[kind] = &trial{policy: p}
	}

	return &Adaptive{
		capacity: capacity,
		active:   model.PolicyRecency,
		order:    order,
		trials:   trials,
	}, nil
}

// Lookup feeds the probe to every trial cache and returns the active one's
// answer. Window accounting happens here: each lookup is one request of the
// evaluation window, and crossing the boundary triggers an evaluation before
// the result is returned.
func (a *Adaptive) Lookup(id string) bool {
	var activeHit bool
	for _, kind := range a.order {
		t := a.trials[kind]
		hit := t.policy.Lookup(id)
		if hit {
			t.windowHits++
		}
		if kind == a.active {
			activeHit = hit
		}
	}

	a.windowLookups++
	if a.windowLookups >= EvaluationWindow {
		a.evaluate()
	}
	return activeHit
}

// Contains consults only the active policy and perturbs nothing, including
// the evaluation window.
func (a *Adaptive) Contains(id string) bool {
	return a.trials[a.active].policy.Contains(id)
}

// Insert feeds the admission to every trial cache. The reported eviction is
// the active policy's; the shadow caches evict independently and silently.
func (a *Adaptive) Insert(id string) (string, bool) {
	var evicted string
	var ok bool
	for _, kind := range a.order {
		ev, did := a.trials[kind].policy.Insert(id)
		if kind == a.active {
			evicted, ok = ev, did
		}
	}
	return evicted, ok
}

// evaluate closes the current window: picks the strictly best hit rate,
// records a switch if the winner differs from the active policy, and resets
// the window counters. Lifetime state of the trial caches is untouched.
func (a *Adaptive) evaluate() {
	a.window++

	rates := make(map[model.PolicyKind]float64, len(a.order))
	for _, kind := range a.order {
		rates[kind] = float64(a.trials[kind].windowHits) / float64(a.windowLookups)
	}

	best := a.active
	bestRate := rates[a.active]
	for _, kind := range a.order {
		if rates[kind] > bestRate {
			best = kind
			bestRate = rates[kind]
		}
	}

	if best != a.active {
		a.history = append(a.history, model.StrategySwitchRecord{
			Window:   a.window,
			From:     a.active,
			To:       best,
			HitRates: rates,
		})
		a.active = best
	}

	for _, kind := range a.order {
		a.trials[kind].windowHits = 0
	}
	a.windowLookups = 0
}

// ActiveKind returns the currently authoritative policy.
func (a *Adaptive) ActiveKind() model.PolicyKind { return a.active }

// History returns a copy of the recorded strategy switches.
func (a *Adaptive) History() []model.StrategySwitchRecord {
	out := make([]model.StrategySwitchRecord, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Adaptive) Len() int      { return a.trials[a.active].policy.Len() }
func (a *Adaptive) Capacity() int { return a.capacity }

func (a *Adaptive) Kind() model.PolicyKind { return model.PolicyAdaptive }
