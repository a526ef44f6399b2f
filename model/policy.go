package model

import (
	"fmt"
	"strings"
)

// PolicyKind selects the eviction behaviour of a cache node. The concrete
// algorithms live in the cache package; this enum is how configuration and
// reporting name them.
type PolicyKind int

const (
	PolicyUnknown PolicyKind = iota
	PolicyRecency            // least-recently-used eviction
	PolicyFrequency          // least-frequently-used eviction
	PolicyInsertionOrder     // first-in-first-out eviction
	PolicyAdaptive           // window-based arbitration across the three above
)

// String returns the canonical configuration name for the policy.
func (k PolicyKind) String() string {
	switch k {
	case PolicyRecency:
		return "recency"
	case PolicyFrequency:
		return "frequency"
	case PolicyInsertionOrder:
		return "insertion-order"
	case PolicyAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// ParsePolicyKind maps a configuration string to a PolicyKind. It accepts the
// canonical names plus the legacy cache-literature aliases (lru/lfu/fifo).
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recency", "lru":
		return PolicyRecency, nil
	case "frequency", "lfu":
		return PolicyFrequency, nil
	case "insertion-order", "insertion_order", "fifo":
		return PolicyInsertionOrder, nil
	case "adaptive":
		return PolicyAdaptive, nil
	default:
		return PolicyUnknown, fmt.Errorf("unknown policy kind %q", s)
	}
}
