package model

import "time"

// DeliveryResult classifies where a request was ultimately served from.
type DeliveryResult int

const (
	ResultLocalHit    DeliveryResult = iota // served from the home node's cache
	ResultNeighborHit                       // served via another node's cache
	ResultOriginFetch                       // fetched from the ground origin
)

func (r DeliveryResult) String() string {
	switch r {
	case ResultLocalHit:
		return "local-hit"
	case ResultNeighborHit:
		return "neighbor-hit"
	case ResultOriginFetch:
		return "origin-fetch"
	default:
		return "unknown"
	}
}

// DeliveryOutcome is the structured result of one resolved request. Outcomes
// are produced fresh per request and never retained by the core; the calling
// layer persists or displays them as it sees fit.
type DeliveryOutcome struct {
	Result    DeliveryResult
	ContentID string

	// NodeID is the home node that served the user. ViaNodeID is set only
	// for neighbor hits and names the node the content was pulled from.
	NodeID    string
	ViaNodeID string

	// LatencyMs is the summed link latency of the delivery path, TransferMs
	// the summed bandwidth-bound transfer time. TotalMs = LatencyMs + TransferMs.
	LatencyMs  float64
	TransferMs float64
	TotalMs    float64

	IssuedAt time.Time
}

// StrategySwitchRecord captures one adaptive-policy transition. Records are
// appended, never mutated.
type StrategySwitchRecord struct {
	// Window is the index of the evaluation window that triggered the switch,
	// counting from 1.
	Window int

	From PolicyKind
	To   PolicyKind

	// HitRates holds each trial policy's hit rate over the evaluated window.
	HitRates map[PolicyKind]float64
}
