package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/orbital-cdn/internal/logging"
	"github.com/signalsfoundry/orbital-cdn/internal/observability"
	"github.com/signalsfoundry/orbital-cdn/model"
)

// ErrUnknownNode is returned when a request names a node outside the
// constellation.
var ErrUnknownNode = errors.New("unknown node id")

// ContentCatalog is the resolver's view of the content catalog. The catalog
// package provides the canonical implementation; the resolver only ever needs
// lookups.
type ContentCatalog interface {
	Lookup(id string) (model.ContentRef, error)
}

// ResolverConfig tunes request resolution.
type ResolverConfig struct {
	// NeighborLimit is the maximum number of neighbor nodes probed on a
	// local miss, in ascending distance order. Zero disables probing.
	NeighborLimit int

	// TouchNeighborCache controls whether a successful neighbor probe also
	// refreshes the entry in the neighbor's own cache (recency bump /
	// frequency increment). The default leaves probed caches untouched, so
	// only the requesting node's cache changes.
	TouchNeighborCache bool
}

// Resolver is the entry point the external request layer calls. It drives a
// request through local check, neighbor check, and origin fetch, and returns
// a structured delivery outcome with deterministic timing.
type Resolver struct {
	constellation *Constellation
	catalog       ContentCatalog
	cfg           ResolverConfig

	log     logging.Logger
	metrics *observability.Collector
	tracer  trace.Tracer

	// switchesSeen tracks how many adaptive switches per node have already
	// been exported, so the counter advances exactly once per transition.
	mu           sync.Mutex
	switchesSeen map[string]int
}

// NewResolver constructs a resolver. log may be nil (no logging); metrics may
// be nil (no metrics).
func NewResolver(c *Constellation, cat ContentCatalog, cfg ResolverConfig, log logging.Logger, metrics *observability.Collector) *Resolver {
	if log == nil {
		log = logging.Noop()
	}
	return &Resolver{
		constellation: c,
		catalog:       cat,
		cfg:           cfg,
		log:           log,
		metrics:       metrics,
		tracer:        otel.Tracer("orbital-cdn/resolver"),
		switchesSeen:  make(map[string]int),
	}
}

// Resolve handles one content request for the user homed on nodeID.
//
// The request runs the delivery state machine to completion: local check,
// then up to NeighborLimit neighbor probes in ascending distance order (first
// match wins), then an origin fetch. Transfer legs are cost computations, not
// I/O, so nothing blocks and cancellation is not supported past this point.
//
// issuedAt is the caller's monotonically increasing simulation time; the core
// owns no clock. On error no counters are mutated and no cache changes.
func (r *Resolver) Resolve(ctx context.Context, nodeID, contentID string, issuedAt time.Time) (model.DeliveryOutcome, error) {
	ctx, log := logging.WithRequestLogger(ctx, r.log)
	ctx, span := r.tracer.Start(ctx, "resolver.Resolve",
		trace.WithAttributes(
			attribute.String("cdn.node_id", nodeID),
			attribute.String("cdn.content_id", contentID),
		))
	defer span.End()

	// Validate everything before any state mutation.
	home := r.constellation.Node(nodeID)
	if home == nil {
		return model.DeliveryOutcome{}, errorf(span, "%w: %q", ErrUnknownNode, nodeID)
	}
	ref, err := r.catalog.Lookup(contentID)
	if err != nil {
		return model.DeliveryOutcome{}, spanErr(span, err)
	}

	outcome := model.DeliveryOutcome{
		ContentID: contentID,
		NodeID:    nodeID,
		IssuedAt:  issuedAt,
	}

	if home.Request(contentID) {
		outcome.Result = model.ResultLocalHit
		outcome.LatencyMs = SatelliteToUser.LatencyMs
		outcome.TransferMs = TransferMs(SatelliteToUser.BandwidthMbps, ref.SizeBytes)
	} else if via, distKm, ok := r.probeNeighbors(nodeID, contentID); ok {
		home.RecordNeighborHit()
		home.Insert(contentID)

		outcome.Result = model.ResultNeighborHit
		outcome.ViaNodeID = via
		outcome.LatencyMs = InterSatelliteLatencyMs(distKm) + SatelliteToUser.LatencyMs
		outcome.TransferMs = TransferMs(InterSatellite.BandwidthMbps, ref.SizeBytes) +
			TransferMs(SatelliteToUser.BandwidthMbps, ref.SizeBytes)
	} else {
		home.Insert(contentID)

		outcome.Result = model.ResultOriginFetch
		outcome.LatencyMs = GroundToSatellite.LatencyMs + SatelliteToUser.LatencyMs
		outcome.TransferMs = TransferMs(GroundToSatellite.BandwidthMbps, ref.SizeBytes) +
			TransferMs(SatelliteToUser.BandwidthMbps, ref.SizeBytes)
	}
	outcome.TotalMs = outcome.LatencyMs + outcome.TransferMs

	span.SetAttributes(
		attribute.String("cdn.result", outcome.Result.String()),
		attribute.Float64("cdn.total_ms", outcome.TotalMs),
	)
	log.Debug(ctx, "request resolved",
		logging.String("node_id", nodeID),
		logging.String("content_id", contentID),
		logging.String("result", outcome.Result.String()),
		logging.Float64("total_ms", outcome.TotalMs),
	)
	if r.metrics != nil {
		r.metrics.ObserveDelivery(nodeID, outcome.Result.String(), outcome.TotalMs)
		stats := home.Stats()
		r.metrics.SetNodeCacheState(nodeID, stats.Size, stats.HitRate)
		r.exportSwitches(home)
	}

	return outcome, nil
}

// exportSwitches bumps the strategy-switch counter for any adaptive
// transitions recorded since the last export.
func (r *Resolver) exportSwitches(home *Node) {
	history := home.SwitchHistory()
	if history == nil {
		return
	}

	r.mu.Lock()
	seen := r.switchesSeen[home.ID]
	r.switchesSeen[home.ID] = len(history)
	r.mu.Unlock()

	for i := seen; i < len(history); i++ {
		r.metrics.RecordStrategySwitch(home.ID)
	}
}

// errorf builds an error, records it on the span, and returns it.
func errorf(span trace.Span, format string, args ...any) error {
	return spanErr(span, fmt.Errorf(format, args...))
}

func spanErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// probeNeighbors walks the ascending-distance neighbor list and returns the
// first node holding contentID, with its range from the home node. The probe
// stops at the first match; it does not hunt for a globally closest copy.
func (r *Resolver) probeNeighbors(nodeID, contentID string) (via string, distKm float64, ok bool) {
	neighbors, err := r.constellation.Neighbors(nodeID, r.cfg.NeighborLimit)
	if err != nil {
		return "", 0, false
	}
	for _, nb := range neighbors {
		found := nb.Node.Contains(contentID)
		if found && r.cfg.TouchNeighborCache {
			nb.Node.Lookup(contentID)
		}
		if found {
			return nb.Node.ID, nb.DistanceKm, true
		}
	}
	return "", 0, false
}
