package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the simulation core and provides
// a ready-to-use /metrics handler for the external layer.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests     *prometheus.CounterVec
	DeliveryTime *prometheus.HistogramVec

	CacheEntries     *prometheus.GaugeVec
	CacheHitRate     *prometheus.GaugeVec
	StrategySwitches *prometheus.CounterVec
}

// NewCollector registers the simulation metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cdn_requests_total",
		Help: "Total number of resolved content requests, labeled by node and delivery result.",
	}, []string{"node", "result"})
	requests, err := registerCounterVec(reg, requests, "cdn_requests_total")
	if err != nil {
		return nil, err
	}

	deliveryTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cdn_delivery_time_ms",
		Help:    "Simulated delivery time per request in milliseconds.",
		Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000},
	}, []string{"node"})
	deliveryTime, err = registerHistogramVec(reg, deliveryTime, "cdn_delivery_time_ms")
	if err != nil {
		return nil, err
	}

	entries, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cdn_cache_entries",
		Help: "Current number of cached content items per node.",
	}, []string{"node"}), "cdn_cache_entries")
	if err != nil {
		return nil, err
	}
	hitRate, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cdn_cache_hit_rate",
		Help: "Cumulative cache hit rate per node (local plus neighbor hits).",
	}, []string{"node"}), "cdn_cache_hit_rate")
	if err != nil {
		return nil, err
	}
	switches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cdn_strategy_switches_total",
		Help: "Total number of adaptive policy switches per node.",
	}, []string{"node"}), "cdn_strategy_switches_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Requests:         requests,
		DeliveryTime:     deliveryTime,
		CacheEntries:     entries,
		CacheHitRate:     hitRate,
		StrategySwitches: switches,
	}, nil
}

// ObserveDelivery records one resolved request.
func (c *Collector) ObserveDelivery(node, result string, totalMs float64) {
	if c == nil {
		return
	}
	if c.Requests != nil {
		c.Requests.WithLabelValues(node, result).Inc()
	}
	if c.DeliveryTime != nil {
		c.DeliveryTime.WithLabelValues(node).Observe(totalMs)
	}
}

// SetNodeCacheState updates the per-node cache gauges.
func (c *Collector) SetNodeCacheState(node string, entries int, hitRate float64) {
	if c == nil {
		return
	}
	if c.CacheEntries != nil {
		c.CacheEntries.WithLabelValues(node).Set(float64(entries))
	}
	if c.CacheHitRate != nil {
		c.CacheHitRate.WithLabelValues(node).Set(hitRate)
	}
}

// RecordStrategySwitch counts one adaptive policy transition.
func (c *Collector) RecordStrategySwitch(node string) {
	if c == nil {
		return
	}
	if c.StrategySwitches != nil {
		c.StrategySwitches.WithLabelValues(node).Inc()
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
