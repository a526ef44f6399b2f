package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveDeliveryRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	collector.ObserveDelivery("LEO-1", "local-hit", 52.4)
	collector.ObserveDelivery("LEO-1", "origin-fetch", 312.9)

	if got := testutil.ToFloat64(collector.Requests.WithLabelValues("LEO-1", "local-hit")); got != 1 {
		t.Fatalf("cdn_requests_total{local-hit} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Requests.WithLabelValues("LEO-1", "origin-fetch")); got != 1 {
		t.Fatalf("cdn_requests_total{origin-fetch} = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "cdn_delivery_time_ms", map[string]string{
		"node": "LEO-1",
	}); count != 2 {
		t.Fatalf("cdn_delivery_time_ms sample_count = %d, want 2", count)
	}
}

func TestCacheGaugesTrackLatestState(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	collector.SetNodeCacheState("LEO-2", 7, 0.42)
	collector.SetNodeCacheState("LEO-2", 8, 0.5)

	if got := testutil.ToFloat64(collector.CacheEntries.WithLabelValues("LEO-2")); got != 8 {
		t.Fatalf("cdn_cache_entries = %v, want 8", got)
	}
	if got := testutil.ToFloat64(collector.CacheHitRate.WithLabelValues("LEO-2")); got != 0.5 {
		t.Fatalf("cdn_cache_hit_rate = %v, want 0.5", got)
	}
}

func TestStrategySwitchCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	collector.RecordStrategySwitch("LEO-3")
	collector.RecordStrategySwitch("LEO-3")

	if got := testutil.ToFloat64(collector.StrategySwitches.WithLabelValues("LEO-3")); got != 2 {
		t.Fatalf("cdn_strategy_switches_total = %v, want 2", got)
	}
}

func TestNewCollectorIdempotentOnSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("second NewCollector on same registry: %v", err)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	collector.ObserveDelivery("LEO-1", "local-hit", 52.4)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "cdn_requests_total") {
		t.Fatalf("metrics output missing cdn_requests_total:\n%s", body)
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if matchLabels(metric.GetLabel(), labels) {
				return metric.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) != len(want) {
		return false
	}
	for _, pair := range got {
		if want[pair.GetName()] != pair.GetValue() {
			return false
		}
	}
	return true
}
