// Command simulator runs a deterministic content-delivery simulation over a
// satellite constellation: a popularity-weighted request stream is resolved
// against per-node caches, and the run ends with per-node and aggregate
// statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/orbital-cdn/catalog"
	"github.com/signalsfoundry/orbital-cdn/core"
	"github.com/signalsfoundry/orbital-cdn/internal/logging"
	"github.com/signalsfoundry/orbital-cdn/internal/observability"
	"github.com/signalsfoundry/orbital-cdn/model"
	"github.com/signalsfoundry/orbital-cdn/timectrl"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a JSON scenario; empty builds a default constellation")
	nodes := flag.Int("nodes", 6, "number of nodes in the default constellation")
	policy := flag.String("policy", "adaptive", "cache policy for the default constellation (lru|lfu|fifo|adaptive)")
	capacity := flag.Int("capacity", 25, "per-node cache capacity for the default constellation")
	catalogPath := flag.String("catalog", "", "path to a JSON content catalog; empty uses the built-in one")
	requests := flag.Int("requests", 1000, "number of content requests to issue")
	seed := flag.Int64("seed", 42, "workload RNG seed; identical seeds reproduce identical runs")
	tick := flag.Duration("tick", 100*time.Millisecond, "simulation time between consecutive requests")
	accelerated := flag.Bool("accelerated", true, "run in accelerated mode (vs real-time)")
	metricsAddr := flag.String("metrics-addr", "", "listen address for the Prometheus endpoint; empty disables it")
	flag.Parse()

	if err := run(*scenarioPath, *nodes, *policy, *capacity, *catalogPath,
		*requests, *seed, *tick, *accelerated, *metricsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "simulator: %v\n", err)
		os.Exit(1)
	}
}

func run(scenarioPath string, nodes int, policy string, capacity int, catalogPath string,
	requests int, seed int64, tick time.Duration, accelerated bool, metricsAddr string) error {

	ctx := context.Background()
	log := logging.NewFromEnv()

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	sc, err := loadScenario(scenarioPath, nodes, policy, capacity)
	if err != nil {
		return err
	}
	constellation, err := core.Configure(sc)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	var collector *observability.Collector
	if metricsAddr != "" {
		collector, err = observability.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Error(ctx, "metrics listener failed", logging.String("error", err.Error()))
			}
		}()
		log.Info(ctx, "metrics endpoint up", logging.String("addr", metricsAddr))
	}

	resolver := core.NewResolver(constellation, cat, sc.ResolverConfig(), log, collector)

	fmt.Printf("Starting simulation: nodes=%d policy=%s capacity=%d catalog=%d items requests=%d seed=%d\n",
		constellation.Len(), sc.Policy, sc.Capacity, cat.Len(), requests, seed)

	workload := newWorkload(cat.List(), constellation.Nodes(), seed)

	mode := timectrl.RealTime
	if accelerated {
		mode = timectrl.Accelerated
	}
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	tc := timectrl.NewTimeController(start, tick, mode)

	var resolveErr error
	tc.AddListener(func(simTime time.Time) {
		if resolveErr != nil {
			return
		}
		nodeID, contentID := workload.next()
		if _, err := resolver.Resolve(ctx, nodeID, contentID, simTime); err != nil {
			resolveErr = fmt.Errorf("resolve %s on %s: %w", contentID, nodeID, err)
		}
	})

	<-tc.Start(time.Duration(requests) * tick)
	if resolveErr != nil {
		return resolveErr
	}

	printReport(constellation)
	return nil
}

func loadScenario(path string, nodes int, policy string, capacity int) (*core.Scenario, error) {
	if path == "" {
		kind, err := model.ParsePolicyKind(policy)
		if err != nil {
			return nil, err
		}
		if nodes <= 0 {
			return nil, fmt.Errorf("node count must be positive, got %d", nodes)
		}
		if capacity <= 0 {
			return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
		}
		return core.DefaultScenario(nodes, kind, capacity), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return core.LoadScenario(f)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	cat := catalog.New()
	if err := catalog.Load(cat, f); err != nil {
		return nil, err
	}
	return cat, nil
}

// workload generates the request stream: nodes drawn uniformly, content drawn
// proportionally to its popularity score. Everything derives from one seeded
// source, so a seed pins the whole stream.
type workload struct {
	rng      *rand.Rand
	contents []model.ContentRef
	cumul    []float64
	total    float64
	nodes    []*core.Node
}

func newWorkload(contents []model.ContentRef, nodes []*core.Node, seed int64) *workload {
	w := &workload{
		rng:      rand.New(rand.NewSource(seed)),
		contents: contents,
		nodes:    nodes,
	}
	for _, ref := range contents {
		weight := ref.Popularity
		if weight <= 0 {
			weight = 0.01
		}
		w.total += weight
		w.cumul = append(w.cumul, w.total)
	}
	return w
}

func (w *workload) next() (nodeID, contentID string) {
	node := w.nodes[w.rng.Intn(len(w.nodes))]

	target := w.rng.Float64() * w.total
	for i, bound := range w.cumul {
		if target < bound {
			return node.ID, w.contents[i].ID
		}
	}
	return node.ID, w.contents[len(w.contents)-1].ID
}

func printReport(c *core.Constellation) {
	fmt.Println("\nPer-node results:")
	fmt.Printf("%-10s %-16s %9s %7s %9s %7s %10s %9s %7s\n",
		"NODE", "POLICY", "REQUESTS", "HITS", "NEIGHBOR", "MISSES", "EVICTIONS", "HIT-RATE", "FILL")
	for _, s := range c.StatsAll() {
		fmt.Printf("%-10s %-16s %9d %7d %9d %7d %10d %8.1f%% %3d/%d\n",
			s.NodeID, s.Policy, s.Requests, s.Hits, s.NeighborHits, s.Misses,
			s.Evictions, s.HitRate*100, s.Size, s.Capacity)
	}

	agg := c.ConstellationStats()
	fmt.Printf("\nConstellation: %d nodes, %d requests, hit rate %.1f%% (neighbor share %.1f%%), %d evictions\n",
		agg.Nodes, agg.TotalRequests, agg.OverallHitRate*100, agg.NeighborHitRate*100, agg.TotalEvictions)

	for _, n := range c.Nodes() {
		history := n.SwitchHistory()
		if len(history) == 0 {
			continue
		}
		fmt.Printf("\nStrategy switches on %s:\n", n.ID)
		for _, rec := range history {
			fmt.Printf("  window %3d: %s -> %s (window hit rates:", rec.Window, rec.From, rec.To)
			for _, kind := range []model.PolicyKind{model.PolicyRecency, model.PolicyFrequency, model.PolicyInsertionOrder} {
				fmt.Printf(" %s=%.2f", kind, rec.HitRates[kind])
			}
			fmt.Println(")")
		}
	}
}
