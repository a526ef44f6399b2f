package main

import (
	"testing"
	"time"

	"github.com/signalsfoundry/orbital-cdn/catalog"
	"github.com/signalsfoundry/orbital-cdn/core"
	"github.com/signalsfoundry/orbital-cdn/model"
)

func testNodes(t *testing.T, n int) []*core.Node {
	t.Helper()
	c, err := core.Configure(core.DefaultScenario(n, model.PolicyRecency, 10))
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return c.Nodes()
}

func TestWorkloadDeterministic(t *testing.T) {
	contents := catalog.Default().List()
	nodes := testNodes(t, 4)

	draw := func(seed int64) [][2]string {
		w := newWorkload(contents, nodes, seed)
		var seq [][2]string
		for i := 0; i < 200; i++ {
			n, c := w.next()
			seq = append(seq, [2]string{n, c})
		}
		return seq
	}

	first := draw(42)
	second := draw(42)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs for identical seed: %v vs %v", i, first[i], second[i])
		}
	}

	other := draw(7)
	same := true
	for i := range first {
		if first[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced an identical 200-request stream")
	}
}

func TestWorkloadFollowsPopularity(t *testing.T) {
	contents := []model.ContentRef{
		{ID: "hot", SizeBytes: 1, Popularity: 0.9},
		{ID: "cold", SizeBytes: 1, Popularity: 0.05},
	}
	w := newWorkload(contents, testNodes(t, 1), 1)

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		_, c := w.next()
		counts[c]++
	}
	if counts["hot"] <= counts["cold"]*5 {
		t.Fatalf("popularity weighting too weak: hot=%d cold=%d", counts["hot"], counts["cold"])
	}
	if counts["cold"] == 0 {
		t.Fatal("cold content never drawn; weighting should not starve items")
	}
}

func TestLoadScenarioDefaultPath(t *testing.T) {
	sc, err := loadScenario("", 4, "lfu", 10)
	if err != nil {
		t.Fatalf("loadScenario: %v", err)
	}
	if sc.Policy != model.PolicyFrequency || len(sc.Nodes) != 4 || sc.Capacity != 10 {
		t.Fatalf("scenario = %+v, want 4 lfu nodes with capacity 10", sc)
	}

	if _, err := loadScenario("", 4, "bogus", 10); err == nil {
		t.Fatal("unknown policy should fail")
	}
	if _, err := loadScenario("", 0, "lru", 10); err == nil {
		t.Fatal("zero nodes should fail")
	}
	if _, err := loadScenario("", 4, "lru", 0); err == nil {
		t.Fatal("zero capacity should fail")
	}
	if _, err := loadScenario("/nonexistent/scenario.json", 4, "lru", 10); err == nil {
		t.Fatal("missing scenario file should fail")
	}
}

func TestLoadCatalogDefaultPath(t *testing.T) {
	cat, err := loadCatalog("")
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if cat.Len() == 0 {
		t.Fatal("built-in catalog is empty")
	}

	if _, err := loadCatalog("/nonexistent/catalog.json"); err == nil {
		t.Fatal("missing catalog file should fail")
	}
}

func TestRunSmoke(t *testing.T) {
	err := run("", 3, "adaptive", 5, "", 50, 1, time.Millisecond, true, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}
