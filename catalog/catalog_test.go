package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/signalsfoundry/orbital-cdn/model"
)

func TestAddAndLookup(t *testing.T) {
	c := New()
	ref := model.ContentRef{
		ID:         "video_1",
		SizeBytes:  100 << 20,
		Type:       model.ContentVideo,
		Popularity: 0.8,
	}
	if err := c.Add(ref); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	got, err := c.Lookup("video_1")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if got != ref {
		t.Fatalf("Lookup returned %#v, want %#v", got, ref)
	}
}

func TestAddDuplicate(t *testing.T) {
	c := New()
	if err := c.Add(model.ContentRef{ID: "c1"}); err != nil {
		t.Fatalf("first Add error: %v", err)
	}
	if err := c.Add(model.ContentRef{ID: "c1"}); err == nil {
		t.Fatalf("expected duplicate Add to fail")
	}
}

func TestAddEmptyID(t *testing.T) {
	c := New()
	if err := c.Add(model.ContentRef{}); err == nil {
		t.Fatalf("expected empty-ID Add to fail")
	}
}

func TestLookupUnknown(t *testing.T) {
	c := New()
	_, err := c.Lookup("nope")
	if !errors.Is(err, ErrUnknownContent) {
		t.Fatalf("Lookup error = %v, want ErrUnknownContent", err)
	}
}

func TestListSortedSnapshot(t *testing.T) {
	c := New()
	for _, id := range []string{"b", "c", "a"} {
		if err := c.Add(model.ContentRef{ID: id}); err != nil {
			t.Fatalf("Add(%s) error: %v", id, err)
		}
	}
	list := c.List()
	if len(list) != 3 {
		t.Fatalf("List len=%d, want 3", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ID != want {
			t.Fatalf("List[%d].ID = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestSubscribeNotifiesOnAdd(t *testing.T) {
	c := New()
	var events []Event
	unsub := c.Subscribe(func(e Event) { events = append(events, e) })

	if err := c.Add(model.ContentRef{ID: "c1"}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventContentAdded || events[0].Content.ID != "c1" {
		t.Fatalf("unexpected events: %#v", events)
	}

	unsub()
	if err := c.Add(model.ContentRef{ID: "c2"}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("subscriber called after unsubscribe, events=%d", len(events))
	}
}

func TestConcurrentAddAndLookup(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("c-%d", i)
			if err := c.Add(model.ContentRef{ID: id}); err != nil {
				t.Errorf("Add(%s) error: %v", id, err)
			}
			if _, err := c.Lookup(id); err != nil {
				t.Errorf("Lookup(%s) error: %v", id, err)
			}
		}(i)
	}
	wg.Wait()
	if got := c.Len(); got != 20 {
		t.Fatalf("Len=%d, want 20", got)
	}
}

func TestLoadJSON(t *testing.T) {
	payload := `{
		"contents": [
			{"id": "video_1", "size_mb": 450, "type": "video", "popularity": 0.85},
			{"id": "doc_1", "size_mb": 5, "type": "document", "popularity": 0.5}
		]
	}`
	c := New()
	if err := Load(c, strings.NewReader(payload)); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	ref, err := c.Lookup("video_1")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if ref.SizeBytes != 450*1024*1024 {
		t.Fatalf("SizeBytes = %d, want %d", ref.SizeBytes, int64(450*1024*1024))
	}
	if ref.Type != model.ContentVideo {
		t.Fatalf("Type = %q, want video", ref.Type)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if err := Load(New(), strings.NewReader(`{"contents": [`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}
	for _, ref := range c.List() {
		if ref.SizeBytes <= 0 {
			t.Fatalf("%s: non-positive size %d", ref.ID, ref.SizeBytes)
		}
		if ref.Popularity <= 0 || ref.Popularity > 1 {
			t.Fatalf("%s: popularity %v out of (0,1]", ref.ID, ref.Popularity)
		}
	}
}
