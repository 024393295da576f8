package notify

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"earnbot/internal/model"
)

func listingN(n int) model.Listing {
	return model.Listing{
		ID:    fmt.Sprintf("listing-%d", n),
		Title: fmt.Sprintf("Listing %d", n),
	}
}

func TestCachePutGet(t *testing.T) {
	c := NewCache()

	c.Put(listingN(1))
	got, ok := c.Get("listing-1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if diff := cmp.Diff("Listing 1", got.Title); diff != "" {
		t.Errorf("title mismatch (-want +got):\n%s", diff)
	}

	if _, ok := c.Get("unknown"); ok {
		t.Error("expected cache miss for unknown ID")
	}
}

func TestCachePutOverwritesByID(t *testing.T) {
	c := NewCache()

	c.Put(model.Listing{ID: "a", Title: "old"})
	c.Put(model.Listing{ID: "a", Title: "new"})

	if diff := cmp.Diff(1, c.Len()); diff != "" {
		t.Errorf("len mismatch (-want +got):\n%s", diff)
	}
	got, _ := c.Get("a")
	if diff := cmp.Diff("new", got.Title); diff != "" {
		t.Errorf("title mismatch (-want +got):\n%s", diff)
	}
}

func TestCompactTrimsToNewest(t *testing.T) {
	c := NewCache()
	for i := 1; i <= 60; i++ {
		c.Put(listingN(i))
	}

	c.Compact()

	if diff := cmp.Diff(retainCount, c.Len()); diff != "" {
		t.Errorf("len after compact mismatch (-want +got):\n%s", diff)
	}

	// Exactly the newest entries survive.
	for i := 1; i <= 60-retainCount; i++ {
		if _, ok := c.Get(fmt.Sprintf("listing-%d", i)); ok {
			t.Errorf("listing-%d should have been evicted", i)
		}
	}
	for i := 60 - retainCount + 1; i <= 60; i++ {
		if _, ok := c.Get(fmt.Sprintf("listing-%d", i)); !ok {
			t.Errorf("listing-%d should have been retained", i)
		}
	}
}

func TestCompactBelowCeilingIsNoop(t *testing.T) {
	c := NewCache()
	for i := 1; i <= maxEntries; i++ {
		c.Put(listingN(i))
	}

	c.Compact()

	if diff := cmp.Diff(maxEntries, c.Len()); diff != "" {
		t.Errorf("len mismatch (-want +got):\n%s", diff)
	}
}

func TestReinsertCountsAsNewest(t *testing.T) {
	c := NewCache()
	for i := 1; i <= 55; i++ {
		c.Put(listingN(i))
	}
	// Touch the oldest entry again; it should survive compaction.
	c.Put(listingN(1))

	c.Compact()

	if _, ok := c.Get("listing-1"); !ok {
		t.Error("re-inserted listing-1 should have been retained")
	}
	if _, ok := c.Get("listing-2"); ok {
		t.Error("listing-2 should have been evicted")
	}
}
