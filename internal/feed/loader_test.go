package feed

import (
	"errors"
	"testing"
)

func page(next string, items ...string) Page[string] {
	return Page[string]{Items: items, NextCursor: next}
}

func TestLoaderFirstPageUsesEmptyCursor(t *testing.T) {
	l := NewLoader[string]()

	gen, cursor, ok := l.Begin()
	if !ok {
		t.Fatal("Begin refused the first fetch")
	}
	if cursor != "" {
		t.Errorf("first fetch cursor = %q, want empty", cursor)
	}
	if !l.Loading() {
		t.Error("loader not marked loading after Begin")
	}

	l.Complete(gen, page("tok1", "a", "b"))
	if l.Loading() {
		t.Error("loader still loading after Complete")
	}
	if got := l.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if !l.HasMore() {
		t.Error("HasMore() = false with a next cursor present")
	}
}

func TestLoaderAppendOrder(t *testing.T) {
	l := NewLoader[string]()

	gen, _, _ := l.Begin()
	l.Complete(gen, page("tok1", "a", "b"))

	gen, cursor, ok := l.Begin()
	if !ok {
		t.Fatal("Begin refused the second fetch")
	}
	if cursor != "tok1" {
		t.Errorf("second fetch cursor = %q, want tok1", cursor)
	}
	l.Complete(gen, page("", "c", "d"))

	want := []string{"a", "b", "c", "d"}
	got := l.Items()
	if len(got) != len(want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Items() = %v, want %v", got, want)
		}
	}
}

func TestLoaderNoDuplicateConcurrentFetch(t *testing.T) {
	l := NewLoader[string]()

	if _, _, ok := l.Begin(); !ok {
		t.Fatal("first Begin refused")
	}
	if _, _, ok := l.Begin(); ok {
		t.Error("second Begin started a fetch while one was outstanding")
	}
}

func TestLoaderExhaustion(t *testing.T) {
	l := NewLoader[string]()

	gen, _, _ := l.Begin()
	l.Complete(gen, page("", "a"))

	if l.HasMore() {
		t.Error("HasMore() = true after a page with no next cursor")
	}
	if _, _, ok := l.Begin(); ok {
		t.Error("Begin started a fetch after exhaustion")
	}
}

func TestLoaderResetOnFilterChange(t *testing.T) {
	l := NewLoader[string]()

	gen, _, _ := l.Begin()
	l.Complete(gen, page("tok1", "a", "b"))
	gen, _, _ = l.Begin() // in flight when the filter changes

	l.Reset()

	if l.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", l.Len())
	}
	if !l.HasMore() {
		t.Error("HasMore() = false after Reset")
	}
	if l.Loading() {
		t.Error("Loading() = true after Reset")
	}
	if l.Err() != nil {
		t.Errorf("Err() = %v after Reset, want nil", l.Err())
	}

	// The stale completion must be discarded, not appended to the new list.
	l.Complete(gen, page("tok2", "stale1", "stale2"))
	if l.Len() != 0 {
		t.Errorf("stale completion appended %d items after Reset", l.Len())
	}
	if l.Loading() {
		t.Error("stale completion flipped the loading flag")
	}
}

func TestLoaderFailureKeepsState(t *testing.T) {
	l := NewLoader[string]()

	gen, _, _ := l.Begin()
	l.Complete(gen, page("tok1", "a", "b"))

	gen, _, _ = l.Begin()
	boom := errors.New("network down")
	l.Fail(gen, boom)

	if l.Loading() {
		t.Error("Loading() = true after Fail")
	}
	if !errors.Is(l.Err(), boom) {
		t.Errorf("Err() = %v, want %v", l.Err(), boom)
	}
	if l.Len() != 2 {
		t.Errorf("accumulated items changed on failure: Len() = %d", l.Len())
	}
	if !l.HasMore() {
		t.Error("HasMore() changed on failure")
	}

	// Manual retry from the same cursor.
	gen, cursor, ok := l.Begin()
	if !ok {
		t.Fatal("Begin refused the retry")
	}
	if cursor != "tok1" {
		t.Errorf("retry cursor = %q, want tok1", cursor)
	}
	if l.Err() != nil {
		t.Error("error not cleared when the retry began")
	}
	l.Complete(gen, page("", "c"))
	if l.Len() != 3 {
		t.Errorf("Len() = %d after retry, want 3", l.Len())
	}
}

func TestBulkLoaderSingleShot(t *testing.T) {
	l := NewBulkLoader[string]()

	gen, cursor, ok := l.Begin()
	if !ok {
		t.Fatal("Begin refused the bulk fetch")
	}
	if cursor != "" {
		t.Errorf("bulk fetch cursor = %q, want empty", cursor)
	}

	l.Complete(gen, page("", "a", "b", "c"))
	if l.HasMore() {
		t.Error("HasMore() = true after the bulk response")
	}
	if _, _, ok := l.Begin(); ok {
		t.Error("Begin started a second bulk fetch")
	}
}

func TestLoaderBlockedUntilResolved(t *testing.T) {
	l := NewLoader[string]()
	l.Block()

	if _, _, ok := l.Begin(); ok {
		t.Error("Begin started a fetch while blocked on resolution")
	}
	if l.Loading() {
		t.Error("blocked Begin marked the loader loading")
	}

	l.Unblock()
	gen, _, ok := l.Begin()
	if !ok {
		t.Fatal("Begin refused after Unblock")
	}
	l.Complete(gen, page("", "a"))
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

// Mirrors the end-to-end scenario from the feed widget: a full first page
// with a cursor, then a short final page.
func TestLoaderTwoPageScenario(t *testing.T) {
	l := NewLoader[int]()

	items := func(from, to int) []int {
		var out []int
		for i := from; i <= to; i++ {
			out = append(out, i)
		}
		return out
	}

	gen, cursor, _ := l.Begin()
	if cursor != "" {
		t.Fatalf("first cursor = %q", cursor)
	}
	l.Complete(gen, Page[int]{Items: items(1, 10), NextCursor: "tok1"})
	if l.Len() != 10 || !l.HasMore() {
		t.Fatalf("after page 1: len=%d hasMore=%v", l.Len(), l.HasMore())
	}

	gen, cursor, _ = l.Begin()
	if cursor != "tok1" {
		t.Fatalf("second cursor = %q", cursor)
	}
	l.Complete(gen, Page[int]{Items: items(11, 15)})
	if l.Len() != 15 || l.HasMore() {
		t.Fatalf("after page 2: len=%d hasMore=%v", l.Len(), l.HasMore())
	}
	if _, _, ok := l.Begin(); ok {
		t.Error("trigger after exhaustion issued a fetch")
	}
}
