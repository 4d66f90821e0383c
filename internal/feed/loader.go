// Package feed implements the incremental list-loading state machine shared
// by every list widget: cursor tracking, append-on-arrival page merging, and
// discarding of completions that belong to a superseded filter.
package feed

// Page is one remote response unit: an ordered slice of items plus the
// cursor that produces the page after it. An empty NextCursor means the
// list is exhausted.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// Loader accumulates pages of a list query for a single filter session.
// It is not safe for concurrent use; in the TUI it lives inside a component
// model and is only touched from the update loop.
//
// The flow is: Begin() marks the loader in-flight and hands back the cursor
// to fetch together with a generation token; the async fetch reports back
// through Complete or Fail with that token. Reset() starts a new filter
// session and bumps the generation, so completions from the previous
// session are ignored rather than appended to the new list.
type Loader[T any] struct {
	items   []T
	cursor  string // cursor for the next fetch; empty requests the first page
	hasMore bool
	loading bool
	err     error

	blocked bool // waiting on identifier resolution; fetches are not issued
	bulk    bool // single-shot query with no pagination
	gen     int
}

// NewLoader creates a loader for a cursor-paginated query
func NewLoader[T any]() *Loader[T] {
	return &Loader[T]{hasMore: true}
}

// NewBulkLoader creates a loader for a fetch-by-ID-list query: one fetch
// returns the complete result set and no further pages exist.
func NewBulkLoader[T any]() *Loader[T] {
	return &Loader[T]{hasMore: true, bulk: true}
}

// Reset starts a new filter session: items, cursor, error and flags return
// to their initial values and the generation advances so that any in-flight
// completion from the previous session is discarded on arrival.
func (l *Loader[T]) Reset() {
	l.items = nil
	l.cursor = ""
	l.hasMore = true
	l.loading = false
	l.err = nil
	l.gen++
}

// Bulk reports whether the loader runs single-shot queries
func (l *Loader[T]) Bulk() bool { return l.bulk }

// SetBulk switches pagination mode. Callers reset alongside the filter
// change that required the switch.
func (l *Loader[T]) SetBulk(bulk bool) { l.bulk = bulk }

// Block suspends fetching until Unblock is called. Used while a derived
// filter still needs its handle resolved to an address: "identifier not yet
// resolved" behaves exactly like "no query yet".
func (l *Loader[T]) Block() { l.blocked = true }

// Unblock re-enables fetching after identifier resolution
func (l *Loader[T]) Unblock() { l.blocked = false }

// Blocked reports whether fetching is suspended
func (l *Loader[T]) Blocked() bool { return l.blocked }

// Begin attempts to start the next page fetch. It is a no-op (ok=false)
// while a fetch is outstanding, after exhaustion, or while blocked — so a
// sentinel firing repeatedly never issues duplicate concurrent fetches.
// On success the loader is marked loading and the caller must eventually
// invoke Complete or Fail with the returned generation token.
func (l *Loader[T]) Begin() (gen int, cursor string, ok bool) {
	if l.blocked || l.loading || !l.hasMore {
		return 0, "", false
	}
	l.loading = true
	l.err = nil
	return l.gen, l.cursor, true
}

// Complete applies a fetched page. Completions carrying a stale generation
// token are dropped: their filter session no longer exists.
func (l *Loader[T]) Complete(gen int, page Page[T]) {
	if gen != l.gen {
		return
	}
	l.loading = false
	l.items = append(l.items, page.Items...)
	l.cursor = page.NextCursor
	l.hasMore = page.NextCursor != "" && !l.bulk
}

// Fail records a fetch error. Accumulated items, cursor and hasMore are
// left untouched; a later Begin retries from the same position.
func (l *Loader[T]) Fail(gen int, err error) {
	if gen != l.gen {
		return
	}
	l.loading = false
	l.err = err
}

// Items returns the accumulated items in arrival order
func (l *Loader[T]) Items() []T { return l.items }

// Len returns the number of accumulated items
func (l *Loader[T]) Len() int { return len(l.items) }

// HasMore reports whether another page may exist
func (l *Loader[T]) HasMore() bool { return l.hasMore }

// Loading reports whether a fetch is outstanding
func (l *Loader[T]) Loading() bool { return l.loading }

// Err returns the error from the most recent failed fetch, if any.
// It is cleared when the next fetch begins.
func (l *Loader[T]) Err() error { return l.err }

// Exhausted reports that the list is complete and non-empty fetching is over
func (l *Loader[T]) Exhausted() bool { return !l.hasMore }
