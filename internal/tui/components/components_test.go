package components

import (
	"testing"

	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/feed"
	"github.com/lenscope/lenscope/internal/social"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

func testPosts(ids ...string) []domain.Post {
	posts := make([]domain.Post, len(ids))
	for i, id := range ids {
		posts[i] = domain.Post{
			ID:      id,
			Content: "post " + id,
			Author:  domain.Account{Address: "0xauthor", Username: domain.Username{LocalName: "author"}},
		}
	}
	return posts
}

func TestPostsFeedFilterChangeDiscardsState(t *testing.T) {
	f := NewPostsFeed(styles.Load("default"), domain.PostFilter{}, nil, nil)

	gen, _, ok := f.Loader().Begin()
	if !ok {
		t.Fatal("Begin refused on fresh loader")
	}
	f.Loader().Complete(gen, feed.Page[domain.Post]{Items: testPosts("p1", "p2"), NextCursor: "c1"})
	if f.Loader().Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Loader().Len())
	}

	changed := f.SetFilter(domain.PostFilter{Tags: []string{"golang"}})
	if !changed {
		t.Fatal("SetFilter reported no change for a different filter")
	}
	if f.Loader().Len() != 0 {
		t.Fatalf("items survived the filter change: %d", f.Loader().Len())
	}
	if f.Loader().Blocked() {
		t.Fatal("loader blocked for a filter needing no resolution")
	}

	// A value-equal filter must not reset anything
	gen, _, _ = f.Loader().Begin()
	f.Loader().Complete(gen, feed.Page[domain.Post]{Items: testPosts("p3")})
	if f.SetFilter(domain.PostFilter{Tags: []string{"golang"}}) {
		t.Fatal("SetFilter reported change for a value-equal filter")
	}
	if f.Loader().Len() != 1 {
		t.Fatalf("equal filter reset the list: Len = %d", f.Loader().Len())
	}
}

func TestPostsFeedResolutionBlocksAndUnblocks(t *testing.T) {
	original := domain.PostFilter{PostsOf: "alice"}
	f := NewPostsFeed(styles.Load("default"), original, nil, nil)

	if !f.Loader().Blocked() {
		t.Fatal("loader not blocked while the handle is unresolved")
	}
	if _, _, ok := f.Loader().Begin(); ok {
		t.Fatal("Begin allowed a fetch before resolution")
	}

	resolved := domain.PostFilter{Authors: []string{"0xalice"}}
	if !f.ApplyResolved(original, resolved) {
		t.Fatal("ApplyResolved rejected a matching original")
	}
	if f.Loader().Blocked() {
		t.Fatal("loader still blocked after resolution")
	}
	if !f.Filter().Equal(resolved) {
		t.Fatalf("active filter = %+v, want resolved", f.Filter())
	}
}

func TestPostsFeedStaleResolutionIgnored(t *testing.T) {
	original := domain.PostFilter{PostsOf: "alice"}
	f := NewPostsFeed(styles.Load("default"), original, nil, nil)

	// The user switches filters while resolution is in flight
	replacement := domain.PostFilter{PostsOf: "bob"}
	f.SetFilter(replacement)

	if f.ApplyResolved(original, domain.PostFilter{Authors: []string{"0xalice"}}) {
		t.Fatal("stale resolution was applied over the replacement filter")
	}
	if !f.Filter().Equal(replacement) {
		t.Fatalf("active filter = %+v, want the replacement", f.Filter())
	}
	if !f.Loader().Blocked() {
		t.Fatal("replacement filter should still be awaiting its own resolution")
	}
}

func TestPostsFeedLocalFilterSuspendsFetching(t *testing.T) {
	f := NewPostsFeed(styles.Load("default"), domain.PostFilter{}, nil, nil)
	gen, _, _ := f.Loader().Begin()
	f.Loader().Complete(gen, feed.Page[domain.Post]{Items: testPosts("p1", "p2", "p3"), NextCursor: "c1"})

	if !f.WantsMore() {
		t.Fatal("cursor near the end should request another page")
	}
	f.SetLocalFilter("nomatch")
	if f.WantsMore() {
		t.Fatal("local filtering must not trigger remote fetches")
	}
	f.SetLocalFilter("")
	if !f.WantsMore() {
		t.Fatal("clearing the local filter should restore the sentinel")
	}
}

func TestAccountsListOwnRowIgnoresFollow(t *testing.T) {
	l := NewAccountsList(styles.Load("default"), domain.AccountFilter{})
	l.SetViewer("0xME")

	self := domain.Account{Address: "0xme"} // address compare is case-insensitive
	if _, _, d := l.TriggerFollowAccount(self, true); d != social.DecisionIgnore {
		t.Fatalf("decision = %v, want ignore on own account", d)
	}

	other := domain.Account{Address: "0xother"}
	if _, target, d := l.TriggerFollowAccount(other, true); d != social.DecisionStart || !target {
		t.Fatalf("decision = %v target = %v, want start toward following", d, target)
	}
}

func TestAccountsListUnfollowGate(t *testing.T) {
	l := NewAccountsList(styles.Load("default"), domain.AccountFilter{})
	l.SetAllowUnfollow(false)

	followed := domain.Account{Address: "0xother", IsFollowedByMe: true}
	if _, _, d := l.TriggerFollowAccount(followed, true); d != social.DecisionIgnore {
		t.Fatalf("decision = %v, want ignore when unfollow is disabled", d)
	}

	unfollowed := domain.Account{Address: "0xnew"}
	if _, _, d := l.TriggerFollowAccount(unfollowed, true); d != social.DecisionStart {
		t.Fatalf("decision = %v, want start for a fresh follow", d)
	}
}

func TestAccountCardRebaseKeepsIdentity(t *testing.T) {
	c := NewAccountCard(styles.Load("default"))

	c.SetAccount(domain.Account{Address: "0xa", IsFollowedByMe: false})
	_, target, d := c.TriggerFollow(true)
	if d != social.DecisionStart || !target {
		t.Fatalf("decision = %v target = %v, want optimistic follow", d, target)
	}
	c.ResolveFollow("0xa", false)

	// Fresh server data for the same account retires the override
	c.SetAccount(domain.Account{Address: "0xa", IsFollowedByMe: true})
	if _, _, d := c.TriggerFollow(true); d != social.DecisionStart {
		t.Fatalf("decision = %v, want a new toggle after rebase", d)
	}

	// A different account discards local state entirely
	c.SetAccount(domain.Account{Address: "0xb", IsFollowedByMe: false})
	_, target, d = c.TriggerFollow(true)
	if d != social.DecisionStart || !target {
		t.Fatalf("decision = %v target = %v, want fresh follow on new identity", d, target)
	}
}
