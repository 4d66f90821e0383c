package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/store"
)

type fakeAccountRepo struct {
	handles  map[string]string
	resolved int
}

func (f *fakeAccountRepo) QueryAccounts(ctx context.Context, filter domain.AccountFilter, cursor string) (domain.AccountPage, error) {
	return domain.AccountPage{}, nil
}

func (f *fakeAccountRepo) QueryAccountsBulk(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) QueryAccount(ctx context.Context, address, localName string) (domain.Account, error) {
	if addr, ok := f.handles[localName]; ok {
		return domain.Account{Address: addr, Username: domain.Username{LocalName: localName}}, nil
	}
	return domain.Account{}, domain.ErrNotFound
}

func (f *fakeAccountRepo) ResolveHandle(ctx context.Context, localName string) (string, error) {
	f.resolved++
	if addr, ok := f.handles[localName]; ok {
		return addr, nil
	}
	return "", domain.ErrHandleUnknown
}

func (f *fakeAccountRepo) QueryAccountStats(ctx context.Context, address string) (domain.AccountStats, error) {
	return domain.AccountStats{}, nil
}

type fakeFeedRepo struct {
	pages   map[string]domain.PostPage // keyed by cursor
	lastReq domain.PostFilter
}

func (f *fakeFeedRepo) QueryPosts(ctx context.Context, filter domain.PostFilter, cursor string) (domain.PostPage, error) {
	f.lastReq = filter
	page, ok := f.pages[cursor]
	if !ok {
		return domain.PostPage{}, domain.ErrServerOffline
	}
	return page, nil
}

func (f *fakeFeedRepo) QueryPostsBulk(ctx context.Context, ids []string) ([]domain.Post, error) {
	var posts []domain.Post
	for _, id := range ids {
		posts = append(posts, domain.Post{ID: id})
	}
	return posts, nil
}

func (f *fakeFeedRepo) QueryPost(ctx context.Context, id string) (domain.Post, error) {
	return domain.Post{ID: id}, nil
}

func memStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewStore("", "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return st
}

func TestResolveFilterAppendsResolvedAuthor(t *testing.T) {
	accounts := &fakeAccountRepo{handles: map[string]string{"alice": "0xalice"}}
	svc := NewFeedService(&fakeFeedRepo{}, accounts, memStore(t), nil)

	filter := domain.PostFilter{PostsOf: "alice", Authors: []string{"0xbob"}}
	resolved, err := svc.ResolveFilter(context.Background(), filter)
	if err != nil {
		t.Fatalf("ResolveFilter: %v", err)
	}

	want := []string{"0xbob", "0xalice"}
	if len(resolved.Authors) != 2 || resolved.Authors[0] != want[0] || resolved.Authors[1] != want[1] {
		t.Errorf("Authors = %v, want %v", resolved.Authors, want)
	}
	if resolved.PostsOf != "" {
		t.Error("PostsOf not cleared after resolution")
	}
	if resolved.NeedsResolution() {
		t.Error("resolved filter still needs resolution")
	}

	// Original filter untouched.
	if filter.PostsOf != "alice" || len(filter.Authors) != 1 {
		t.Error("ResolveFilter mutated its input")
	}
}

func TestResolveFilterUnknownHandle(t *testing.T) {
	accounts := &fakeAccountRepo{handles: map[string]string{}}
	svc := NewFeedService(&fakeFeedRepo{}, accounts, memStore(t), nil)

	_, err := svc.ResolveFilter(context.Background(), domain.PostFilter{PostsOf: "ghost"})
	if !errors.Is(err, domain.ErrHandleUnknown) {
		t.Errorf("err = %v, want ErrHandleUnknown", err)
	}
}

func TestResolveFilterPassthrough(t *testing.T) {
	accounts := &fakeAccountRepo{}
	svc := NewFeedService(&fakeFeedRepo{}, accounts, memStore(t), nil)

	filter := domain.PostFilter{Authors: []string{"0xbob"}}
	resolved, err := svc.ResolveFilter(context.Background(), filter)
	if err != nil {
		t.Fatalf("ResolveFilter: %v", err)
	}
	if !resolved.Equal(filter) {
		t.Error("passthrough filter changed")
	}
	if accounts.resolved != 0 {
		t.Error("resolution attempted for a filter that needs none")
	}
}

func TestFetchPageCachesPosts(t *testing.T) {
	repo := &fakeFeedRepo{pages: map[string]domain.PostPage{
		"": {Items: []domain.Post{{ID: "p1"}, {ID: "p2"}}, NextCursor: "tok1"},
	}}
	st := memStore(t)
	svc := NewFeedService(repo, &fakeAccountRepo{}, st, nil)

	page, err := svc.FetchPage(context.Background(), domain.PostFilter{}, "")
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(page.Items) != 2 || page.NextCursor != "tok1" {
		t.Errorf("unexpected page: %+v", page)
	}

	// Cached post served without another repo hit.
	post, err := svc.GetPost(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.ID != "p1" {
		t.Errorf("post.ID = %q", post.ID)
	}
}

func TestHandleResolutionCachedAcrossCalls(t *testing.T) {
	accounts := &fakeAccountRepo{handles: map[string]string{"alice": "0xalice"}}
	st := memStore(t)

	accountSvc := NewAccountService(accounts, st, nil)
	if _, err := accountSvc.GetAccount(context.Background(), "", "alice"); err != nil {
		t.Fatalf("GetAccount: %v", err)
	}

	feedSvc := NewFeedService(&fakeFeedRepo{}, accounts, st, nil)
	if _, err := feedSvc.ResolveFilter(context.Background(), domain.PostFilter{PostsOf: "alice"}); err != nil {
		t.Fatalf("ResolveFilter: %v", err)
	}

	if accounts.resolved != 0 {
		t.Errorf("handle resolved via API %d times despite cached mapping", accounts.resolved)
	}
}
