// Package service holds the application services between the API client
// and the UI: handle resolution, caching and session management.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/store"
)

const postCacheTTL = 2 * time.Minute

// FeedService handles post list queries, resolving handle-derived filters
// before the paginated query runs
type FeedService struct {
	repo     domain.FeedRepository
	accounts domain.AccountRepository
	store    *store.Store
	logger   *slog.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(repo domain.FeedRepository, accounts domain.AccountRepository, st *store.Store, logger *slog.Logger) *FeedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{repo: repo, accounts: accounts, store: st, logger: logger}
}

// ResolveFilter resolves a handle-derived post filter into an author-address
// filter. Filters that need no resolution are returned unchanged.
func (s *FeedService) ResolveFilter(ctx context.Context, filter domain.PostFilter) (domain.PostFilter, error) {
	if !filter.NeedsResolution() {
		return filter, nil
	}

	address, err := s.resolveHandle(ctx, filter.PostsOf)
	if err != nil {
		return filter, err
	}

	resolved := filter
	resolved.Authors = append(append([]string{}, filter.Authors...), address)
	resolved.PostsOf = ""
	return resolved, nil
}

// FetchPage returns one page of posts for an already-resolved filter
func (s *FeedService) FetchPage(ctx context.Context, filter domain.PostFilter, cursor string) (domain.PostPage, error) {
	page, err := s.repo.QueryPosts(ctx, filter, cursor)
	if err != nil {
		s.logger.Error("failed to fetch posts page", "error", err)
		return domain.PostPage{}, err
	}

	for _, post := range page.Items {
		if err := s.store.SavePost(post); err != nil {
			s.logger.Warn("failed to cache post", "id", post.ID, "error", err)
		}
	}

	s.logger.Debug("fetched posts page", "count", len(page.Items), "next", page.NextCursor != "")
	return page, nil
}

// FetchBulk returns the complete result set for a fetch-by-ID filter
func (s *FeedService) FetchBulk(ctx context.Context, ids []string) ([]domain.Post, error) {
	posts, err := s.repo.QueryPostsBulk(ctx, ids)
	if err != nil {
		s.logger.Error("failed to fetch posts bulk", "error", err)
		return nil, err
	}
	for _, post := range posts {
		if err := s.store.SavePost(post); err != nil {
			s.logger.Warn("failed to cache post", "id", post.ID, "error", err)
		}
	}
	return posts, nil
}

// GetPost returns a single post, serving from cache when fresh
func (s *FeedService) GetPost(ctx context.Context, id string) (domain.Post, error) {
	if post, ok := s.store.GetPost(id, postCacheTTL); ok {
		s.logger.Debug("post cache hit", "id", id)
		return post, nil
	}

	post, err := s.repo.QueryPost(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if err := s.store.SavePost(post); err != nil {
		s.logger.Warn("failed to cache post", "id", post.ID, "error", err)
	}
	return post, nil
}

// resolveHandle maps a local name to an address, using the cached mapping
// as a fast path and falling back to the API
func (s *FeedService) resolveHandle(ctx context.Context, localName string) (string, error) {
	if address, ok := s.store.GetHandleAddress(localName); ok {
		s.logger.Debug("handle cache hit", "handle", localName)
		return address, nil
	}

	address, err := s.accounts.ResolveHandle(ctx, localName)
	if err != nil {
		s.logger.Warn("handle resolution failed", "handle", localName, "error", err)
		return "", err
	}
	return address, nil
}
