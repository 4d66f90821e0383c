package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/store"
)

const accountCacheTTL = 5 * time.Minute

// AccountService handles account queries, resolution and caching
type AccountService struct {
	repo   domain.AccountRepository
	store  *store.Store
	logger *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repo domain.AccountRepository, st *store.Store, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{repo: repo, store: st, logger: logger}
}

// ResolveFilter resolves a follower/following filter's handle to the address
// the paginated query needs. Filters that need no resolution are returned
// unchanged.
func (s *AccountService) ResolveFilter(ctx context.Context, filter domain.AccountFilter) (domain.AccountFilter, error) {
	if !filter.NeedsResolution() {
		return filter, nil
	}

	address, err := s.ResolveHandle(ctx, filter.Handle())
	if err != nil {
		return filter, err
	}

	resolved := filter
	if filter.FollowersOf != "" {
		resolved.FollowersOf = address
	} else {
		resolved.FollowingsOf = address
	}
	return resolved, nil
}

// FetchPage returns one page of accounts for an already-resolved filter
func (s *AccountService) FetchPage(ctx context.Context, filter domain.AccountFilter, cursor string) (domain.AccountPage, error) {
	page, err := s.repo.QueryAccounts(ctx, filter, cursor)
	if err != nil {
		s.logger.Error("failed to fetch accounts page", "error", err)
		return domain.AccountPage{}, err
	}

	for _, account := range page.Items {
		if err := s.store.SaveAccount(account); err != nil {
			s.logger.Warn("failed to cache account", "address", account.Address, "error", err)
		}
	}

	s.logger.Debug("fetched accounts page", "count", len(page.Items), "next", page.NextCursor != "")
	return page, nil
}

// FetchBulk returns the complete result set for a bulk filter
func (s *AccountService) FetchBulk(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.repo.QueryAccountsBulk(ctx, filter)
	if err != nil {
		s.logger.Error("failed to fetch accounts bulk", "error", err)
		return nil, err
	}
	for _, account := range accounts {
		if err := s.store.SaveAccount(account); err != nil {
			s.logger.Warn("failed to cache account", "address", account.Address, "error", err)
		}
	}
	return accounts, nil
}

// GetAccount returns a single account by address or local name, serving
// from cache when fresh
func (s *AccountService) GetAccount(ctx context.Context, address, localName string) (domain.Account, error) {
	if address == "" && localName != "" {
		if cached, ok := s.store.GetHandleAddress(localName); ok {
			address = cached
		}
	}
	if address != "" {
		if account, ok := s.store.GetAccount(address, accountCacheTTL); ok {
			s.logger.Debug("account cache hit", "address", address)
			return account, nil
		}
	}

	account, err := s.repo.QueryAccount(ctx, address, localName)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.store.SaveAccount(account); err != nil {
		s.logger.Warn("failed to cache account", "address", account.Address, "error", err)
	}
	return account, nil
}

// ResolveHandle maps a local name to an account address, using the cached
// mapping as a fast path
func (s *AccountService) ResolveHandle(ctx context.Context, localName string) (string, error) {
	if address, ok := s.store.GetHandleAddress(localName); ok {
		s.logger.Debug("handle cache hit", "handle", localName)
		return address, nil
	}

	address, err := s.repo.ResolveHandle(ctx, localName)
	if err != nil {
		s.logger.Warn("handle resolution failed", "handle", localName, "error", err)
		return "", err
	}
	return address, nil
}

// GetStats returns aggregate counters for an account
func (s *AccountService) GetStats(ctx context.Context, address string) (domain.AccountStats, error) {
	stats, err := s.repo.QueryAccountStats(ctx, address)
	if err != nil {
		s.logger.Error("failed to fetch account stats", "address", address, "error", err)
		return domain.AccountStats{}, err
	}
	return stats, nil
}
