package domain

import (
	"slices"
	"strings"
)

// PageSize is the number of items requested per page.
// The API recognizes exactly two values.
type PageSize int

const (
	PageSizeTen   PageSize = 10
	PageSizeFifty PageSize = 50
)

// ParsePageSize maps the config/query-string names onto a PageSize
func ParsePageSize(s string) PageSize {
	if s == "fifty" {
		return PageSizeFifty
	}
	return PageSizeTen
}

// AccountsOrderBy orders account search results
type AccountsOrderBy string

const (
	AccountsOrderBestMatch    AccountsOrderBy = "BEST_MATCH"
	AccountsOrderAccountScore AccountsOrderBy = "ACCOUNT_SCORE"
	AccountsOrderAlphabetical AccountsOrderBy = "ALPHABETICAL"
)

// FollowOrderBy orders follower/following lists
type FollowOrderBy string

const (
	FollowOrderAccountScore FollowOrderBy = "ACCOUNT_SCORE"
	FollowOrderAsc          FollowOrderBy = "ASC"
	FollowOrderDesc         FollowOrderBy = "DESC"
)

// AccountFilter identifies one account list query. Exactly one of the
// source fields should be set; bulk sources (Addresses, OwnedBy,
// LocalNames) return a single complete result set with no pagination.
type AccountFilter struct {
	SearchBy     string   // username substring search
	Addresses    []string // bulk: fetch by account address
	OwnedBy      []string // bulk: fetch accounts owned by wallets
	LocalNames   []string // bulk: fetch by local handle
	ManagedBy    string   // accounts manageable by a wallet
	FollowersOf  string   // handle or address whose followers to list
	FollowingsOf string   // handle or address whose follows to list

	OrderBy       AccountsOrderBy
	FollowOrderBy FollowOrderBy
	PageSize      PageSize
}

// IsBulk reports whether the filter selects a complete, unpaginated set
func (f AccountFilter) IsBulk() bool {
	return len(f.Addresses) > 0 || len(f.OwnedBy) > 0 || len(f.LocalNames) > 0
}

// NeedsResolution reports whether a handle must be resolved to an address
// before the paginated query can run. A follower source already holding an
// address needs none.
func (f AccountFilter) NeedsResolution() bool {
	handle := f.Handle()
	return handle != "" && !strings.HasPrefix(handle, "0x")
}

// Handle returns the follower/following source, handle or address
func (f AccountFilter) Handle() string {
	if f.FollowersOf != "" {
		return f.FollowersOf
	}
	return f.FollowingsOf
}

// Equal compares two filters by value, including absence
func (f AccountFilter) Equal(o AccountFilter) bool {
	return f.SearchBy == o.SearchBy &&
		slices.Equal(f.Addresses, o.Addresses) &&
		slices.Equal(f.OwnedBy, o.OwnedBy) &&
		slices.Equal(f.LocalNames, o.LocalNames) &&
		f.ManagedBy == o.ManagedBy &&
		f.FollowersOf == o.FollowersOf &&
		f.FollowingsOf == o.FollowingsOf &&
		f.OrderBy == o.OrderBy &&
		f.FollowOrderBy == o.FollowOrderBy &&
		f.PageSize == o.PageSize
}

// PostFilter identifies one post list query
type PostFilter struct {
	Authors     []string // author account addresses
	PostsOf     string   // local name whose posts to list (resolved first)
	SearchQuery string   // full-text search
	Tags        []string // metadata tag filter (any of)
	PostIDs     []string // bulk: fetch specific posts, no pagination
	Kinds       []PostKind

	PageSize PageSize
}

// IsBulk reports whether the filter selects a complete, unpaginated set
func (f PostFilter) IsBulk() bool {
	return len(f.PostIDs) > 0
}

// NeedsResolution reports whether a handle must be resolved to an address
// before the paginated query can run
func (f PostFilter) NeedsResolution() bool {
	return f.PostsOf != ""
}

// Equal compares two filters by value, including absence
func (f PostFilter) Equal(o PostFilter) bool {
	return slices.Equal(f.Authors, o.Authors) &&
		f.PostsOf == o.PostsOf &&
		f.SearchQuery == o.SearchQuery &&
		slices.Equal(f.Tags, o.Tags) &&
		slices.Equal(f.PostIDs, o.PostIDs) &&
		slices.Equal(f.Kinds, o.Kinds) &&
		f.PageSize == o.PageSize
}
