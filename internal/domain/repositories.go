package domain

import (
	"context"
	"time"
)

// AccountPage is one page of an account list query
type AccountPage struct {
	Items      []Account
	NextCursor string // empty means no more pages
}

// PostPage is one page of a post list query
type PostPage struct {
	Items      []Post
	NextCursor string // empty means no more pages
}

// AccountRepository provides read access to accounts
type AccountRepository interface {
	// QueryAccounts returns one page of accounts matching a paginated filter.
	// An empty cursor requests the first page.
	QueryAccounts(ctx context.Context, filter AccountFilter, cursor string) (AccountPage, error)

	// QueryAccountsBulk returns the complete result set for a bulk filter
	QueryAccountsBulk(ctx context.Context, filter AccountFilter) ([]Account, error)

	// QueryAccount returns a single account by address or local name
	QueryAccount(ctx context.Context, address, localName string) (Account, error)

	// ResolveHandle resolves a local name to an account address.
	// Returns ErrHandleUnknown for names that do not exist.
	ResolveHandle(ctx context.Context, localName string) (string, error)

	// QueryAccountStats returns aggregate counters for an account
	QueryAccountStats(ctx context.Context, address string) (AccountStats, error)
}

// FeedRepository provides read access to posts
type FeedRepository interface {
	// QueryPosts returns one page of posts matching a paginated filter
	QueryPosts(ctx context.Context, filter PostFilter, cursor string) (PostPage, error)

	// QueryPostsBulk returns the complete set of posts named by ID
	QueryPostsBulk(ctx context.Context, ids []string) ([]Post, error)

	// QueryPost returns a single post by ID
	QueryPost(ctx context.Context, id string) (Post, error)
}

// ActionKind identifies a social mutation
type ActionKind string

const (
	ActionFollow   ActionKind = "follow"
	ActionUnfollow ActionKind = "unfollow"
	ActionLike     ActionKind = "like"
	ActionUnlike   ActionKind = "unlike"
	ActionRepost   ActionKind = "repost"
)

// InteractionRepository executes social mutations against the API.
// All methods require an authenticated session.
type InteractionRepository interface {
	Follow(ctx context.Context, accountAddress string) error
	Unfollow(ctx context.Context, accountAddress string) error
	Like(ctx context.Context, postID string) error
	Unlike(ctx context.Context, postID string) error
	Repost(ctx context.Context, postID string) error
}

// Session holds the tokens for an authenticated account
type Session struct {
	AccountAddress string
	AccessToken    string
	RefreshToken   string
	ExpiresAt      time.Time
}

// Valid reports whether the session can still authenticate requests
func (s Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && now.Before(s.ExpiresAt)
}

// LoginChallenge is a pending wallet-approval login
type LoginChallenge struct {
	ID        string
	Code      string // short code the user matches in their wallet app
	VerifyURL string // where the user approves the login
	ExpiresAt time.Time
}

// AuthRepository drives the challenge-based login flow: request a challenge,
// let the user approve it in their wallet app, poll until tokens arrive.
type AuthRepository interface {
	// RequestChallenge starts a login for the given account address or handle
	RequestChallenge(ctx context.Context, account string) (LoginChallenge, error)

	// PollChallenge checks whether the challenge has been approved.
	// Returns (zero, nil) while the approval is still pending.
	PollChallenge(ctx context.Context, challengeID string) (Session, error)

	// Refresh exchanges a refresh token for a fresh session
	Refresh(ctx context.Context, refreshToken string) (Session, error)

	// Logout revokes the session server-side
	Logout(ctx context.Context, session Session) error
}

// SessionStore persists sessions across runs
type SessionStore interface {
	LoadSession() (Session, bool)
	SaveSession(s Session) error
	ClearSession() error
}
