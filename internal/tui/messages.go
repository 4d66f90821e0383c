package tui

import (
	"github.com/lenscope/lenscope/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PostsPageMsg delivers one fetched page of posts. Gen ties the completion
// to the filter session that requested it.
type PostsPageMsg struct {
	Gen  int
	Page domain.PostPage
	Err  error
}

// PostsBulkMsg delivers the complete result of a fetch-by-ID post query
type PostsBulkMsg struct {
	Gen   int
	Posts []domain.Post
	Err   error
}

// AccountsPageMsg delivers one fetched page of accounts
type AccountsPageMsg struct {
	Gen  int
	Page domain.AccountPage
	Err  error
}

// AccountsBulkMsg delivers the complete result of a bulk account query
type AccountsBulkMsg struct {
	Gen      int
	Accounts []domain.Account
	Err      error
}

// PostsFilterResolvedMsg delivers a handle-resolved post filter.
// Original identifies the filter the resolution was started for, so a
// completion arriving after a filter change is recognized as stale.
type PostsFilterResolvedMsg struct {
	Original domain.PostFilter
	Resolved domain.PostFilter
	Err      error
}

// AccountsFilterResolvedMsg delivers a handle-resolved account filter
type AccountsFilterResolvedMsg struct {
	Original domain.AccountFilter
	Resolved domain.AccountFilter
	Err      error
}

// AccountLoadedMsg delivers a single fetched account
type AccountLoadedMsg struct {
	Account domain.Account
	Err     error
}

// StatsLoadedMsg delivers account stats
type StatsLoadedMsg struct {
	Address string
	Stats   domain.AccountStats
	Err     error
}

// MutationDoneMsg reports the outcome of one social mutation
type MutationDoneMsg struct {
	Action   domain.ActionKind
	EntityID string
	Err      error
}

// SignInRequiredMsg asks the app to open the sign-in flow. Retry, when
// set, is re-dispatched once after a successful sign-in.
type SignInRequiredMsg struct {
	Retry *PendingAction
}

// PendingAction is a social action deferred by a sign-in
type PendingAction struct {
	Action   domain.ActionKind
	EntityID string
}

// ChallengeMsg delivers a started login challenge
type ChallengeMsg struct {
	Challenge domain.LoginChallenge
	Err       error
}

// LoginPollMsg reports one poll of the pending challenge
type LoginPollMsg struct {
	ChallengeID string
	Approved    bool
	Err         error
}

// SignedOutMsg signals a completed sign-out
type SignedOutMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
