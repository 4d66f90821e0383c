package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/service"
)

// Command factories for async operations

const fetchTimeout = 30 * time.Second

// ResolvePostsFilterCmd resolves a handle-derived post filter
func ResolvePostsFilterCmd(svc *service.FeedService, filter domain.PostFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		resolved, err := svc.ResolveFilter(ctx, filter)
		return PostsFilterResolvedMsg{Original: filter, Resolved: resolved, Err: err}
	}
}

// FetchPostsPageCmd fetches one page of posts
func FetchPostsPageCmd(svc *service.FeedService, filter domain.PostFilter, cursor string, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := svc.FetchPage(ctx, filter, cursor)
		return PostsPageMsg{Gen: gen, Page: page, Err: err}
	}
}

// FetchPostsBulkCmd fetches the complete set of posts named by ID
func FetchPostsBulkCmd(svc *service.FeedService, ids []string, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		posts, err := svc.FetchBulk(ctx, ids)
		return PostsBulkMsg{Gen: gen, Posts: posts, Err: err}
	}
}

// ResolveAccountsFilterCmd resolves a handle-derived account filter
func ResolveAccountsFilterCmd(svc *service.AccountService, filter domain.AccountFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		resolved, err := svc.ResolveFilter(ctx, filter)
		return AccountsFilterResolvedMsg{Original: filter, Resolved: resolved, Err: err}
	}
}

// FetchAccountsPageCmd fetches one page of accounts
func FetchAccountsPageCmd(svc *service.AccountService, filter domain.AccountFilter, cursor string, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := svc.FetchPage(ctx, filter, cursor)
		return AccountsPageMsg{Gen: gen, Page: page, Err: err}
	}
}

// FetchAccountsBulkCmd fetches the complete result of a bulk filter
func FetchAccountsBulkCmd(svc *service.AccountService, filter domain.AccountFilter, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		accounts, err := svc.FetchBulk(ctx, filter)
		return AccountsBulkMsg{Gen: gen, Accounts: accounts, Err: err}
	}
}

// LoadAccountCmd fetches a single account by address or local name
func LoadAccountCmd(svc *service.AccountService, address, localName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		account, err := svc.GetAccount(ctx, address, localName)
		return AccountLoadedMsg{Account: account, Err: err}
	}
}

// LoadStatsCmd fetches aggregate counters for an account
func LoadStatsCmd(svc *service.AccountService, address string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		stats, err := svc.GetStats(ctx, address)
		return StatsLoadedMsg{Address: address, Stats: stats, Err: err}
	}
}

// SetFollowCmd runs the follow/unfollow mutation toward the target state
func SetFollowCmd(svc *service.InteractionService, address string, target bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		action := domain.ActionFollow
		if !target {
			action = domain.ActionUnfollow
		}
		err := svc.SetFollow(ctx, address, target)
		return MutationDoneMsg{Action: action, EntityID: address, Err: err}
	}
}

// SetLikeCmd runs the like/unlike mutation toward the target state
func SetLikeCmd(svc *service.InteractionService, postID string, target bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		action := domain.ActionLike
		if !target {
			action = domain.ActionUnlike
		}
		err := svc.SetLike(ctx, postID, target)
		return MutationDoneMsg{Action: action, EntityID: postID, Err: err}
	}
}

// RepostCmd runs the repost mutation
func RepostCmd(svc *service.InteractionService, postID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.Repost(ctx, postID)
		return MutationDoneMsg{Action: domain.ActionRepost, EntityID: postID, Err: err}
	}
}

// BeginLoginCmd starts the wallet-approval challenge flow
func BeginLoginCmd(svc *service.SessionService, account string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		challenge, err := svc.BeginLogin(ctx, account)
		return ChallengeMsg{Challenge: challenge, Err: err}
	}
}

// PollLoginCmd checks the pending challenge after a short delay
func PollLoginCmd(svc *service.SessionService, challengeID string) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		approved, err := svc.PollLogin(ctx, challengeID)
		return LoginPollMsg{ChallengeID: challengeID, Approved: approved, Err: err}
	})
}

// LogoutCmd revokes the session and clears local state
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := svc.Logout(ctx); err != nil {
			return ErrMsg{Err: err, Context: "signing out"}
		}
		return SignedOutMsg{}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
