// Package components holds the reusable widgets the views compose:
// entity cards, list widgets, the sign-in modal and the status toast.
package components

import (
	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/social"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// FollowButton owns the optimistic follow state for one account
type FollowButton struct {
	ctrl *social.Controller
}

// NewFollowButton creates a follow button bound to an account
func NewFollowButton(address string) *FollowButton {
	b := &FollowButton{ctrl: social.NewController(social.KindFollow)}
	b.ctrl.Bind(address)
	return b
}

// Bind repoints the button; a different address discards local state
func (b *FollowButton) Bind(address string) {
	b.ctrl.Bind(address)
}

// Trigger attempts the follow/unfollow toggle
func (b *FollowButton) Trigger(account domain.Account, authenticated bool) (target bool, d social.Decision) {
	return b.ctrl.Trigger(account.IsFollowedByMe, authenticated)
}

// Resolve records mutation success
func (b *FollowButton) Resolve() { b.ctrl.Resolve() }

// Fail rolls the optimistic flip back
func (b *FollowButton) Fail() { b.ctrl.Fail() }

// Rebase retires the override after fresh server data
func (b *FollowButton) Rebase(account domain.Account) {
	b.ctrl.Rebase(account.IsFollowedByMe)
}

// Following returns the effective state to display
func (b *FollowButton) Following(account domain.Account) bool {
	return b.ctrl.Effective(account.IsFollowedByMe)
}

// FollowerDelta is the optimistic adjustment to the follower count
func (b *FollowButton) FollowerDelta() int { return b.ctrl.CounterDelta() }

// Pending reports an in-flight mutation
func (b *FollowButton) Pending() bool { return b.ctrl.Pending() }

// View renders the button label for the current state
func (b *FollowButton) View(account domain.Account, theme styles.Theme) string {
	switch {
	case b.ctrl.Pending():
		return theme.ButtonIdle().Render("…")
	case b.Following(account):
		return theme.ButtonActive().Render("Following")
	default:
		return theme.ButtonIdle().Render("Follow")
	}
}
