package components

import (
	"strings"

	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/social"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// AccountCard is the single-account profile widget: identity, bio,
// follower counters and the follow button.
type AccountCard struct {
	theme styles.Theme

	account  domain.Account
	stats    domain.AccountStats
	hasStats bool
	button   *FollowButton

	width   int
	focused bool
	loaded  bool

	viewer        string
	allowUnfollow bool
}

// NewAccountCard creates an empty card; SetAccount fills it
func NewAccountCard(theme styles.Theme) *AccountCard {
	return &AccountCard{theme: theme, allowUnfollow: true}
}

// SetViewer records the signed-in account so its own profile shows no button
func (c *AccountCard) SetViewer(address string) { c.viewer = address }

// SetAllowUnfollow controls whether the button can undo a follow
func (c *AccountCard) SetAllowUnfollow(allow bool) { c.allowUnfollow = allow }

// SetTheme swaps the palette
func (c *AccountCard) SetTheme(theme styles.Theme) { c.theme = theme }

// SetSize updates the layout bounds
func (c *AccountCard) SetSize(width int) { c.width = width }

// SetFocused toggles keyboard focus
func (c *AccountCard) SetFocused(focused bool) { c.focused = focused }

// Account returns the displayed account
func (c *AccountCard) Account() (domain.Account, bool) {
	return c.account, c.loaded
}

// SetAccount installs fresh account data. The follow button rebases its
// override when the identity is unchanged, and rebinds otherwise.
func (c *AccountCard) SetAccount(account domain.Account) {
	same := c.loaded && domain.SameAddress(c.account.Address, account.Address)
	c.account = account
	c.loaded = true

	if c.button == nil {
		c.button = NewFollowButton(account.Address)
		return
	}
	if same {
		c.button.Rebase(account)
	} else {
		c.button.Bind(account.Address)
		c.stats = domain.AccountStats{}
		c.hasStats = false
	}
}

// SetStats installs the aggregate counters
func (c *AccountCard) SetStats(address string, stats domain.AccountStats) {
	if !domain.SameAddress(c.account.Address, address) {
		return
	}
	c.stats = stats
	c.hasStats = true
}

// TriggerFollow attempts the follow toggle
func (c *AccountCard) TriggerFollow(authenticated bool) (account domain.Account, target bool, d social.Decision) {
	if !c.loaded || domain.SameAddress(c.account.Address, c.viewer) {
		return c.account, false, social.DecisionIgnore
	}
	if !c.allowUnfollow && c.button.Following(c.account) {
		return c.account, false, social.DecisionIgnore
	}
	target, d = c.button.Trigger(c.account, authenticated)
	return c.account, target, d
}

// ResolveFollow applies a follow mutation outcome
func (c *AccountCard) ResolveFollow(address string, failed bool) {
	if c.button == nil || !domain.SameAddress(c.account.Address, address) {
		return
	}
	if failed {
		c.button.Fail()
	} else {
		c.button.Resolve()
	}
}

// View renders the profile card
func (c *AccountCard) View() string {
	if !c.loaded {
		return c.theme.Muted().Render("  loading account…")
	}

	inner := c.width - 4
	var lines []string

	header := c.theme.Title().Render(c.account.DisplayName()) + " " +
		c.theme.AccentText().Render(c.account.Handle())
	if c.account.IsFollowingMe {
		header += " " + c.theme.Badge().Render("follows you")
	}
	lines = append(lines, header)
	lines = append(lines, c.theme.Muted().Render(domain.ShortAddress(c.account.Address)))

	if c.account.Bio != "" {
		for _, line := range wrapContent(c.account.Bio, c.theme, inner) {
			lines = append(lines, line)
		}
	}

	if c.hasStats {
		followers := c.stats.Followers + c.button.FollowerDelta()
		counters := c.theme.Subtitle().Render(
			domain.FormatCount(followers) + " followers · " +
				domain.FormatCount(c.stats.Following) + " following · " +
				domain.FormatCount(c.stats.Posts) + " posts")
		lines = append(lines, counters)
	}

	if !domain.SameAddress(c.account.Address, c.viewer) {
		lines = append(lines, c.button.View(c.account, c.theme))
	}

	return c.theme.Card(c.focused).Width(c.width - 2).Render(strings.Join(lines, "\n"))
}
