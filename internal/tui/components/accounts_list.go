package components

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/feed"
	"github.com/lenscope/lenscope/internal/social"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// AccountsList is the scrolling account list: loader, one follow button
// per account, cursor and an optional local fuzzy filter.
type AccountsList struct {
	theme styles.Theme

	loader  *feed.Loader[domain.Account]
	filter  domain.AccountFilter
	buttons map[string]*FollowButton

	selected int
	scroll   int
	width    int
	height   int
	focused  bool

	filterQuery string
	visible     []int

	viewer        string // signed-in account; no follow button on self
	allowUnfollow bool
}

// NewAccountsList creates the list widget for an initial filter
func NewAccountsList(theme styles.Theme, filter domain.AccountFilter) *AccountsList {
	l := &AccountsList{
		theme:         theme,
		buttons:       make(map[string]*FollowButton),
		filter:        filter,
		allowUnfollow: true,
	}
	if filter.IsBulk() {
		l.loader = feed.NewBulkLoader[domain.Account]()
	} else {
		l.loader = feed.NewLoader[domain.Account]()
	}
	if filter.NeedsResolution() {
		l.loader.Block()
	}
	return l
}

// SetTheme swaps the palette
func (l *AccountsList) SetTheme(theme styles.Theme) { l.theme = theme }

// SetSize updates the layout bounds
func (l *AccountsList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetFocused toggles keyboard focus
func (l *AccountsList) SetFocused(focused bool) { l.focused = focused }

// SetViewer records the signed-in account so its own row shows no button
func (l *AccountsList) SetViewer(address string) { l.viewer = address }

// SetAllowUnfollow controls whether the button can undo a follow
func (l *AccountsList) SetAllowUnfollow(allow bool) { l.allowUnfollow = allow }

// Loader exposes the page loader for the update loop
func (l *AccountsList) Loader() *feed.Loader[domain.Account] { return l.loader }

// Filter returns the active filter
func (l *AccountsList) Filter() domain.AccountFilter { return l.filter }

// SetFilter replaces the filter, discarding all loaded state unless the
// new filter is value-equal to the current one
func (l *AccountsList) SetFilter(filter domain.AccountFilter) (changed bool) {
	if l.filter.Equal(filter) {
		return false
	}
	l.filter = filter
	l.loader.Reset()
	l.loader.SetBulk(filter.IsBulk())
	l.buttons = make(map[string]*FollowButton)
	l.selected = 0
	l.scroll = 0
	l.filterQuery = ""
	l.visible = nil
	if filter.NeedsResolution() {
		l.loader.Block()
	} else {
		l.loader.Unblock()
	}
	return true
}

// ApplyResolved installs the handle-resolved filter and unblocks fetching
func (l *AccountsList) ApplyResolved(original, resolved domain.AccountFilter) bool {
	if !l.filter.Equal(original) {
		return false
	}
	l.filter = resolved
	l.loader.Unblock()
	return true
}

// button returns the follow button for an account, creating on demand
func (l *AccountsList) button(address string) *FollowButton {
	b, ok := l.buttons[address]
	if !ok {
		b = NewFollowButton(address)
		l.buttons[address] = b
	}
	return b
}

// Selected returns the account under the cursor
func (l *AccountsList) Selected() (domain.Account, bool) {
	items := l.visibleItems()
	if l.selected < 0 || l.selected >= len(items) {
		return domain.Account{}, false
	}
	return items[l.selected], true
}

func (l *AccountsList) visibleItems() []domain.Account {
	items := l.loader.Items()
	if l.visible == nil {
		return items
	}
	filtered := make([]domain.Account, 0, len(l.visible))
	for _, i := range l.visible {
		filtered = append(filtered, items[i])
	}
	return filtered
}

// SetLocalFilter narrows the loaded list with fuzzy matching
func (l *AccountsList) SetLocalFilter(query string) {
	l.filterQuery = query
	l.selected = 0
	l.scroll = 0
	if query == "" {
		l.visible = nil
		return
	}

	items := l.loader.Items()
	labels := make([]string, len(items))
	for i, account := range items {
		labels[i] = account.Username.LocalName + " " + account.Name
	}
	matches := fuzzy.Find(query, labels)
	l.visible = make([]int, len(matches))
	for i, m := range matches {
		l.visible[i] = m.Index
	}
}

// LocalFilter returns the active local filter query
func (l *AccountsList) LocalFilter() string { return l.filterQuery }

// MoveUp moves the cursor up one account
func (l *AccountsList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
	l.clampScroll()
}

// MoveDown moves the cursor down one account
func (l *AccountsList) MoveDown() {
	if l.selected < len(l.visibleItems())-1 {
		l.selected++
	}
	l.clampScroll()
}

// MoveTop jumps to the first account
func (l *AccountsList) MoveTop() {
	l.selected = 0
	l.clampScroll()
}

// MoveBottom jumps to the last loaded account
func (l *AccountsList) MoveBottom() {
	if n := len(l.visibleItems()); n > 0 {
		l.selected = n - 1
	}
	l.clampScroll()
}

func (l *AccountsList) clampScroll() {
	if l.selected < l.scroll {
		l.scroll = l.selected
	}
	visible := l.rowsPerScreen()
	if l.selected >= l.scroll+visible {
		l.scroll = l.selected - visible + 1
	}
}

func (l *AccountsList) rowsPerScreen() int {
	const rowHeight = 3
	n := l.height / rowHeight
	if n < 1 {
		n = 1
	}
	return n
}

// WantsMore reports whether the cursor has reached the fetch sentinel
func (l *AccountsList) WantsMore() bool {
	if l.filterQuery != "" {
		return false
	}
	n := l.loader.Len()
	if n == 0 {
		return true
	}
	return l.selected >= n-3
}

// TriggerFollow attempts the follow toggle on the selected account
func (l *AccountsList) TriggerFollow(authenticated bool) (account domain.Account, target bool, d social.Decision) {
	account, ok := l.Selected()
	if !ok {
		return account, false, social.DecisionIgnore
	}
	return l.TriggerFollowAccount(account, authenticated)
}

// TriggerFollowAccount attempts the follow toggle on a specific account.
// Used when retrying an action deferred by sign-in.
func (l *AccountsList) TriggerFollowAccount(account domain.Account, authenticated bool) (domain.Account, bool, social.Decision) {
	if domain.SameAddress(account.Address, l.viewer) {
		return account, false, social.DecisionIgnore
	}
	b := l.button(account.Address)
	if !l.allowUnfollow && b.Following(account) {
		return account, false, social.DecisionIgnore
	}
	target, d := b.Trigger(account, authenticated)
	return account, target, d
}

// ResolveFollow applies a follow mutation outcome to the owning button
func (l *AccountsList) ResolveFollow(address string, failed bool) {
	b, ok := l.buttons[address]
	if !ok {
		return
	}
	if failed {
		b.Fail()
	} else {
		b.Resolve()
	}
}

// View renders the visible slice of the list
func (l *AccountsList) View() string {
	items := l.visibleItems()

	if len(items) == 0 {
		return l.emptyView()
	}

	var rows []string
	end := min(l.scroll+l.rowsPerScreen(), len(items))
	for i := l.scroll; i < end; i++ {
		account := items[i]
		rows = append(rows, l.renderRow(account, l.focused && i == l.selected))
	}

	if l.loader.Loading() {
		rows = append(rows, l.theme.Muted().Render("  loading…"))
	} else if l.loader.Err() != nil {
		rows = append(rows, l.theme.ErrorText().Render("  fetch failed: "+l.loader.Err().Error()+" (r to retry)"))
	} else if l.loader.Exhausted() && end == len(items) {
		rows = append(rows, l.theme.Muted().Render("  no more accounts"))
	}

	return strings.Join(rows, "\n")
}

// renderRow renders "name @handle [Follow]" with a bio line
func (l *AccountsList) renderRow(account domain.Account, selected bool) string {
	header := l.theme.Title().Render(account.DisplayName()) + " " +
		l.theme.AccentText().Render(account.Handle())
	if !domain.SameAddress(account.Address, l.viewer) {
		header += "  " + l.button(account.Address).View(account, l.theme)
	}
	if account.IsFollowingMe {
		header += " " + l.theme.Badge().Render("follows you")
	}

	bio := l.theme.Subtitle().Render(styles.Truncate(strings.ReplaceAll(account.Bio, "\n", " "), l.width-4))

	row := header + "\n" + bio
	return l.theme.Card(selected).Width(l.width - 2).Render(row)
}

func (l *AccountsList) emptyView() string {
	switch {
	case l.loader.Blocked():
		return l.theme.Muted().Render("  resolving handle…")
	case l.loader.Loading():
		return l.theme.Muted().Render("  loading…")
	case l.loader.Err() != nil:
		return l.theme.ErrorText().Render("  fetch failed: " + l.loader.Err().Error() + " (r to retry)")
	case l.filterQuery != "":
		return l.theme.Muted().Render("  no accounts match " + l.filterQuery)
	default:
		return l.theme.Muted().Render("  no accounts")
	}
}
