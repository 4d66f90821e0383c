// Package tui is the terminal user interface: the root model, its views
// and the async command plumbing between widgets and services.
package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lenscope/lenscope/internal/browser"
	"github.com/lenscope/lenscope/internal/config"
	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/feed"
	"github.com/lenscope/lenscope/internal/service"
	"github.com/lenscope/lenscope/internal/social"
	"github.com/lenscope/lenscope/internal/tui/components"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// View identifies the active screen
type View int

const (
	ViewFeed View = iota
	ViewAccounts
	ViewProfile
)

// Services bundles everything the TUI calls into
type Services struct {
	Feed        *service.FeedService
	Accounts    *service.AccountService
	Interaction *service.InteractionService
	Session     *service.SessionService
}

// App is the root bubbletea model
type App struct {
	cfg    *config.Config
	theme  styles.Theme
	keys   KeyMap
	logger *slog.Logger

	svcs   Services
	opener *browser.Opener

	view     View
	feed     *components.PostsFeed
	accounts *components.AccountsList
	profile  *components.AccountCard
	signin   components.SignInModal
	toast    components.Toast

	// Local filter entry state
	filtering   bool
	filterInput textinput.Model

	// Social action deferred by a sign-in, retried once on success
	pending *PendingAction

	resolvingPosts    bool
	resolvingAccounts bool

	width  int
	height int
	help   bool
}

// NewApp assembles the root model from config and services
func NewApp(cfg *config.Config, svcs Services, opener *browser.Opener, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	theme := styles.Load(cfg.UI.Theme)

	postFilter := domain.PostFilter{
		Authors:  cfg.Feed.Authors,
		PostsOf:  cfg.Feed.PostsOf,
		Tags:     cfg.Feed.Tags,
		PageSize: domain.ParsePageSize(cfg.Feed.PageSize),
	}
	accountFilter := domain.AccountFilter{
		OrderBy:  domain.AccountsOrderAccountScore,
		PageSize: domain.ParsePageSize(cfg.Feed.PageSize),
	}

	fi := textinput.New()
	fi.Prompt = "/"
	fi.CharLimit = 60

	accounts := components.NewAccountsList(theme, accountFilter)
	profile := components.NewAccountCard(theme)
	accounts.SetAllowUnfollow(cfg.UI.AllowUnfollow)
	profile.SetAllowUnfollow(cfg.UI.AllowUnfollow)
	if svcs.Session != nil {
		accounts.SetViewer(svcs.Session.AccountAddress())
		profile.SetViewer(svcs.Session.AccountAddress())
	}

	return &App{
		cfg:         cfg,
		theme:       theme,
		keys:        DefaultKeyMap(),
		logger:      logger,
		svcs:        svcs,
		opener:      opener,
		feed:        components.NewPostsFeed(theme, postFilter, cfg.UI.VisibleStats, cfg.UI.VisibleButtons),
		accounts:    accounts,
		profile:     profile,
		signin:      components.NewSignInModal(theme),
		toast:       components.NewToast(theme),
		filterInput: fi,
	}
}

// Init kicks off the first feed fetch
func (a *App) Init() tea.Cmd {
	a.feed.SetFocused(true)
	return a.startFeedFetch()
}

// Update is the single-threaded event loop: every async completion
// arrives here as a message
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case PostsPageMsg:
		if msg.Err != nil {
			a.feed.Loader().Fail(msg.Gen, msg.Err)
			return a, nil
		}
		a.feed.Loader().Complete(msg.Gen, toFeedPage(msg.Page))
		// Keep filling until the sentinel is satisfied or pages run out
		if a.view == ViewFeed && a.feed.WantsMore() {
			return a, a.startFeedFetch()
		}
		return a, nil

	case PostsBulkMsg:
		if msg.Err != nil {
			a.feed.Loader().Fail(msg.Gen, msg.Err)
			return a, nil
		}
		a.feed.Loader().Complete(msg.Gen, bulkPostsPage(msg.Posts))
		return a, nil

	case AccountsPageMsg:
		if msg.Err != nil {
			a.accounts.Loader().Fail(msg.Gen, msg.Err)
			return a, nil
		}
		a.accounts.Loader().Complete(msg.Gen, toAccountPage(msg.Page))
		if a.view == ViewAccounts && a.accounts.WantsMore() {
			return a, a.startAccountsFetch()
		}
		return a, nil

	case AccountsBulkMsg:
		if msg.Err != nil {
			a.accounts.Loader().Fail(msg.Gen, msg.Err)
			return a, nil
		}
		a.accounts.Loader().Complete(msg.Gen, bulkAccountsPage(msg.Accounts))
		return a, nil

	case PostsFilterResolvedMsg:
		a.resolvingPosts = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrHandleUnknown) {
				// Unknown handle reads as an empty list, not an error
				exhaustEmpty(a.feed.Loader())
				return a, nil
			}
			// The loader stays blocked; r retries resolution
			a.toast.Set("resolving handle: "+msg.Err.Error(), true)
			return a, ClearStatusCmd()
		}
		if a.feed.ApplyResolved(msg.Original, msg.Resolved) {
			return a, a.startFeedFetch()
		}
		return a, nil

	case AccountsFilterResolvedMsg:
		a.resolvingAccounts = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrHandleUnknown) {
				exhaustEmpty(a.accounts.Loader())
				return a, nil
			}
			a.toast.Set("resolving handle: "+msg.Err.Error(), true)
			return a, ClearStatusCmd()
		}
		if a.accounts.ApplyResolved(msg.Original, msg.Resolved) {
			return a, a.startAccountsFetch()
		}
		return a, nil

	case AccountLoadedMsg:
		if msg.Err != nil {
			a.toast.Set("loading account: "+msg.Err.Error(), true)
			return a, ClearStatusCmd()
		}
		a.profile.SetAccount(msg.Account)
		return a, LoadStatsCmd(a.svcs.Accounts, msg.Account.Address)

	case StatsLoadedMsg:
		if msg.Err == nil {
			a.profile.SetStats(msg.Address, msg.Stats)
		}
		return a, nil

	case MutationDoneMsg:
		return a.updateMutationDone(msg)

	case SignInRequiredMsg:
		a.pending = msg.Retry
		a.signin.Show()
		return a, nil

	case ChallengeMsg:
		if msg.Err != nil {
			a.signin.SetError("challenge failed: " + msg.Err.Error())
			return a, nil
		}
		a.signin.SetChallenge(msg.Challenge)
		if a.opener != nil && msg.Challenge.VerifyURL != "" {
			if err := a.opener.Open(msg.Challenge.VerifyURL); err != nil {
				a.logger.Warn("failed to open verify URL", "error", err)
			}
		}
		return a, PollLoginCmd(a.svcs.Session, msg.Challenge.ID)

	case LoginPollMsg:
		if !a.signin.IsVisible() {
			return a, nil // cancelled
		}
		if msg.Err != nil {
			a.signin.SetError("sign-in failed: " + msg.Err.Error())
			return a, nil
		}
		if !msg.Approved {
			return a, PollLoginCmd(a.svcs.Session, msg.ChallengeID)
		}
		a.signin.Hide()
		a.accounts.SetViewer(a.svcs.Session.AccountAddress())
		a.profile.SetViewer(a.svcs.Session.AccountAddress())
		a.toast.Set("signed in", false)
		cmds := []tea.Cmd{ClearStatusCmd(), a.refreshAll()}
		if cmd := a.retryPending(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case SignedOutMsg:
		a.accounts.SetViewer("")
		a.profile.SetViewer("")
		a.toast.Set("signed out", false)
		return a, tea.Batch(ClearStatusCmd(), a.refreshAll())

	case StatusMsg:
		a.toast.Set(msg.Message, msg.IsError)
		return a, ClearStatusCmd()

	case ClearStatusMsg:
		a.toast.Clear()
		return a, nil

	case ErrMsg:
		a.toast.Set(msg.Error(), true)
		return a, ClearStatusCmd()
	}

	return a, nil
}

// updateKeys routes key input to the modal, the filter prompt or the views
func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.signin.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		a.signin, cmd, submitted = a.signin.Update(msg)
		if submitted {
			a.signin.SetRequesting()
			return a, BeginLoginCmd(a.svcs.Session, a.signin.Account())
		}
		if !a.signin.IsVisible() {
			a.pending = nil // cancelled sign-in drops the deferred action
		}
		return a, cmd
	}

	if a.filtering {
		switch msg.String() {
		case "enter", "esc":
			a.filtering = false
			if msg.String() == "esc" {
				a.filterInput.SetValue("")
				a.applyLocalFilter("")
			}
			a.filterInput.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		a.applyLocalFilter(a.filterInput.Value())
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help = !a.help
		return a, nil

	case key.Matches(msg, a.keys.Escape):
		if a.help {
			a.help = false
			return a, nil
		}
		if a.view == ViewProfile {
			a.switchView(ViewAccounts)
		}
		return a, nil

	case key.Matches(msg, a.keys.Tab):
		switch a.view {
		case ViewFeed:
			a.switchView(ViewAccounts)
			return a, a.startAccountsFetch()
		default:
			a.switchView(ViewFeed)
			return a, a.startFeedFetch()
		}

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
		return a, a.maybeFetchMore()

	case key.Matches(msg, a.keys.Home):
		if a.view == ViewFeed {
			a.feed.MoveTop()
		} else if a.view == ViewAccounts {
			a.accounts.MoveTop()
		}
		return a, nil

	case key.Matches(msg, a.keys.End):
		if a.view == ViewFeed {
			a.feed.MoveBottom()
		} else if a.view == ViewAccounts {
			a.accounts.MoveBottom()
		}
		return a, a.maybeFetchMore()

	case key.Matches(msg, a.keys.Refresh):
		// Begin dedupes, so this is safe while a fetch is in flight
		switch a.view {
		case ViewFeed:
			return a, a.startFeedFetch()
		case ViewAccounts:
			return a, a.startAccountsFetch()
		}
		return a, nil

	case key.Matches(msg, a.keys.Filter):
		if a.view == ViewFeed || a.view == ViewAccounts {
			a.filtering = true
			a.filterInput.SetValue(a.currentLocalFilter())
			a.filterInput.Focus()
		}
		return a, nil

	case key.Matches(msg, a.keys.Like):
		if a.view == ViewFeed {
			return a, a.triggerLike()
		}
		return a, nil

	case key.Matches(msg, a.keys.Repost):
		if a.view == ViewFeed {
			return a, a.triggerRepost()
		}
		return a, nil

	case key.Matches(msg, a.keys.Follow):
		return a, a.triggerFollow()

	case key.Matches(msg, a.keys.Open):
		return a, a.openSelectedMedia()

	case key.Matches(msg, a.keys.Enter):
		if a.view == ViewAccounts {
			if account, ok := a.accounts.Selected(); ok {
				a.switchView(ViewProfile)
				return a, LoadAccountCmd(a.svcs.Accounts, account.Address, "")
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.SignIn):
		if !a.svcs.Session.Authenticated() {
			a.pending = nil
			a.signin.Show()
		}
		return a, nil

	case key.Matches(msg, a.keys.SignOut):
		if a.svcs.Session.Authenticated() {
			return a, LogoutCmd(a.svcs.Session)
		}
		return a, nil

	case key.Matches(msg, a.keys.Theme):
		a.cycleTheme()
		return a, nil
	}

	return a, nil
}

// updateMutationDone routes a mutation result to the owning controller
func (a *App) updateMutationDone(msg MutationDoneMsg) (tea.Model, tea.Cmd) {
	failed := msg.Err != nil

	switch msg.Action {
	case domain.ActionLike, domain.ActionUnlike, domain.ActionRepost:
		a.feed.ResolveMutation(msg.Action, msg.EntityID, failed)
	case domain.ActionFollow, domain.ActionUnfollow:
		a.accounts.ResolveFollow(msg.EntityID, failed)
		a.profile.ResolveFollow(msg.EntityID, failed)
	}

	if failed {
		a.toast.Set(string(msg.Action)+" failed: "+msg.Err.Error(), true)
		return a, ClearStatusCmd()
	}
	return a, nil
}

// Action triggers

func (a *App) triggerLike() tea.Cmd {
	post, target, decision := a.feed.TriggerLike(a.svcs.Session.Authenticated())
	switch decision {
	case social.DecisionStart:
		return SetLikeCmd(a.svcs.Interaction, post.ID, target)
	case social.DecisionAuthRequired:
		action := domain.ActionLike
		a.pending = &PendingAction{Action: action, EntityID: post.ID}
		a.signin.Show()
	}
	return nil
}

func (a *App) triggerRepost() tea.Cmd {
	post, decision := a.feed.TriggerRepost(a.svcs.Session.Authenticated())
	switch decision {
	case social.DecisionStart:
		return RepostCmd(a.svcs.Interaction, post.ID)
	case social.DecisionAuthRequired:
		a.pending = &PendingAction{Action: domain.ActionRepost, EntityID: post.ID}
		a.signin.Show()
	}
	return nil
}

func (a *App) triggerFollow() tea.Cmd {
	var account domain.Account
	var target bool
	var decision social.Decision

	switch a.view {
	case ViewAccounts:
		account, target, decision = a.accounts.TriggerFollow(a.svcs.Session.Authenticated())
	case ViewProfile:
		account, target, decision = a.profile.TriggerFollow(a.svcs.Session.Authenticated())
	default:
		return nil
	}

	switch decision {
	case social.DecisionStart:
		return SetFollowCmd(a.svcs.Interaction, account.Address, target)
	case social.DecisionAuthRequired:
		action := domain.ActionFollow
		if !target {
			action = domain.ActionUnfollow
		}
		a.pending = &PendingAction{Action: action, EntityID: account.Address}
		a.signin.Show()
	}
	return nil
}

// retryPending re-dispatches the one action deferred by the sign-in
func (a *App) retryPending() tea.Cmd {
	if a.pending == nil {
		return nil
	}
	pending := *a.pending
	a.pending = nil

	switch pending.Action {
	case domain.ActionLike, domain.ActionUnlike:
		return a.triggerLikeOn(pending.EntityID)
	case domain.ActionRepost:
		return a.triggerRepostOn(pending.EntityID)
	case domain.ActionFollow, domain.ActionUnfollow:
		return a.triggerFollowOn(pending.EntityID)
	}
	return nil
}

// triggerLikeOn retries a like on a specific post after sign-in.
// The cursor may have moved, so the retry targets the remembered post.
func (a *App) triggerLikeOn(postID string) tea.Cmd {
	for _, post := range a.feed.Loader().Items() {
		if post.ID == postID {
			post, target, decision := a.feed.TriggerLikePost(post, true)
			if decision == social.DecisionStart {
				return SetLikeCmd(a.svcs.Interaction, post.ID, target)
			}
			return nil
		}
	}
	return nil
}

func (a *App) triggerRepostOn(postID string) tea.Cmd {
	for _, post := range a.feed.Loader().Items() {
		if post.ID == postID {
			post, decision := a.feed.TriggerRepostPost(post, true)
			if decision == social.DecisionStart {
				return RepostCmd(a.svcs.Interaction, post.ID)
			}
			return nil
		}
	}
	return nil
}

func (a *App) triggerFollowOn(address string) tea.Cmd {
	if account, ok := a.profile.Account(); ok && domain.SameAddress(account.Address, address) {
		_, target, decision := a.profile.TriggerFollow(true)
		if decision == social.DecisionStart {
			return SetFollowCmd(a.svcs.Interaction, address, target)
		}
		return nil
	}
	for _, account := range a.accounts.Loader().Items() {
		if domain.SameAddress(account.Address, address) {
			account, target, decision := a.accounts.TriggerFollowAccount(account, true)
			if decision == social.DecisionStart {
				return SetFollowCmd(a.svcs.Interaction, account.Address, target)
			}
			return nil
		}
	}
	return nil
}

// Fetch plumbing

// startFeedFetch begins the next feed fetch: resolution first when the
// filter is handle-derived, then page or bulk queries
func (a *App) startFeedFetch() tea.Cmd {
	loader := a.feed.Loader()
	if loader.Blocked() {
		if a.resolvingPosts {
			return nil
		}
		a.resolvingPosts = true
		return ResolvePostsFilterCmd(a.svcs.Feed, a.feed.Filter())
	}

	gen, cursor, ok := loader.Begin()
	if !ok {
		return nil
	}
	filter := a.feed.Filter()
	if filter.IsBulk() {
		return FetchPostsBulkCmd(a.svcs.Feed, filter.PostIDs, gen)
	}
	return FetchPostsPageCmd(a.svcs.Feed, filter, cursor, gen)
}

func (a *App) startAccountsFetch() tea.Cmd {
	loader := a.accounts.Loader()
	if loader.Blocked() {
		if a.resolvingAccounts {
			return nil
		}
		a.resolvingAccounts = true
		return ResolveAccountsFilterCmd(a.svcs.Accounts, a.accounts.Filter())
	}

	gen, cursor, ok := loader.Begin()
	if !ok {
		return nil
	}
	filter := a.accounts.Filter()
	if filter.IsBulk() {
		return FetchAccountsBulkCmd(a.svcs.Accounts, filter, gen)
	}
	return FetchAccountsPageCmd(a.svcs.Accounts, filter, cursor, gen)
}

func (a *App) maybeFetchMore() tea.Cmd {
	switch a.view {
	case ViewFeed:
		if a.feed.WantsMore() {
			return a.startFeedFetch()
		}
	case ViewAccounts:
		if a.accounts.WantsMore() {
			return a.startAccountsFetch()
		}
	}
	return nil
}

// refreshAll resets both lists so viewer-relative fields are refetched
// with the new session
func (a *App) refreshAll() tea.Cmd {
	a.feed.Loader().Reset()
	a.accounts.Loader().Reset()
	var cmds []tea.Cmd
	if cmd := a.startFeedFetch(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.view == ViewAccounts {
		if cmd := a.startAccountsFetch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// View plumbing

func (a *App) switchView(v View) {
	a.view = v
	a.feed.SetFocused(v == ViewFeed)
	a.accounts.SetFocused(v == ViewAccounts)
	a.profile.SetFocused(v == ViewProfile)
}

func (a *App) moveCursor(delta int) {
	switch a.view {
	case ViewFeed:
		if delta < 0 {
			a.feed.MoveUp()
		} else {
			a.feed.MoveDown()
		}
	case ViewAccounts:
		if delta < 0 {
			a.accounts.MoveUp()
		} else {
			a.accounts.MoveDown()
		}
	}
}

func (a *App) currentLocalFilter() string {
	if a.view == ViewFeed {
		return a.feed.LocalFilter()
	}
	return a.accounts.LocalFilter()
}

func (a *App) applyLocalFilter(query string) {
	if a.view == ViewFeed {
		a.feed.SetLocalFilter(query)
	} else {
		a.accounts.SetLocalFilter(query)
	}
}

func (a *App) openSelectedMedia() tea.Cmd {
	if a.view != ViewFeed || a.opener == nil {
		return nil
	}
	post, ok := a.feed.Selected()
	if !ok {
		return nil
	}
	display := post.Display()
	if len(display.Attachments) == 0 {
		return nil
	}
	if err := a.opener.Open(display.Attachments[0].URL); err != nil {
		a.toast.Set("opening media: "+err.Error(), true)
		return ClearStatusCmd()
	}
	return nil
}

func (a *App) cycleTheme() {
	names := styles.Names()
	next := names[0]
	for i, name := range names {
		if name == a.theme.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	a.theme = styles.Load(next)
	a.cfg.UI.Theme = next
	a.feed.SetTheme(a.theme)
	a.accounts.SetTheme(a.theme)
	a.profile.SetTheme(a.theme)
	a.signin.SetTheme(a.theme)
	a.toast.SetTheme(a.theme)
	if err := config.Save(a.cfg); err != nil {
		a.logger.Warn("failed to persist theme", "error", err)
	}
}

func (a *App) layout() {
	contentHeight := a.height - 3 // header and status line
	a.feed.SetSize(a.width, contentHeight)
	a.accounts.SetSize(a.width, contentHeight)
	a.profile.SetSize(a.width)
}

// View renders the whole screen
func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	var b strings.Builder

	if a.cfg.UI.ShowHeader {
		b.WriteString(a.renderHeader())
		b.WriteString("\n")
	}

	switch a.view {
	case ViewFeed:
		b.WriteString(a.feed.View())
	case ViewAccounts:
		b.WriteString(a.accounts.View())
	case ViewProfile:
		b.WriteString(a.profile.View())
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatusLine())

	if a.signin.IsVisible() {
		return centered(a.signin.View(), a.width, a.height)
	}
	if a.help {
		return centered(a.renderHelp(), a.width, a.height)
	}
	return b.String()
}

func (a *App) renderHeader() string {
	title := a.theme.Title().Render("lenscope")

	tabViews := []View{ViewFeed, ViewAccounts}
	tabLabels := []string{"feed", "accounts"}
	var tabs []string
	for i, v := range tabViews {
		if v == a.view || (a.view == ViewProfile && v == ViewAccounts) {
			tabs = append(tabs, a.theme.AccentText().Bold(true).Render(tabLabels[i]))
		} else {
			tabs = append(tabs, a.theme.Muted().Render(tabLabels[i]))
		}
	}

	session := a.theme.Muted().Render("signed out")
	if a.svcs.Session.Authenticated() {
		session = a.theme.SuccessText().Render(domain.ShortAddress(a.svcs.Session.AccountAddress()))
	}

	return title + "  " + strings.Join(tabs, " ") + "  " + session
}

func (a *App) renderStatusLine() string {
	if a.filtering {
		return a.filterInput.View()
	}
	if toast := a.toast.View(); toast != "" {
		return toast
	}
	return a.theme.Muted().Render("?: help · tab: switch · q: quit")
}

func (a *App) renderHelp() string {
	rows := [][2]string{
		{"j/k", "move"},
		{"tab", "switch feed/accounts"},
		{"enter", "open profile"},
		{"l", "like/unlike"},
		{"p", "repost"},
		{"f", "follow/unfollow"},
		{"o", "open media in browser"},
		{"/", "filter loaded items"},
		{"r", "retry fetch"},
		{"s/S", "sign in/out"},
		{"t", "cycle theme"},
		{"q", "quit"},
	}
	var lines []string
	lines = append(lines, a.theme.Title().Render("Keys"), "")
	for _, row := range rows {
		lines = append(lines, a.theme.AccentText().Render(row[0])+"  "+a.theme.Subtitle().Render(row[1]))
	}
	return a.theme.Modal().Render(strings.Join(lines, "\n"))
}

// centered places a box in the middle of the screen
func centered(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// exhaustEmpty settles a loader as a complete empty list
func exhaustEmpty[T any](l *feed.Loader[T]) {
	l.Unblock()
	if gen, _, ok := l.Begin(); ok {
		l.Complete(gen, feed.Page[T]{})
	}
}

// Page conversions between the repository types and the loader

func toFeedPage(p domain.PostPage) feed.Page[domain.Post] {
	return feed.Page[domain.Post]{Items: p.Items, NextCursor: p.NextCursor}
}

func bulkPostsPage(posts []domain.Post) feed.Page[domain.Post] {
	return feed.Page[domain.Post]{Items: posts}
}

func toAccountPage(p domain.AccountPage) feed.Page[domain.Account] {
	return feed.Page[domain.Account]{Items: p.Items, NextCursor: p.NextCursor}
}

func bulkAccountsPage(accounts []domain.Account) feed.Page[domain.Account] {
	return feed.Page[domain.Account]{Items: accounts}
}
