package components

import (
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/feed"
	"github.com/lenscope/lenscope/internal/social"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// postControllers bundles the interaction state for one post
type postControllers struct {
	like   *social.Controller
	repost *social.Controller
}

// PostsFeed is the infinite-scroll post list. It owns the page loader,
// one controller pair per post, the selection cursor and an optional
// local filter over the loaded items.
type PostsFeed struct {
	theme styles.Theme

	loader *feed.Loader[domain.Post]
	filter domain.PostFilter
	ctrls  map[string]*postControllers

	selected int
	scroll   int
	width    int
	height   int
	focused  bool

	// Local fuzzy filter over loaded content; empty shows everything
	filterQuery string
	visible     []int // indexes into loader items, nil when unfiltered

	visibleStats   []string
	visibleButtons []string
}

// NewPostsFeed creates the feed widget for an initial filter
func NewPostsFeed(theme styles.Theme, filter domain.PostFilter, stats, buttons []string) *PostsFeed {
	f := &PostsFeed{
		theme:          theme,
		ctrls:          make(map[string]*postControllers),
		visibleStats:   stats,
		visibleButtons: buttons,
	}
	f.loader = newPostLoader(filter)
	f.filter = filter
	if filter.NeedsResolution() {
		f.loader.Block()
	}
	return f
}

func newPostLoader(filter domain.PostFilter) *feed.Loader[domain.Post] {
	if filter.IsBulk() {
		return feed.NewBulkLoader[domain.Post]()
	}
	return feed.NewLoader[domain.Post]()
}

// SetTheme swaps the palette
func (f *PostsFeed) SetTheme(theme styles.Theme) { f.theme = theme }

// SetSize updates the layout bounds
func (f *PostsFeed) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetFocused toggles keyboard focus
func (f *PostsFeed) SetFocused(focused bool) { f.focused = focused }

// Loader exposes the page loader for the update loop
func (f *PostsFeed) Loader() *feed.Loader[domain.Post] { return f.loader }

// Filter returns the active filter
func (f *PostsFeed) Filter() domain.PostFilter { return f.filter }

// SetFilter replaces the filter. A value-equal filter is a no-op; anything
// else discards the loaded list, the controllers and the cursor, and
// reblocks the loader if the new filter needs handle resolution first.
func (f *PostsFeed) SetFilter(filter domain.PostFilter) (changed bool) {
	if f.filter.Equal(filter) {
		return false
	}
	f.filter = filter
	f.loader.Reset()
	f.loader.SetBulk(filter.IsBulk())
	f.ctrls = make(map[string]*postControllers)
	f.selected = 0
	f.scroll = 0
	f.filterQuery = ""
	f.visible = nil
	if filter.NeedsResolution() {
		f.loader.Block()
	} else {
		f.loader.Unblock()
	}
	return true
}

// ApplyResolved installs the handle-resolved filter and unblocks fetching.
// Ignored when the active filter changed while resolution was in flight.
func (f *PostsFeed) ApplyResolved(original, resolved domain.PostFilter) bool {
	if !f.filter.Equal(original) {
		return false
	}
	f.filter = resolved
	f.loader.Unblock()
	return true
}

// controllers returns the controller pair for a post, creating on demand
func (f *PostsFeed) controllers(postID string) *postControllers {
	c, ok := f.ctrls[postID]
	if !ok {
		c = &postControllers{
			like:   social.NewController(social.KindLike),
			repost: social.NewController(social.KindRepost),
		}
		c.like.Bind(postID)
		c.repost.Bind(postID)
		f.ctrls[postID] = c
	}
	return c
}

// Selected returns the post under the cursor
func (f *PostsFeed) Selected() (domain.Post, bool) {
	items := f.visibleItems()
	if f.selected < 0 || f.selected >= len(items) {
		return domain.Post{}, false
	}
	return items[f.selected], true
}

// visibleItems applies the local filter to the loaded items
func (f *PostsFeed) visibleItems() []domain.Post {
	items := f.loader.Items()
	if f.visible == nil {
		return items
	}
	filtered := make([]domain.Post, 0, len(f.visible))
	for _, i := range f.visible {
		filtered = append(filtered, items[i])
	}
	return filtered
}

// SetLocalFilter narrows the loaded list with fuzzy matching.
// It never touches the loader; clearing restores the full list.
func (f *PostsFeed) SetLocalFilter(query string) {
	f.filterQuery = query
	f.selected = 0
	f.scroll = 0
	if query == "" {
		f.visible = nil
		return
	}

	items := f.loader.Items()
	labels := make([]string, len(items))
	for i, post := range items {
		display := post.Display()
		labels[i] = display.Content + " " + display.Author.Username.LocalName + " " + display.Author.Name
	}
	matches := fuzzy.Find(query, labels)
	f.visible = make([]int, len(matches))
	for i, m := range matches {
		f.visible[i] = m.Index
	}
}

// LocalFilter returns the active local filter query
func (f *PostsFeed) LocalFilter() string { return f.filterQuery }

// MoveUp moves the cursor up one post
func (f *PostsFeed) MoveUp() {
	if f.selected > 0 {
		f.selected--
	}
	f.clampScroll()
}

// MoveDown moves the cursor down one post
func (f *PostsFeed) MoveDown() {
	if f.selected < len(f.visibleItems())-1 {
		f.selected++
	}
	f.clampScroll()
}

// MoveTop jumps to the first post
func (f *PostsFeed) MoveTop() {
	f.selected = 0
	f.clampScroll()
}

// MoveBottom jumps to the last loaded post
func (f *PostsFeed) MoveBottom() {
	if n := len(f.visibleItems()); n > 0 {
		f.selected = n - 1
	}
	f.clampScroll()
}

func (f *PostsFeed) clampScroll() {
	if f.selected < f.scroll {
		f.scroll = f.selected
	}
	visible := f.cardsPerScreen()
	if f.selected >= f.scroll+visible {
		f.scroll = f.selected - visible + 1
	}
}

func (f *PostsFeed) cardsPerScreen() int {
	// Rough card height; exact heights vary with content wrapping
	const cardHeight = 6
	n := f.height / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// WantsMore reports whether the scroll position has reached the fetch
// sentinel: near the end of the loaded list, or an empty unloaded list.
func (f *PostsFeed) WantsMore() bool {
	if f.filterQuery != "" {
		return false
	}
	n := f.loader.Len()
	if n == 0 {
		return true
	}
	return f.selected >= n-3
}

// TriggerLike attempts the like toggle on the selected post
func (f *PostsFeed) TriggerLike(authenticated bool) (post domain.Post, target bool, d social.Decision) {
	post, ok := f.Selected()
	if !ok {
		return post, false, social.DecisionIgnore
	}
	return f.TriggerLikePost(post, authenticated)
}

// TriggerLikePost attempts the like toggle on a specific post. Used when
// retrying an action deferred by sign-in, where the cursor may have moved.
func (f *PostsFeed) TriggerLikePost(post domain.Post, authenticated bool) (domain.Post, bool, social.Decision) {
	c := f.controllers(post.ID)
	target, d := c.like.Trigger(post.HasUpvoted, authenticated)
	return post, target, d
}

// TriggerRepost attempts the one-shot repost on the selected post
func (f *PostsFeed) TriggerRepost(authenticated bool) (post domain.Post, d social.Decision) {
	post, ok := f.Selected()
	if !ok {
		return post, social.DecisionIgnore
	}
	return f.TriggerRepostPost(post, authenticated)
}

// TriggerRepostPost attempts the one-shot repost on a specific post
func (f *PostsFeed) TriggerRepostPost(post domain.Post, authenticated bool) (domain.Post, social.Decision) {
	c := f.controllers(post.ID)
	_, d := c.repost.Trigger(post.HasReposted, authenticated)
	return post, d
}

// ResolveMutation applies a mutation outcome to the owning controller
func (f *PostsFeed) ResolveMutation(action domain.ActionKind, postID string, failed bool) {
	c, ok := f.ctrls[postID]
	if !ok {
		return
	}
	var ctrl *social.Controller
	switch action {
	case domain.ActionLike, domain.ActionUnlike:
		ctrl = c.like
	case domain.ActionRepost:
		ctrl = c.repost
	default:
		return
	}
	if failed {
		ctrl.Fail()
	} else {
		ctrl.Resolve()
	}
}

// View renders the visible slice of the feed
func (f *PostsFeed) View() string {
	items := f.visibleItems()

	if len(items) == 0 {
		return f.emptyView()
	}

	now := time.Now()
	var cards []string
	end := min(f.scroll+f.cardsPerScreen(), len(items))
	for i := f.scroll; i < end; i++ {
		post := items[i]
		c := f.controllers(post.ID)
		cards = append(cards, RenderPostCard(post, f.theme, PostCardOpts{
			Width:          f.width,
			Selected:       f.focused && i == f.selected,
			VisibleStats:   f.visibleStats,
			VisibleButtons: f.visibleButtons,
			Now:            now,
			Liked:          c.like.Effective(post.HasUpvoted),
			LikePending:    c.like.Pending(),
			LikeDelta:      c.like.CounterDelta(),
			Reposted:       c.repost.Effective(post.HasReposted),
			RepostPending:  c.repost.Pending(),
			RepostDelta:    c.repost.CounterDelta(),
		}))
	}

	if f.loader.Loading() {
		cards = append(cards, f.theme.Muted().Render("  loading…"))
	} else if f.loader.Err() != nil {
		cards = append(cards, f.theme.ErrorText().Render("  fetch failed: "+f.loader.Err().Error()+" (r to retry)"))
	} else if f.loader.Exhausted() && end == len(items) {
		cards = append(cards, f.theme.Muted().Render("  end of feed"))
	}

	return strings.Join(cards, "\n")
}

func (f *PostsFeed) emptyView() string {
	switch {
	case f.loader.Blocked():
		return f.theme.Muted().Render("  resolving handle…")
	case f.loader.Loading():
		return f.theme.Muted().Render("  loading…")
	case f.loader.Err() != nil:
		return f.theme.ErrorText().Render("  fetch failed: " + f.loader.Err().Error() + " (r to retry)")
	case f.filterQuery != "":
		return f.theme.Muted().Render("  no posts match " + f.filterQuery)
	default:
		return f.theme.Muted().Render("  no posts")
	}
}
