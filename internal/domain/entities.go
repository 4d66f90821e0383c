package domain

import (
	"fmt"
	"strings"
	"time"
)

// Account represents a Lens profile bound to an EVM address
type Account struct {
	Address    string   // Account address (unique identifier)
	Owner      string   // Owner wallet address
	Username   Username // Handle, may be zero for username-less accounts
	Name       string   // Display name from metadata
	Bio        string   // Profile bio from metadata
	PictureURL string   // Avatar URL
	CoverURL   string   // Cover image URL
	Score      int      // Account quality score
	CreatedAt  time.Time

	// Viewer-relative operations, populated only on authenticated queries
	IsFollowedByMe bool
	IsFollowingMe  bool
}

// Username is a namespaced handle (e.g., lens/alice)
type Username struct {
	LocalName string // Name within the namespace ("alice")
	Namespace string // Namespace contract label ("lens")
}

// String returns the fully-qualified handle, or "" for a zero username
func (u Username) String() string {
	if u.LocalName == "" {
		return ""
	}
	if u.Namespace == "" {
		return u.LocalName
	}
	return u.Namespace + "/" + u.LocalName
}

// DisplayName returns the best human-readable label for the account
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Username.LocalName != "" {
		return "@" + a.Username.LocalName
	}
	return ShortAddress(a.Address)
}

// Handle returns the @-prefixed local name, falling back to a short address
func (a Account) Handle() string {
	if a.Username.LocalName != "" {
		return "@" + a.Username.LocalName
	}
	return ShortAddress(a.Address)
}

// ShortAddress abbreviates an EVM address for display (0x1234…abcd)
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// SameAddress compares two addresses case-insensitively
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

// AccountStats holds aggregate counters for one account
type AccountStats struct {
	Followers int
	Following int
	Posts     int
	Comments  int
	Reposts   int
	Quotes    int
	Reacted   int
	Reactions int
	Collects  int
}

// PostKind distinguishes publication types
type PostKind int

const (
	PostKindRoot PostKind = iota
	PostKindComment
	PostKindQuote
	PostKindRepost
)

// String returns the lowercase kind name
func (k PostKind) String() string {
	switch k {
	case PostKindComment:
		return "comment"
	case PostKindQuote:
		return "quote"
	case PostKindRepost:
		return "repost"
	default:
		return "post"
	}
}

// Post represents a single publication
type Post struct {
	ID        string
	Author    Account
	Content   string
	Timestamp time.Time
	Kind      PostKind
	IsDeleted bool
	IsEdited  bool

	// For reposts and quotes the referenced original, for comments the parent
	RepostOf  *Post
	CommentOn *Post

	Attachments []MediaAttachment
	Tags        []string
	ContentURI  string // canonical metadata URI

	Stats PostStats

	// Viewer-relative operations, populated only on authenticated queries
	HasUpvoted    bool
	HasReposted   bool
	HasBookmarked bool
}

// Display returns the post whose content should be rendered: the referenced
// original for bare reposts, the post itself otherwise
func (p *Post) Display() *Post {
	if p.Kind == PostKindRepost && p.RepostOf != nil {
		return p.RepostOf
	}
	return p
}

// MediaKind distinguishes attachment content types
type MediaKind int

const (
	MediaKindImage MediaKind = iota
	MediaKindVideo
	MediaKindAudio
	MediaKindLink
)

// MediaAttachment is a single piece of post media
type MediaAttachment struct {
	Kind MediaKind
	URL  string
	Alt  string
}

// PostStats holds aggregate counters for one post
type PostStats struct {
	Upvotes   int
	Comments  int
	Reposts   int
	Quotes    int
	Bookmarks int
	Collects  int
	Tips      int
}

// Stat returns a named counter, for configurable stat rows
func (s PostStats) Stat(name string) (int, bool) {
	switch name {
	case "upvotes":
		return s.Upvotes, true
	case "comments":
		return s.Comments, true
	case "reposts":
		return s.Reposts, true
	case "quotes":
		return s.Quotes, true
	case "bookmarks":
		return s.Bookmarks, true
	case "collects":
		return s.Collects, true
	case "tips":
		return s.Tips, true
	default:
		return 0, false
	}
}

// RelativeTime formats a timestamp the way the post header shows it
func RelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "just now"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// FormatCount abbreviates large counters (1.2K, 3.4M)
func FormatCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
