package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// PostCardOpts configures one post card rendering
type PostCardOpts struct {
	Width          int
	Selected       bool
	VisibleStats   []string // stat names shown in the footer, in order
	VisibleButtons []string // "like" and/or "repost", in order
	Now            time.Time

	// Effective interaction state from the card's controllers
	Liked         bool
	LikePending   bool
	LikeDelta     int
	Reposted      bool
	RepostPending bool
	RepostDelta   int
}

// RenderPostCard renders one post as a bordered card. Bare reposts render
// the referenced original with a repost banner above it.
func RenderPostCard(post domain.Post, theme styles.Theme, opts PostCardOpts) string {
	width := opts.Width
	if width < 24 {
		width = 24
	}
	inner := width - 4 // border and padding

	var lines []string

	display := post.Display()
	if post.Kind == domain.PostKindRepost && post.RepostOf != nil {
		banner := "↻ " + post.Author.DisplayName() + " reposted"
		lines = append(lines, theme.Muted().Render(styles.Truncate(banner, inner)))
	}

	lines = append(lines, renderPostHeader(*display, theme, inner, opts.Now))

	if display.IsDeleted {
		lines = append(lines, theme.Muted().Italic(true).Render("[post deleted]"))
	} else {
		lines = append(lines, wrapContent(display.Content, theme, inner)...)
		for _, attachment := range display.Attachments {
			lines = append(lines, theme.AccentText().Render(styles.Truncate(attachmentLabel(attachment), inner)))
		}
	}

	if display.Kind == domain.PostKindQuote && display.RepostOf != nil {
		lines = append(lines, renderQuoted(*display.RepostOf, theme, inner, opts.Now)...)
	}
	if display.Kind == domain.PostKindComment && display.CommentOn != nil {
		replyTo := "↳ replying to " + display.CommentOn.Author.Handle()
		lines = append(lines, theme.Muted().Render(styles.Truncate(replyTo, inner)))
	}

	if footer := renderPostFooter(*display, theme, opts); footer != "" {
		lines = append(lines, footer)
	}

	return theme.Card(opts.Selected).Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderPostHeader renders "name @handle · 3h ago" with an edited marker
func renderPostHeader(post domain.Post, theme styles.Theme, width int, now time.Time) string {
	name := theme.Title().Render(post.Author.DisplayName())
	handle := theme.AccentText().Render(post.Author.Handle())
	when := theme.Subtitle().Render(domain.RelativeTime(post.Timestamp, now))

	header := name + " " + handle + theme.Muted().Render(" · ") + when
	if post.IsEdited {
		header += theme.Muted().Render(" (edited)")
	}
	if lipgloss.Width(header) > width {
		header = name + " " + when
	}
	return header
}

func wrapContent(content string, theme styles.Theme, width int) []string {
	if content == "" {
		return nil
	}
	wrapped := lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(content)
	return strings.Split(wrapped, "\n")
}

// renderQuoted renders the referenced post of a quote, indented
func renderQuoted(quoted domain.Post, theme styles.Theme, width int, now time.Time) []string {
	prefix := theme.Muted().Render("│ ")
	lines := []string{
		prefix + theme.Subtitle().Render(styles.Truncate(quoted.Author.Handle()+" · "+domain.RelativeTime(quoted.Timestamp, now), width-2)),
	}
	content := quoted.Content
	if quoted.IsDeleted {
		content = "[post deleted]"
	}
	for _, line := range wrapContent(content, theme, width-2) {
		lines = append(lines, prefix+line)
	}
	return lines
}

func attachmentLabel(a domain.MediaAttachment) string {
	var kind string
	switch a.Kind {
	case domain.MediaKindImage:
		kind = "image"
	case domain.MediaKindVideo:
		kind = "video"
	case domain.MediaKindAudio:
		kind = "audio"
	default:
		kind = "link"
	}
	if a.Alt != "" {
		return "[" + kind + ": " + a.Alt + "]"
	}
	return "[" + kind + "] " + a.URL
}

// renderPostFooter renders the configured stat counters and action buttons
func renderPostFooter(post domain.Post, theme styles.Theme, opts PostCardOpts) string {
	var parts []string

	for _, name := range opts.VisibleStats {
		value, ok := post.Stats.Stat(name)
		if !ok {
			continue
		}
		switch name {
		case "upvotes":
			value += opts.LikeDelta
		case "reposts":
			value += opts.RepostDelta
		}
		parts = append(parts, theme.Subtitle().Render(statGlyph(name)+" "+domain.FormatCount(value)))
	}

	for _, name := range opts.VisibleButtons {
		switch name {
		case "like":
			parts = append(parts, likeButton(theme, opts))
		case "repost":
			parts = append(parts, repostButton(theme, opts))
		}
	}

	return strings.Join(parts, "  ")
}

func statGlyph(name string) string {
	switch name {
	case "upvotes":
		return "♥"
	case "comments":
		return "💬"
	case "reposts":
		return "↻"
	case "quotes":
		return "❝"
	case "bookmarks":
		return "🔖"
	case "collects":
		return "◈"
	case "tips":
		return "♦"
	default:
		return "·"
	}
}

func likeButton(theme styles.Theme, opts PostCardOpts) string {
	switch {
	case opts.LikePending:
		return theme.ButtonIdle().Render("♥ …")
	case opts.Liked:
		return theme.ButtonActive().Render("♥ Liked")
	default:
		return theme.ButtonIdle().Render("♡ Like")
	}
}

func repostButton(theme styles.Theme, opts PostCardOpts) string {
	switch {
	case opts.RepostPending:
		return theme.ButtonIdle().Render("↻ …")
	case opts.Reposted:
		return theme.ButtonActive().Render("↻ Reposted")
	default:
		return theme.ButtonIdle().Render("↻ Repost")
	}
}
