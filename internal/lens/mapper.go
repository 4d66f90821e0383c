package lens

import (
	"strings"

	"github.com/lenscope/lenscope/internal/domain"
)

func mapAccount(dto accountDTO) domain.Account {
	account := domain.Account{
		Address:   dto.Address,
		Owner:     dto.Owner,
		Score:     dto.Score,
		CreatedAt: dto.CreatedAt,
	}
	if dto.Username != nil {
		account.Username = domain.Username{
			LocalName: dto.Username.LocalName,
			Namespace: dto.Username.Namespace,
		}
	}
	if dto.Metadata != nil {
		account.Name = dto.Metadata.Name
		account.Bio = dto.Metadata.Bio
		account.PictureURL = dto.Metadata.Picture
		account.CoverURL = dto.Metadata.CoverPicture
	}
	if dto.Operations != nil {
		account.IsFollowedByMe = dto.Operations.IsFollowedByMe
		account.IsFollowingMe = dto.Operations.IsFollowingMe
	}
	return account
}

func mapAccounts(dtos []accountDTO) []domain.Account {
	accounts := make([]domain.Account, len(dtos))
	for i, dto := range dtos {
		accounts[i] = mapAccount(dto)
	}
	return accounts
}

func mapAccountStats(dto accountStatsDTO) domain.AccountStats {
	return domain.AccountStats{
		Followers: dto.GraphFollowStats.Followers,
		Following: dto.GraphFollowStats.Following,
		Posts:     dto.FeedStats.Posts,
		Comments:  dto.FeedStats.Comments,
		Reposts:   dto.FeedStats.Reposts,
		Quotes:    dto.FeedStats.Quotes,
		Reacted:   dto.FeedStats.Reacted,
		Reactions: dto.FeedStats.Reactions,
		Collects:  dto.FeedStats.Collects,
	}
}

func mapPost(dto postDTO) domain.Post {
	post := domain.Post{
		ID:         dto.ID,
		Author:     mapAccount(dto.Author),
		Timestamp:  dto.Timestamp,
		ContentURI: dto.ContentURI,
		IsDeleted:  dto.IsDeleted,
		IsEdited:   dto.IsEdited,
		Kind:       postKind(dto),
		Stats: domain.PostStats{
			Upvotes:   dto.Stats.Upvotes,
			Comments:  dto.Stats.Comments,
			Reposts:   dto.Stats.Reposts,
			Quotes:    dto.Stats.Quotes,
			Bookmarks: dto.Stats.Bookmarks,
			Collects:  dto.Stats.Collects,
			Tips:      dto.Stats.Tips,
		},
	}
	if dto.Metadata != nil {
		post.Content = dto.Metadata.Content
		post.Tags = dto.Metadata.Tags
		post.Attachments = mapAttachments(dto.Metadata.Attachments)
	}
	if dto.Operations != nil {
		post.HasUpvoted = dto.Operations.HasUpvoted
		post.HasReposted = dto.Operations.HasReposted
		post.HasBookmarked = dto.Operations.HasBookmarked
	}
	if dto.RepostOf != nil {
		referenced := mapPost(*dto.RepostOf)
		post.RepostOf = &referenced
	}
	if dto.CommentOn != nil {
		parent := mapPost(*dto.CommentOn)
		post.CommentOn = &parent
	}
	return post
}

func mapPosts(dtos []postDTO) []domain.Post {
	posts := make([]domain.Post, len(dtos))
	for i, dto := range dtos {
		posts[i] = mapPost(dto)
	}
	return posts
}

// postKind derives the publication type from its references and content.
// A repost carries a reference but no content of its own; a quote has both.
func postKind(dto postDTO) domain.PostKind {
	hasContent := dto.Metadata != nil && dto.Metadata.Content != ""
	switch {
	case dto.RepostOf != nil && !hasContent:
		return domain.PostKindRepost
	case dto.RepostOf != nil:
		return domain.PostKindQuote
	case dto.CommentOn != nil:
		return domain.PostKindComment
	default:
		return domain.PostKindRoot
	}
}

func mapAttachments(dtos []attachmentDTO) []domain.MediaAttachment {
	if len(dtos) == 0 {
		return nil
	}
	attachments := make([]domain.MediaAttachment, len(dtos))
	for i, dto := range dtos {
		attachments[i] = domain.MediaAttachment{
			Kind: mediaKind(dto.Type),
			URL:  dto.Item,
			Alt:  dto.AltTag,
		}
	}
	return attachments
}

func mediaKind(mime string) domain.MediaKind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return domain.MediaKindImage
	case strings.HasPrefix(mime, "video/"):
		return domain.MediaKindVideo
	case strings.HasPrefix(mime, "audio/"):
		return domain.MediaKindAudio
	default:
		return domain.MediaKindLink
	}
}
