package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lenscope/lenscope/internal/domain"
)

// InteractionService executes social mutations. The optimistic flip and
// rollback live in the widget controllers; this layer only dispatches the
// request that matches the target state they chose.
type InteractionService struct {
	repo   domain.InteractionRepository
	logger *slog.Logger
}

// NewInteractionService creates a new interaction service
func NewInteractionService(repo domain.InteractionRepository, logger *slog.Logger) *InteractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractionService{repo: repo, logger: logger}
}

// SetFollow establishes the target follow state for an account
func (s *InteractionService) SetFollow(ctx context.Context, accountAddress string, target bool) error {
	var err error
	if target {
		err = s.repo.Follow(ctx, accountAddress)
	} else {
		err = s.repo.Unfollow(ctx, accountAddress)
	}
	if err != nil {
		s.logger.Warn("follow mutation failed", "account", accountAddress, "target", target, "error", err)
		return err
	}
	s.logger.Info("follow state changed", "account", accountAddress, "following", target)
	return nil
}

// SetLike establishes the target upvote state for a post
func (s *InteractionService) SetLike(ctx context.Context, postID string, target bool) error {
	var err error
	if target {
		err = s.repo.Like(ctx, postID)
	} else {
		err = s.repo.Unlike(ctx, postID)
	}
	if err != nil {
		s.logger.Warn("reaction mutation failed", "post", postID, "target", target, "error", err)
		return err
	}
	s.logger.Info("reaction changed", "post", postID, "liked", target)
	return nil
}

// Repost republishes a post. There is no undo path.
func (s *InteractionService) Repost(ctx context.Context, postID string) error {
	if err := s.repo.Repost(ctx, postID); err != nil {
		s.logger.Warn("repost failed", "post", postID, "error", err)
		return err
	}
	s.logger.Info("reposted", "post", postID)
	return nil
}

// Execute dispatches one named action, for the CLI surface
func (s *InteractionService) Execute(ctx context.Context, action domain.ActionKind, id string) error {
	switch action {
	case domain.ActionFollow:
		return s.SetFollow(ctx, id, true)
	case domain.ActionUnfollow:
		return s.SetFollow(ctx, id, false)
	case domain.ActionLike:
		return s.SetLike(ctx, id, true)
	case domain.ActionUnlike:
		return s.SetLike(ctx, id, false)
	case domain.ActionRepost:
		return s.Repost(ctx, id)
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}
