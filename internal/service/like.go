package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// LikeService implements the like toggle operations
type LikeService struct {
	likes    LikeStore
	posts    PostStore
	notifier *Notifier
	logger   *zap.Logger
}

// NewLikeService creates a new like service
func NewLikeService(likes LikeStore, posts PostStore, notifier *Notifier) *LikeService {
	return &LikeService{
		likes:    likes,
		posts:    posts,
		notifier: notifier,
		logger:   logging.WithComponent("like-service"),
	}
}

// Like inserts the (user, post) pairing. Postcondition: the post owner
// receives a like notification unless actor owns the post. The
// returned count is recomputed live from the pairing table.
func (s *LikeService) Like(ctx context.Context, actor *models.User, postID int64) (int64, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrNotFound
	}

	inserted, err := s.likes.Insert(ctx, actor.ID, postID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if !inserted {
		return 0, ErrDuplicateLike
	}

	if actor.ID != post.AuthorID {
		if err := s.notifier.Like(ctx, actor.ID, post.AuthorID, postID); err != nil {
			return 0, err
		}
	}

	s.logger.Debug("post liked",
		zap.Int64("post_id", postID),
		zap.Int64("user_id", actor.ID))

	return s.likes.CountByPost(ctx, postID)
}

// Unlike removes the (user, post) pairing. The like notification, once
// sent, is not retracted.
func (s *LikeService) Unlike(ctx context.Context, actor *models.User, postID int64) (int64, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrNotFound
	}

	deleted, err := s.likes.Delete(ctx, actor.ID, postID)
	if err != nil {
		return 0, err
	}
	if !deleted {
		return 0, ErrNotLiked
	}

	return s.likes.CountByPost(ctx, postID)
}

// Toggle likes or unlikes depending on current membership and reports
// the new state with the live count. The membership check is an
// optimization; a concurrent mutation still resolves at the uniqueness
// constraint inside the dispatched branch.
func (s *LikeService) Toggle(ctx context.Context, actor *models.User, postID int64) (bool, int64, error) {
	liked, err := s.likes.Exists(ctx, actor.ID, postID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		count, err := s.Unlike(ctx, actor, postID)
		return false, count, err
	}
	count, err := s.Like(ctx, actor, postID)
	return true, count, err
}

// IsLiked reports whether user has liked post
func (s *LikeService) IsLiked(ctx context.Context, userID, postID int64) (bool, error) {
	return s.likes.Exists(ctx, userID, postID)
}

// Count returns the live like count for a post
func (s *LikeService) Count(ctx context.Context, postID int64) (int64, error) {
	return s.likes.CountByPost(ctx, postID)
}

// ListUsers lists the users who liked a post, most recent like first
func (s *LikeService) ListUsers(ctx context.Context, postID int64, limit, offset int) ([]*models.User, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return s.likes.UsersByPost(ctx, postID, limit, offset)
}
