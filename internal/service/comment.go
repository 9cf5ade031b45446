package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// CommentService implements comment lifecycle operations
type CommentService struct {
	comments CommentStore
	posts    PostStore
	notifier *Notifier
	logger   *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(comments CommentStore, posts PostStore, notifier *Notifier) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		notifier: notifier,
		logger:   logging.WithComponent("comment-service"),
	}
}

// Create creates a comment on a post, optionally as a reply to another
// comment on the same post. Postcondition: the post owner receives a
// comment notification unless actor owns the post.
func (s *CommentService) Create(ctx context.Context, actor *models.User, postID int64, parentID *int64, body string) (*models.Comment, error) {
	if !Can(actor, ActionCreate, (*models.Comment)(nil)) {
		return nil, ErrForbidden
	}
	if err := validateCommentBody(body); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  actor.ID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrNotFound
		}
		if parent.PostID != postID {
			return nil, NewValidationError("parent_id", "parent comment belongs to a different post")
		}
		comment.ParentID = sql.NullInt64{Int64: *parentID, Valid: true}
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if actor.ID != post.AuthorID {
		if err := s.notifier.Comment(ctx, actor.ID, post.AuthorID, postID); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("post_id", postID),
		zap.Int64("author_id", actor.ID))

	return comment, nil
}

// Get retrieves a comment by ID
func (s *CommentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// Update modifies a comment's body. Only the author or a superuser may
// edit.
func (s *CommentService) Update(ctx context.Context, actor *models.User, id int64, body string) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Can(actor, ActionUpdate, comment) {
		return nil, ErrForbidden
	}
	if err := validateCommentBody(body); err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and its reply subtree. The author, the post
// owner, or a superuser may delete.
func (s *CommentService) Delete(ctx context.Context, actor *models.User, id int64) error {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	post, err := s.posts.GetByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if !Can(actor, ActionDelete, CommentOnPost{Comment: comment, Post: post}) {
		return ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug("comment deleted",
		zap.Int64("comment_id", id),
		zap.Int64("actor_id", actor.ID))
	return nil
}

// CountByPost counts comments on a post
func (s *CommentService) CountByPost(ctx context.Context, postID int64) (int64, error) {
	return s.comments.CountByPost(ctx, postID)
}

// ListByPost retrieves a post's comments, oldest first
func (s *CommentService) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return s.comments.ListByPost(ctx, postID, limit, offset)
}
