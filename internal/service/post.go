package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// Content length bounds for posts and comments
const (
	MinTitleLen   = 5
	MaxTitleLen   = 200
	MinPostLen    = 10
	MinCommentLen = 2
	MaxCommentLen = 1000
)

// PostService implements post lifecycle operations
type PostService struct {
	posts  PostStore
	logger *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(posts PostStore) *PostService {
	return &PostService{
		posts:  posts,
		logger: logging.WithComponent("post-service"),
	}
}

// Create creates a post owned by actor
func (s *PostService) Create(ctx context.Context, actor *models.User, title, body string) (*models.Post, error) {
	if !Can(actor, ActionCreate, (*models.Post)(nil)) {
		return nil, ErrForbidden
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validatePostBody(body); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:  actor.ID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Debug("post created",
		zap.Int64("post_id", post.ID),
		zap.Int64("author_id", actor.ID))

	return post, nil
}

// Get retrieves a post by ID
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// Update modifies a post's title and/or body. Only the owner or a
// superuser may update; authorship never changes.
func (s *PostService) Update(ctx context.Context, actor *models.User, id int64, title, body *string) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Can(actor, ActionUpdate, post) {
		return nil, ErrForbidden
	}

	if title != nil {
		if err := validateTitle(*title); err != nil {
			return nil, err
		}
		post.Title = *title
	}
	if body != nil {
		if err := validatePostBody(*body); err != nil {
			return nil, err
		}
		post.Body = *body
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Comments and likes cascade with it.
func (s *PostService) Delete(ctx context.Context, actor *models.User, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !Can(actor, ActionDelete, post) {
		return ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug("post deleted",
		zap.Int64("post_id", id),
		zap.Int64("actor_id", actor.ID))
	return nil
}

// ListByAuthor retrieves an author's posts, newest first
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID, limit, offset)
}

// Search retrieves posts matching a case-insensitive substring over
// title, body, or author username, newest first.
func (s *PostService) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, NewValidationError("q", "search query must not be empty")
	}
	return s.posts.Search(ctx, query, limit, offset)
}

func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) < MinTitleLen {
		return NewValidationError("title", "must be at least 5 characters")
	}
	if len(title) > MaxTitleLen {
		return NewValidationError("title", "must be at most 200 characters")
	}
	return nil
}

func validatePostBody(body string) error {
	if len(strings.TrimSpace(body)) < MinPostLen {
		return NewValidationError("body", "must be at least 10 characters")
	}
	return nil
}

func validateCommentBody(body string) error {
	if len(strings.TrimSpace(body)) < MinCommentLen {
		return NewValidationError("body", "must be at least 2 characters")
	}
	if len(body) > MaxCommentLen {
		return NewValidationError("body", "must be at most 1000 characters")
	}
	return nil
}
