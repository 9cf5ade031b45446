package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/config"
	"github.com/bantam-social/bantam/pkg/logging"
)

// FeedService assembles the read-side feed from the follow graph
type FeedService struct {
	posts   PostStore
	follows FollowStore
	cfg     *config.FeedConfig
	logger  *zap.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(posts PostStore, follows FollowStore, cfg *config.FeedConfig) *FeedService {
	return &FeedService{
		posts:   posts,
		follows: follows,
		cfg:     cfg,
		logger:  logging.WithComponent("feed-service"),
	}
}

// GetFeed returns posts authored by user or by anyone user follows,
// newest first, optionally narrowed by a case-insensitive substring
// over title, body, or author username. Pagination is page-offset
// only.
func (s *FeedService) GetFeed(ctx context.Context, user *models.User, search string, limit, offset int) ([]*models.Post, error) {
	limit, offset = s.Clamp(limit, offset)

	followingIDs, err := s.follows.FollowingIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, user.ID)

	return s.posts.ListByAuthors(ctx, authorIDs, search, limit, offset)
}

// Clamp normalizes limit/offset against the configured page bounds
func (s *FeedService) Clamp(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.cfg.PageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
