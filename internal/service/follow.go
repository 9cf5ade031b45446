package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// FollowService implements the follow-graph operations
type FollowService struct {
	follows  FollowStore
	users    UserStore
	notifier *Notifier
	logger   *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(follows FollowStore, users UserStore, notifier *Notifier) *FollowService {
	return &FollowService{
		follows:  follows,
		users:    users,
		notifier: notifier,
		logger:   logging.WithComponent("follow-service"),
	}
}

// FollowCounts carries derived edge counts for both sides of an edge
type FollowCounts struct {
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// Follow inserts a directed edge from actor to target. Postcondition:
// the target receives a follow notification.
func (s *FollowService) Follow(ctx context.Context, actor *models.User, targetID int64) (*FollowCounts, error) {
	if actor.ID == targetID {
		return nil, ErrSelfFollow
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}

	inserted, err := s.follows.Insert(ctx, actor.ID, targetID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, ErrAlreadyFollowing
	}

	if err := s.notifier.Follow(ctx, actor.ID, targetID); err != nil {
		return nil, err
	}

	s.logger.Debug("follow edge created",
		zap.Int64("follower_id", actor.ID),
		zap.Int64("following_id", targetID))

	return s.counts(ctx, actor.ID, targetID)
}

// Unfollow removes the directed edge from actor to target
func (s *FollowService) Unfollow(ctx context.Context, actor *models.User, targetID int64) (*FollowCounts, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}

	deleted, err := s.follows.Delete(ctx, actor.ID, targetID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrNotFollowing
	}

	return s.counts(ctx, actor.ID, targetID)
}

// Toggle follows or unfollows depending on current state and reports
// the resulting state.
func (s *FollowService) Toggle(ctx context.Context, actor *models.User, targetID int64) (bool, *FollowCounts, error) {
	if actor.ID == targetID {
		return false, nil, ErrSelfFollow
	}

	following, err := s.follows.Exists(ctx, actor.ID, targetID)
	if err != nil {
		return false, nil, err
	}

	if following {
		counts, err := s.Unfollow(ctx, actor, targetID)
		return false, counts, err
	}
	counts, err := s.Follow(ctx, actor, targetID)
	return true, counts, err
}

// IsFollowing reports whether follower follows target
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, targetID)
}

// Status reports the relationship in both directions between actor and
// target.
func (s *FollowService) Status(ctx context.Context, actorID, targetID int64) (isFollowing, isFollowedBy bool, err error) {
	isFollowing, err = s.follows.Exists(ctx, actorID, targetID)
	if err != nil {
		return false, false, err
	}
	isFollowedBy, err = s.follows.Exists(ctx, targetID, actorID)
	if err != nil {
		return false, false, err
	}
	return isFollowing, isFollowedBy, nil
}

// ListFollowers retrieves the users following userID
func (s *FollowService) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]*models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.Followers(ctx, userID, limit, offset)
}

// ListFollowing retrieves the users userID follows
func (s *FollowService) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]*models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.Following(ctx, userID, limit, offset)
}

// Counts derives follower/following counts for a user. Counts are
// never stored; every read recomputes from the edge table.
func (s *FollowService) Counts(ctx context.Context, userID int64) (*FollowCounts, error) {
	followers, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FollowCounts{FollowerCount: followers, FollowingCount: following}, nil
}

// counts reports the actor's following count and the target's follower
// count, the two numbers a follow/unfollow mutation changes.
func (s *FollowService) counts(ctx context.Context, actorID, targetID int64) (*FollowCounts, error) {
	followers, err := s.follows.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return &FollowCounts{FollowerCount: followers, FollowingCount: following}, nil
}

func (s *FollowService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return nil
}
