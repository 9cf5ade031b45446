package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bantam-social/bantam/internal/models"
)

// FollowRepository provides follow-graph database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// Insert creates a follow edge. Returns false when the edge already
// exists: the insert conflict on the composite key is the authoritative
// duplicate signal, there is no pre-check.
func (r *FollowRepository) Insert(ctx context.Context, followerID, followingID int64, at time.Time) (bool, error) {
	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   at,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a follow edge. Returns false when no edge existed.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether follower follows following
func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Followers retrieves the users following userID, most recent edge first
func (r *FollowRepository) Followers(ctx context.Context, userID int64, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Following retrieves the users userID follows, most recent edge first
func (r *FollowRepository) Following(ctx context.Context, userID int64, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FollowingIDs retrieves the IDs of all users userID follows
func (r *FollowRepository) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountFollowers counts users following userID
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountFollowing counts users userID follows
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

// LikeRepository provides like database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// Insert creates a like pairing. Returns false when the pair already
// exists; the unique index conflict is the authoritative signal.
func (r *LikeRepository) Insert(ctx context.Context, userID, postID int64, at time.Time) (bool, error) {
	like := &models.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: at,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a like pairing. Returns false when no pairing existed.
func (r *LikeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether user has liked post
func (r *LikeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// CountByPost counts likes on a post. Always recomputed from the
// pairing table, never cached.
func (r *LikeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// UsersByPost retrieves the users who liked a post, most recent like first
func (r *LikeRepository) UsersByPost(ctx context.Context, postID int64, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// NotificationRepository provides notification database operations
type NotificationRepository struct {
	*Repository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(repo *Repository) *NotificationRepository {
	return &NotificationRepository{Repository: repo}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	return r.db.WithContext(ctx).Create(notif).Error
}

// GetByID retrieves a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	var notif models.Notification
	if err := r.db.WithContext(ctx).First(&notif, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notif, nil
}

// Update updates a notification
func (r *NotificationRepository) Update(ctx context.Context, notif *models.Notification) error {
	return r.db.WithContext(ctx).Save(notif).Error
}

// List retrieves a recipient's notifications, newest first. read
// filters by read state when non-nil; typeID filters by type when
// non-zero.
func (r *NotificationRepository) List(ctx context.Context, recipientID int64, read *bool, typeID int16, limit, offset int) ([]*models.Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if read != nil {
		q = q.Where("read = ?", *read)
	}
	if typeID != 0 {
		q = q.Where("type_id = ?", typeID)
	}
	var notifs []*models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifs).Error; err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkAllRead marks a recipient's unread notifications read. When ids
// is non-empty only those notifications are touched. Returns the
// number of rows updated.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64, ids []int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	res := q.Update("read", true)
	return res.RowsAffected, res.Error
}

// DeleteRead removes a recipient's read notifications. Returns the
// number of rows deleted.
func (r *NotificationRepository) DeleteRead(ctx context.Context, recipientID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("recipient_id = ? AND read = ?", recipientID, true).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// CountByRecipient counts all notifications addressed to a recipient
func (r *NotificationRepository) CountByRecipient(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&count).Error
	return count, err
}

// CountUnread counts a recipient's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// CountByType counts a recipient's notifications of one type
func (r *NotificationRepository) CountByType(ctx context.Context, recipientID int64, typeID int16) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND type_id = ?", recipientID, typeID).
		Count(&count).Error
	return count, err
}
