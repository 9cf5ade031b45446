package service

import (
	"context"
	"time"

	"github.com/bantam-social/bantam/internal/models"
)

// Store interfaces consumed by the services. The gorm repositories in
// internal/db satisfy them; tests substitute in-memory fakes. Lookup
// methods return (nil, nil) when the entity is absent. Insert and
// Delete on the edge stores report whether a row was actually written:
// the storage-layer uniqueness constraint, not an application
// pre-check, decides duplicates.

// UserStore persists users. Create reports whether the row was
// written; a unique-index collision on username or email comes back as
// false, not as an error.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

// FollowStore persists follow edges
type FollowStore interface {
	Insert(ctx context.Context, followerID, followingID int64, at time.Time) (bool, error)
	Delete(ctx context.Context, followerID, followingID int64) (bool, error)
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	Followers(ctx context.Context, userID int64, limit, offset int) ([]*models.User, error)
	Following(ctx context.Context, userID int64, limit, offset int) ([]*models.User, error)
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
}

// PostStore persists posts
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and its dependent comments and likes.
	Delete(ctx context.Context, id int64) error
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.Post, error)
	// ListByAuthors narrows by search (title, body, or author
	// username, case-insensitive) when non-empty.
	ListByAuthors(ctx context.Context, authorIDs []int64, search string, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
}

// CommentStore persists comments
type CommentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*models.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
}

// LikeStore persists like pairings
type LikeStore interface {
	Insert(ctx context.Context, userID, postID int64, at time.Time) (bool, error)
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
	UsersByPost(ctx context.Context, postID int64, limit, offset int) ([]*models.User, error)
}

// NotificationStore persists notifications
type NotificationStore interface {
	Create(ctx context.Context, notif *models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	Update(ctx context.Context, notif *models.Notification) error
	List(ctx context.Context, recipientID int64, read *bool, typeID int16, limit, offset int) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64, ids []int64) (int64, error)
	DeleteRead(ctx context.Context, recipientID int64) (int64, error)
	CountByRecipient(ctx context.Context, recipientID int64) (int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	CountByType(ctx context.Context, recipientID int64, typeID int16) (int64, error)
}
