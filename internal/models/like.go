package models

import (
	"time"
)

// Like represents a (user, post) like pairing. At most one row may
// exist per pair; the unique index enforces this atomically.
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;uniqueIndex:likes_ux1;column:user_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:likes_ux1;index:likes_ix_post;column:post_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
