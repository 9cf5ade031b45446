package models

import (
	"database/sql"
	"time"
)

// Comment represents a comment on a post, optionally a threaded reply
// to another comment on the same post.
type Comment struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64         `gorm:"not null;index:comments_ix_post;column:post_id"`
	AuthorID  int64         `gorm:"not null;column:author_id"`
	ParentID  sql.NullInt64 `gorm:"column:parent_id"`
	Body      string        `gorm:"type:varchar(1000);not null;column:body"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`
	UpdatedAt time.Time     `gorm:"not null;autoUpdateTime;column:updated_at"`

	// Relationships. Parent cascade removes the whole reply subtree.
	Post    *Post     `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Author  *User     `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Parent  *Comment  `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
	Replies []Comment `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
