package models

import (
	"time"
)

// Post represents an authored post
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID  int64     `gorm:"not null;index:posts_ix_author;column:author_id"`
	Title     string    `gorm:"type:varchar(200);not null;column:title"`
	Body      string    `gorm:"type:text;not null;column:body"`
	CreatedAt time.Time `gorm:"not null;index:posts_ix_created,sort:desc;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at"`

	// Relationships
	Author   *User     `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:PostID;references:ID"`
	Likes    []Like    `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}
