package models

import (
	"database/sql"
	"time"
)

// User represents a registered account
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"type:varchar(32);not null;uniqueIndex:users_ux1;column:username"`
	Email        string    `gorm:"type:varchar(254);not null;uniqueIndex:users_ux2;column:email"`
	PasswordHash string    `gorm:"type:varchar(128);not null;column:password_hash"`
	IsSuperuser  bool      `gorm:"not null;default:false;column:is_superuser"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime;column:updated_at"`

	// Profile fields
	Bio       sql.NullString `gorm:"type:varchar(500);column:bio"`
	Website   sql.NullString `gorm:"type:varchar(200);column:website"`
	Location  sql.NullString `gorm:"type:varchar(100);column:location"`
	AvatarURL string         `gorm:"type:varchar(1024);not null;default:'';column:avatar_url"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
