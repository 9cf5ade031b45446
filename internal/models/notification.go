package models

import (
	"database/sql"
	"time"
)

// Notification represents an event delivered to a recipient, derived
// synchronously from a follow, like, or comment mutation. Rows are
// never updated except through the read flag, and never deleted except
// through the bulk delete-read action.
type Notification struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	RecipientID int64          `gorm:"not null;index:notifs_ix_recipient;column:recipient_id"`
	ActorID     int64          `gorm:"not null;column:actor_id"`
	Type        int16          `gorm:"type:smallint;not null;column:type_id"`
	TargetType  int16          `gorm:"type:smallint;not null;default:0;column:target_type"`
	TargetID    sql.NullInt64  `gorm:"column:target_id"`
	Payload     sql.NullString `gorm:"type:text;column:payload"`
	Read        bool           `gorm:"not null;default:false;index:notifs_ix_recipient;column:read"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	Recipient *User `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE"`
	Actor     *User `gorm:"foreignKey:ActorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// Notification type constants
const (
	NotifyTypeFollow  int16 = 1
	NotifyTypeLike    int16 = 2
	NotifyTypeComment int16 = 3
	NotifyTypeMention int16 = 4
	NotifyTypeSystem  int16 = 5
)

// Target type constants for the tagged target reference
const (
	TargetNone    int16 = 0
	TargetPost    int16 = 1
	TargetComment int16 = 2
)

// NotifyTypeName returns the wire name for a notification type
func NotifyTypeName(typeID int16) string {
	names := map[int16]string{
		NotifyTypeFollow:  "follow",
		NotifyTypeLike:    "like",
		NotifyTypeComment: "comment",
		NotifyTypeMention: "mention",
		NotifyTypeSystem:  "system",
	}
	if name, ok := names[typeID]; ok {
		return name
	}
	return "unknown"
}

// NotifyTypeID returns the type constant for a wire name, or 0 if unknown
func NotifyTypeID(name string) int16 {
	ids := map[string]int16{
		"follow":  NotifyTypeFollow,
		"like":    NotifyTypeLike,
		"comment": NotifyTypeComment,
		"mention": NotifyTypeMention,
		"system":  NotifyTypeSystem,
	}
	return ids[name]
}

// NotifyTypeIDs lists all known notification type constants
func NotifyTypeIDs() []int16 {
	return []int16{
		NotifyTypeFollow,
		NotifyTypeLike,
		NotifyTypeComment,
		NotifyTypeMention,
		NotifyTypeSystem,
	}
}
