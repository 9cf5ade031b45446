package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// Notifier writes derived notifications. Each mutating operation that
// owes a notification calls it explicitly as a documented
// postcondition; there is no hidden dispatch on persistence events.
type Notifier struct {
	store  NotificationStore
	logger *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(store NotificationStore) *Notifier {
	return &Notifier{
		store:  store,
		logger: logging.WithComponent("notifier"),
	}
}

// Write creates a notification row. targetType/targetID form the
// tagged target reference; pass models.TargetNone and 0 for none.
func (n *Notifier) Write(ctx context.Context, typeID int16, recipientID, actorID int64, targetType int16, targetID int64, payload string) error {
	notif := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        typeID,
		TargetType:  targetType,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}
	if targetType != models.TargetNone {
		notif.TargetID = sql.NullInt64{Int64: targetID, Valid: true}
	}
	if payload != "" {
		notif.Payload = sql.NullString{String: payload, Valid: true}
	}

	n.logger.Debug("writing notification",
		zap.String("type", models.NotifyTypeName(typeID)),
		zap.Int64("recipient_id", recipientID),
		zap.Int64("actor_id", actorID),
		zap.Int64("target_id", targetID))

	return n.store.Create(ctx, notif)
}

// Follow records that actor started following recipient
func (n *Notifier) Follow(ctx context.Context, actorID, recipientID int64) error {
	return n.Write(ctx, models.NotifyTypeFollow, recipientID, actorID, models.TargetNone, 0, "started following you")
}

// Like records that actor liked recipient's post
func (n *Notifier) Like(ctx context.Context, actorID, recipientID, postID int64) error {
	return n.Write(ctx, models.NotifyTypeLike, recipientID, actorID, models.TargetPost, postID, "liked your post")
}

// Comment records that actor commented on recipient's post
func (n *Notifier) Comment(ctx context.Context, actorID, recipientID, postID int64) error {
	return n.Write(ctx, models.NotifyTypeComment, recipientID, actorID, models.TargetPost, postID, "commented on your post")
}
