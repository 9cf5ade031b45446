package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// NotificationService implements the notification read-state machine
// and derived statistics.
type NotificationService struct {
	notifs NotificationStore
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifs NotificationStore) *NotificationService {
	return &NotificationService{
		notifs: notifs,
		logger: logging.WithComponent("notification-service"),
	}
}

// Stats carries derived per-type counts for one recipient. Every read
// recomputes from the notification table; there are no maintained
// counters.
type Stats struct {
	Total          int64            `json:"total_notifications"`
	Unread         int64            `json:"unread_notifications"`
	ByType         map[string]int64 `json:"notifications_by_type"`
	ReadPercentage float64          `json:"read_percentage"`
}

// List retrieves the recipient's notifications, newest first. read
// filters by read state when non-nil; typeName filters by type when
// non-empty.
func (s *NotificationService) List(ctx context.Context, recipient *models.User, read *bool, typeName string, limit, offset int) ([]*models.Notification, error) {
	var typeID int16
	if typeName != "" {
		typeID = models.NotifyTypeID(typeName)
		if typeID == 0 {
			return nil, NewValidationError("type", "unknown notification type")
		}
	}
	return s.notifs.List(ctx, recipient.ID, read, typeID, limit, offset)
}

// Unread returns the unread count and the ten most recent unread
// notifications.
func (s *NotificationService) Unread(ctx context.Context, recipient *models.User) (int64, []*models.Notification, error) {
	count, err := s.notifs.CountUnread(ctx, recipient.ID)
	if err != nil {
		return 0, nil, err
	}
	unread := false
	recent, err := s.notifs.List(ctx, recipient.ID, &unread, 0, 10, 0)
	if err != nil {
		return 0, nil, err
	}
	return count, recent, nil
}

// MarkRead transitions a notification to the read state
func (s *NotificationService) MarkRead(ctx context.Context, recipient *models.User, id int64) (*models.Notification, error) {
	return s.setRead(ctx, recipient, id, true)
}

// MarkUnread transitions a notification back to the unread state. This
// is the only way back: nothing transitions read to unread implicitly.
func (s *NotificationService) MarkUnread(ctx context.Context, recipient *models.User, id int64) (*models.Notification, error) {
	return s.setRead(ctx, recipient, id, false)
}

func (s *NotificationService) setRead(ctx context.Context, recipient *models.User, id int64, read bool) (*models.Notification, error) {
	notif, err := s.notifs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A notification addressed to someone else is indistinguishable
	// from a missing one.
	if notif == nil || notif.RecipientID != recipient.ID {
		return nil, ErrNotFound
	}

	if notif.Read == read {
		return notif, nil
	}
	notif.Read = read
	if err := s.notifs.Update(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

// MarkAllRead marks the recipient's unread notifications read. When
// ids is non-empty only those notifications are touched. Returns the
// number updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipient *models.User, ids []int64) (int64, error) {
	updated, err := s.notifs.MarkAllRead(ctx, recipient.ID, ids)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("notifications marked read",
		zap.Int64("recipient_id", recipient.ID),
		zap.Int64("updated", updated))
	return updated, nil
}

// DeleteRead removes the recipient's read notifications. Unread
// notifications are never deleted this way.
func (s *NotificationService) DeleteRead(ctx context.Context, recipient *models.User) (int64, error) {
	deleted, err := s.notifs.DeleteRead(ctx, recipient.ID)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("read notifications deleted",
		zap.Int64("recipient_id", recipient.ID),
		zap.Int64("deleted", deleted))
	return deleted, nil
}

// GetStats derives notification statistics for the recipient by
// rescanning the notification set.
func (s *NotificationService) GetStats(ctx context.Context, recipient *models.User) (*Stats, error) {
	total, err := s.notifs.CountByRecipient(ctx, recipient.ID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifs.CountUnread(ctx, recipient.ID)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int64)
	for _, typeID := range models.NotifyTypeIDs() {
		count, err := s.notifs.CountByType(ctx, recipient.ID, typeID)
		if err != nil {
			return nil, err
		}
		byType[models.NotifyTypeName(typeID)] = count
	}

	stats := &Stats{
		Total:  total,
		Unread: unread,
		ByType: byType,
	}
	if total > 0 {
		stats.ReadPercentage = float64(total-unread) / float64(total) * 100
	}
	return stats, nil
}
