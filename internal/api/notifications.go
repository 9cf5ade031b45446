package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/auth"
	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/internal/service"
	"github.com/bantam-social/bantam/pkg/logging"
	"github.com/bantam-social/bantam/pkg/telemetry"
)

// NotificationHandler serves the recipient-scoped notification endpoints
type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logging.WithComponent("api-notifications"),
	}
}

// List handles GET /notifications with optional read and type filters
func (h *NotificationHandler) List(c *gin.Context) {
	actor := auth.Principal(c)
	limit, offset := pagination(c, 50, 200)

	var read *bool
	if raw := c.Query("read"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid read filter"})
			return
		}
		read = &value
	}

	notifications, err := h.notifications.List(c.Request.Context(), actor, read, c.Query("type"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": renderNotifications(notifications)})
}

// Unread handles GET /notifications/unread
func (h *NotificationHandler) Unread(c *gin.Context) {
	actor := auth.Principal(c)

	count, recent, err := h.notifications.Unread(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unread_count": count,
		"recent":       renderNotifications(recent),
	})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "notifications.mark_read")
	defer span.End()

	actor := auth.Principal(c)
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	notification, err := h.notifications.MarkRead(ctx, actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderNotification(notification))
}

// MarkUnread handles POST /notifications/:id/unread
func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "notifications.mark_unread")
	defer span.End()

	actor := auth.Principal(c)
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	notification, err := h.notifications.MarkUnread(ctx, actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderNotification(notification))
}

type markAllRequest struct {
	IDs []int64 `json:"ids"`
}

// MarkAllRead handles POST /notifications/read-all. An empty or absent
// ids list marks every unread notification for the caller.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "notifications.mark_all_read")
	defer span.End()

	actor := auth.Principal(c)

	var req markAllRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	updated, err := h.notifications.MarkAllRead(ctx, actor, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// DeleteRead handles DELETE /notifications/read
func (h *NotificationHandler) DeleteRead(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "notifications.delete_read")
	defer span.End()

	actor := auth.Principal(c)

	deleted, err := h.notifications.DeleteRead(ctx, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Stats handles GET /notifications/stats
func (h *NotificationHandler) Stats(c *gin.Context) {
	actor := auth.Principal(c)

	stats, err := h.notifications.GetStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":           stats.Total,
		"unread":          stats.Unread,
		"by_type":         stats.ByType,
		"read_percentage": stats.ReadPercentage,
	})
}

func renderNotifications(notifications []*models.Notification) []gin.H {
	out := make([]gin.H, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, renderNotification(notification))
	}
	return out
}
