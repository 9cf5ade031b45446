package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/auth"
	"github.com/bantam-social/bantam/internal/service"
	"github.com/bantam-social/bantam/pkg/logging"
	"github.com/bantam-social/bantam/pkg/telemetry"
)

// FollowHandler serves follow-graph endpoints
type FollowHandler struct {
	follows *service.FollowService
	logger  *zap.Logger
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{
		follows: follows,
		logger:  logging.WithComponent("api-follows"),
	}
}

// Follow handles POST /users/:id/follow
func (h *FollowHandler) Follow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "follows.follow")
	defer span.End()

	actor := auth.Principal(c)
	targetID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	span.SetAttributes(telemetry.UserAttr(targetID))

	counts, err := h.follows.Follow(ctx, actor, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_following":    true,
		"follower_count":  counts.FollowerCount,
		"following_count": counts.FollowingCount,
	})
}

// Unfollow handles POST /users/:id/unfollow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "follows.unfollow")
	defer span.End()

	actor := auth.Principal(c)
	targetID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	span.SetAttributes(telemetry.UserAttr(targetID))

	counts, err := h.follows.Unfollow(ctx, actor, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_following":    false,
		"follower_count":  counts.FollowerCount,
		"following_count": counts.FollowingCount,
	})
}

// Toggle handles POST /users/:id/toggle-follow
func (h *FollowHandler) Toggle(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "follows.toggle")
	defer span.End()

	actor := auth.Principal(c)
	targetID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	span.SetAttributes(telemetry.UserAttr(targetID))

	following, counts, err := h.follows.Toggle(ctx, actor, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_following":    following,
		"follower_count":  counts.FollowerCount,
		"following_count": counts.FollowingCount,
	})
}

// Followers handles GET /users/:id/followers
func (h *FollowHandler) Followers(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	limit, offset := pagination(c, 50, 200)

	users, err := h.follows.ListFollowers(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, renderUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"followers": out})
}

// Following handles GET /users/:id/following
func (h *FollowHandler) Following(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	limit, offset := pagination(c, 50, 200)

	users, err := h.follows.ListFollowing(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, renderUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"following": out})
}

// Status handles GET /users/:id/follow-status
func (h *FollowHandler) Status(c *gin.Context) {
	actor := auth.Principal(c)
	targetID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	isFollowing, isFollowedBy, err := h.follows.Status(c.Request.Context(), actor.ID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_following":   isFollowing,
		"is_followed_by": isFollowedBy,
	})
}
