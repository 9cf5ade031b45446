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

// CommentHandler serves threaded comment endpoints
type CommentHandler struct {
	comments *service.CommentService
	logger   *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		logger:   logging.WithComponent("api-comments"),
	}
}

type commentCreateRequest struct {
	Body     string `json:"body" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

// Create handles POST /posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "comments.create")
	defer span.End()

	actor := auth.Principal(c)
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req commentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	span.SetAttributes(telemetry.PostAttr(postID))

	comment, err := h.comments.Create(ctx, actor, postID, req.ParentID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, renderComment(comment))
}

// ListByPost handles GET /posts/:id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	limit, offset := pagination(c, 50, 200)

	comments, err := h.comments.ListByPost(c.Request.Context(), postID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		out = append(out, renderComment(comment))
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// Get handles GET /comments/:id
func (h *CommentHandler) Get(c *gin.Context) {
	commentID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	comment, err := h.comments.Get(c.Request.Context(), commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderComment(comment))
}

type commentUpdateRequest struct {
	Body string `json:"body" binding:"required"`
}

// Update handles PATCH /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "comments.update")
	defer span.End()

	actor := auth.Principal(c)
	commentID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var req commentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	span.SetAttributes(telemetry.CommentAttr(commentID))

	comment, err := h.comments.Update(ctx, actor, commentID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderComment(comment))
}

// Delete handles DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "comments.delete")
	defer span.End()

	actor := auth.Principal(c)
	commentID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	span.SetAttributes(telemetry.CommentAttr(commentID))

	if err := h.comments.Delete(ctx, actor, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
