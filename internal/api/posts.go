package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/auth"
	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/internal/service"
	"github.com/bantam-social/bantam/pkg/logging"
	"github.com/bantam-social/bantam/pkg/telemetry"
)

// PostHandler serves post CRUD, search, and like endpoints
type PostHandler struct {
	posts    *service.PostService
	likes    *service.LikeService
	comments *service.CommentService
	logger   *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts *service.PostService, likes *service.LikeService, comments *service.CommentService) *PostHandler {
	return &PostHandler{
		posts:    posts,
		likes:    likes,
		comments: comments,
		logger:   logging.WithComponent("api-posts"),
	}
}

type postCreateRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.create")
	defer span.End()

	actor := auth.Principal(c)

	var req postCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.posts.Create(ctx, actor, req.Title, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, renderPost(post, 0, 0))
}

// Get handles GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.renderWithCounts(c, post)
}

type postUpdateRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// Update handles PATCH /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.update")
	defer span.End()

	actor := auth.Principal(c)
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	span.SetAttributes(telemetry.PostAttr(postID))

	var req postUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.posts.Update(ctx, actor, postID, req.Title, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	h.renderWithCounts(c, post)
}

// Delete handles DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.delete")
	defer span.End()

	actor := auth.Principal(c)
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	span.SetAttributes(telemetry.PostAttr(postID))

	if err := h.posts.Delete(ctx, actor, postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// ListByAuthor handles GET /users/:id/posts
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	authorID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	limit, offset := pagination(c, 20, 100)

	posts, err := h.posts.ListByAuthor(c.Request.Context(), authorID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	h.renderList(c, posts)
}

// Search handles GET /posts/search?q=
func (h *PostHandler) Search(c *gin.Context) {
	limit, offset := pagination(c, 20, 100)

	posts, err := h.posts.Search(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	h.renderList(c, posts)
}

// Like handles POST /posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.like")
	defer span.End()

	actor := auth.Principal(c)
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	span.SetAttributes(telemetry.PostAttr(postID))

	count, err := h.likes.Like(ctx, actor, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"is_liked":   true,
		"like_count": count,
	})
}

// Unlike handles POST /posts/:id/unlike
func (h *PostHandler) Unlike(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.unlike")
	defer span.End()

	actor := auth.Principal(c)
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	span.SetAttributes(telemetry.PostAttr(postID))

	count, err := h.likes.Unlike(ctx, actor, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_liked":   false,
		"like_count": count,
	})
}

// Likers handles GET /posts/:id/likes
func (h *PostHandler) Likers(c *gin.Context) {
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	limit, offset := pagination(c, 50, 200)

	users, err := h.likes.ListUsers(c.Request.Context(), postID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, renderUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"likes": out})
}

// ToggleLike handles POST /posts/:id/toggle-like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.toggle_like")
	defer span.End()

	actor := auth.Principal(c)
	postID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	span.SetAttributes(telemetry.PostAttr(postID))

	liked, count, err := h.likes.Toggle(ctx, actor, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_liked":   liked,
		"like_count": count,
	})
}

func (h *PostHandler) renderWithCounts(c *gin.Context, post *models.Post) {
	likeCount, err := h.likes.Count(c.Request.Context(), post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	commentCount, err := h.comments.CountByPost(c.Request.Context(), post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderPost(post, likeCount, commentCount))
}

func (h *PostHandler) renderList(c *gin.Context, posts []*models.Post) {
	out := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		likeCount, err := h.likes.Count(c.Request.Context(), post.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		commentCount, err := h.comments.CountByPost(c.Request.Context(), post.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, renderPost(post, likeCount, commentCount))
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}
