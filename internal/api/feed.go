package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/auth"
	"github.com/bantam-social/bantam/internal/service"
	"github.com/bantam-social/bantam/pkg/config"
	"github.com/bantam-social/bantam/pkg/logging"
	"github.com/bantam-social/bantam/pkg/telemetry"
)

// FeedHandler serves the follow-graph timeline
type FeedHandler struct {
	feed     *service.FeedService
	likes    *service.LikeService
	comments *service.CommentService
	cfg      *config.FeedConfig
	logger   *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feed *service.FeedService, likes *service.LikeService, comments *service.CommentService, cfg *config.FeedConfig) *FeedHandler {
	return &FeedHandler{
		feed:     feed,
		likes:    likes,
		comments: comments,
		cfg:      cfg,
		logger:   logging.WithComponent("api-feed"),
	}
}

// Get handles GET /feed with optional q search and pagination
func (h *FeedHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "feed.get")
	defer span.End()

	actor := auth.Principal(c)
	limit, offset := pagination(c, h.cfg.PageSize, h.cfg.MaxPageSize)

	posts, err := h.feed.GetFeed(ctx, actor, c.Query("q"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		likeCount, err := h.likes.Count(ctx, post.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		commentCount, err := h.comments.CountByPost(ctx, post.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, renderPost(post, likeCount, commentCount))
	}

	c.JSON(http.StatusOK, gin.H{"posts": out})
}
