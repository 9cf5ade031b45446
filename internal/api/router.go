package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/auth"
	"github.com/bantam-social/bantam/internal/cache"
	"github.com/bantam-social/bantam/internal/db"
	"github.com/bantam-social/bantam/internal/service"
	"github.com/bantam-social/bantam/pkg/config"
	"github.com/bantam-social/bantam/pkg/logging"
)

// Router sets up API routes
type Router struct {
	accounts      *AccountHandler
	follows       *FollowHandler
	posts         *PostHandler
	comments      *CommentHandler
	notifications *NotificationHandler
	feed          *FeedHandler
	middleware    *auth.Middleware
	db            *db.DB
	cache         *cache.Cache
	logger        *zap.Logger
}

// NewRouter wires repositories, services, and handlers into a router
func NewRouter(database *db.DB, redisCache *cache.Cache, issuer *auth.TokenIssuer, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)
	users := db.NewUserRepository(repo)
	posts := db.NewPostRepository(repo)
	comments := db.NewCommentRepository(repo)
	follows := db.NewFollowRepository(repo)
	likes := db.NewLikeRepository(repo)
	notifications := db.NewNotificationRepository(repo)

	notifier := service.NewNotifier(notifications)

	accountService := service.NewAccountService(users, follows)
	followService := service.NewFollowService(follows, users, notifier)
	postService := service.NewPostService(posts)
	likeService := service.NewLikeService(likes, posts, notifier)
	commentService := service.NewCommentService(comments, posts, notifier)
	notificationService := service.NewNotificationService(notifications)
	feedService := service.NewFeedService(posts, follows, &cfg.Feed)

	middleware := auth.NewMiddleware(issuer, users, redisCache)

	return &Router{
		accounts:      NewAccountHandler(accountService, issuer, middleware),
		follows:       NewFollowHandler(followService),
		posts:         NewPostHandler(postService, likeService, commentService),
		comments:      NewCommentHandler(commentService),
		notifications: NewNotificationHandler(notificationService),
		feed:          NewFeedHandler(feedService, likeService, commentService, &cfg.Feed),
		middleware:    middleware,
		db:            database,
		cache:         redisCache,
		logger:        logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	v1 := engine.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", r.accounts.Register)
		authRoutes.POST("/login", r.accounts.Login)
		authRoutes.POST("/logout", r.middleware.Require(), r.accounts.Logout)
		authRoutes.GET("/me", r.middleware.Require(), r.accounts.Me)
		authRoutes.PATCH("/me", r.middleware.Require(), r.accounts.UpdateMe)
	}

	userRoutes := v1.Group("/users")
	{
		userRoutes.GET("/:id", r.accounts.GetProfile)
		userRoutes.GET("/:id/followers", r.follows.Followers)
		userRoutes.GET("/:id/following", r.follows.Following)
		userRoutes.GET("/:id/posts", r.posts.ListByAuthor)

		userRoutes.POST("/:id/follow", r.middleware.Require(), r.follows.Follow)
		userRoutes.POST("/:id/unfollow", r.middleware.Require(), r.follows.Unfollow)
		userRoutes.POST("/:id/toggle-follow", r.middleware.Require(), r.follows.Toggle)
		userRoutes.GET("/:id/follow-status", r.middleware.Require(), r.follows.Status)
	}

	postRoutes := v1.Group("/posts")
	{
		postRoutes.GET("/search", r.posts.Search)
		postRoutes.GET("/:id", r.posts.Get)
		postRoutes.GET("/:id/comments", r.comments.ListByPost)
		postRoutes.GET("/:id/likes", r.posts.Likers)

		postRoutes.POST("", r.middleware.Require(), r.posts.Create)
		postRoutes.PATCH("/:id", r.middleware.Require(), r.posts.Update)
		postRoutes.DELETE("/:id", r.middleware.Require(), r.posts.Delete)
		postRoutes.POST("/:id/like", r.middleware.Require(), r.posts.Like)
		postRoutes.POST("/:id/unlike", r.middleware.Require(), r.posts.Unlike)
		postRoutes.POST("/:id/toggle-like", r.middleware.Require(), r.posts.ToggleLike)
		postRoutes.POST("/:id/comments", r.middleware.Require(), r.comments.Create)
	}

	commentRoutes := v1.Group("/comments")
	{
		commentRoutes.GET("/:id", r.comments.Get)
		commentRoutes.PATCH("/:id", r.middleware.Require(), r.comments.Update)
		commentRoutes.DELETE("/:id", r.middleware.Require(), r.comments.Delete)
	}

	v1.GET("/feed", r.middleware.Require(), r.feed.Get)

	notificationRoutes := v1.Group("/notifications", r.middleware.Require())
	{
		notificationRoutes.GET("", r.notifications.List)
		notificationRoutes.GET("/unread", r.notifications.Unread)
		notificationRoutes.GET("/stats", r.notifications.Stats)
		notificationRoutes.POST("/:id/read", r.notifications.MarkRead)
		notificationRoutes.POST("/:id/unread", r.notifications.MarkUnread)
		notificationRoutes.POST("/read-all", r.notifications.MarkAllRead)
		notificationRoutes.DELETE("/read", r.notifications.DeleteRead)
	}
}

// healthHandler reports database and cache reachability
func (r *Router) healthHandler(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "OK"
	if err := r.db.Health(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = err.Error()
	}

	cacheStatus := "disabled"
	if r.cache != nil {
		cacheStatus = "OK"
		if err := r.cache.Health(c.Request.Context()); err != nil {
			cacheStatus = err.Error()
		}
	}

	c.JSON(status, gin.H{
		"status":   "OK",
		"service":  "bantam-api",
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
