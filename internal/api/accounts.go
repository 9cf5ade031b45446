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

// AccountHandler serves registration, login, and profile endpoints
type AccountHandler struct {
	accounts *service.AccountService
	issuer   *auth.TokenIssuer
	mw       *auth.Middleware
	logger   *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *service.AccountService, issuer *auth.TokenIssuer, mw *auth.Middleware) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		issuer:   issuer,
		mw:       mw,
		logger:   logging.WithComponent("api-accounts"),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.register")
	defer span.End()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": renderUser(user)})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.login")
	defer span.End()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, _, err := h.issuer.Issue(user.ID, user.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("login", zap.Int64("user_id", user.ID))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  renderUser(user),
	})
}

// Logout handles POST /auth/logout. The presented token's JTI goes on
// the denylist for the rest of its lifetime.
func (h *AccountHandler) Logout(c *gin.Context) {
	claims := auth.TokenClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.mw.Revoke(claims); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /me: the caller's own profile
func (h *AccountHandler) Me(c *gin.Context) {
	actor := auth.Principal(c)

	profile, err := h.accounts.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := renderProfile(profile)
	out["email"] = profile.User.Email
	c.JSON(http.StatusOK, out)
}

type profileUpdateRequest struct {
	Bio       *string `json:"bio"`
	Website   *string `json:"website"`
	Location  *string `json:"location"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateMe handles PATCH /me
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	actor := auth.Principal(c)

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), actor, service.ProfileUpdate{
		Bio:       req.Bio,
		Website:   req.Website,
		Location:  req.Location,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": renderUser(user)})
}

// GetProfile handles GET /users/:id
func (h *AccountHandler) GetProfile(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := h.accounts.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderProfile(profile))
}
