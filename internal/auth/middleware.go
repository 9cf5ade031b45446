package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/cache"
	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// Context keys the middleware stores the resolved user and token
// claims under.
const (
	principalKey = "auth.principal"
	claimsKey    = "auth.claims"
)

// UserLoader resolves a user by ID
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// tokenDenylist records revoked token IDs until their expiry.
type tokenDenylist interface {
	Revoke(jti string, ttl time.Duration) error
	IsRevoked(jti string) (bool, error)
}

// Middleware authenticates requests and attaches the resolved
// principal to the gin context. Tokens found on the denylist (issued
// then revoked by logout) are rejected as if expired. The denylist
// check fails closed: when the lookup errors the token is rejected
// rather than admitting a possibly revoked one.
type Middleware struct {
	issuer   *TokenIssuer
	users    UserLoader
	denylist tokenDenylist
	logger   *zap.Logger
}

// NewMiddleware creates an authentication middleware. A nil denylist
// disables revocation checks entirely.
func NewMiddleware(issuer *TokenIssuer, users UserLoader, denylist *cache.Cache) *Middleware {
	m := &Middleware{
		issuer: issuer,
		users:  users,
		logger: logging.WithComponent("auth-middleware"),
	}
	if denylist != nil {
		m.denylist = denylist
	}
	return m
}

// Require rejects unauthenticated requests with 401
func (m *Middleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, ok := m.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Set(principalKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Optional resolves the principal when a valid token is present but
// lets anonymous requests through.
func (m *Middleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, claims, ok := m.resolve(c); ok {
			c.Set(principalKey, user)
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

// Revoke adds a token's JTI to the denylist for the remainder of its
// lifetime.
func (m *Middleware) Revoke(claims *Claims) error {
	if m.denylist == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return m.denylist.Revoke(claims.ID, ttl)
}

func (m *Middleware) resolve(c *gin.Context) (*models.User, *Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, false
	}

	claims, err := m.issuer.Verify(parts[1])
	if err != nil {
		return nil, nil, false
	}

	if m.denylist != nil {
		revoked, err := m.denylist.IsRevoked(claims.ID)
		if err != nil {
			m.logger.Warn("denylist lookup failed, rejecting token",
				zap.String("jti", claims.ID),
				zap.Error(err))
			return nil, nil, false
		}
		if revoked {
			return nil, nil, false
		}
	}

	user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil || user == nil {
		return nil, nil, false
	}
	return user, claims, true
}

// Principal returns the authenticated user attached to the context, or
// nil for anonymous requests.
func Principal(c *gin.Context) *models.User {
	if v, ok := c.Get(principalKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// TokenClaims returns the verified claims attached to the context, or
// nil for anonymous requests.
func TokenClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}
