package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/service"
	"github.com/bantam-social/bantam/pkg/logging"
)

// translateError maps a domain error to an HTTP status and a
// client-visible reason. Every service error surfaces as a structured
// rejection; only unrecognized errors become a 500.
func translateError(err error) (int, string) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrDuplicateLike),
		errors.Is(err, service.ErrNotLiked),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}

// respondError writes a translated error response
func respondError(c *gin.Context, err error) {
	status, message := translateError(err)
	if status == http.StatusInternalServerError {
		logging.WithComponent("api").Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": message})
}
