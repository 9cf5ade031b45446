package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses an int64 path parameter
func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// pagination reads limit/page query parameters and converts them to a
// limit/offset pair clamped to [1, maxLimit]. Pages are 1-based.
func pagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	return limit, (page - 1) * limit
}
