package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"borderlesspay.backend/pkg/logger"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware tags each request with a unique id, honoring a
// caller-supplied X-Request-ID. The id is stored both in the gin
// context and the request context so logger.WithContext picks it up.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id) //nolint:staticcheck
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
