package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// OperationTimeout bounds the request context, and with it every store call made from it
func OperationTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
