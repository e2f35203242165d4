package middleware

import (
	"github.com/gin-gonic/gin"

	"studio-notify/pkg/log"
	"studio-notify/pkg/response"
)

func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "panic recovered: %v | method: %s | path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.Internal(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}
