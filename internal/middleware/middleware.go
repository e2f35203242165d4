package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"studio-notify/pkg/jwt"
	"studio-notify/pkg/response"
)

const principalKey = "principal"

// Auth returns a middleware that validates JWT tokens and sets the principal
// in the gin context. The token comes from the Authorization header in
// "Bearer <token>" format.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warnf(c.Request.Context(), "missing Authorization header | path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.logger.Warnf(c.Request.Context(), "invalid Authorization header format | path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		principal, err := m.jwtManager.ExtractPrincipal(tokenString)
		if err != nil {
			m.logger.Warnf(c.Request.Context(), "token verification failed: %v | path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole returns a middleware that rejects requests whose principal
// lacks the given role. The admin role passes every check. Must run after
// Auth.
func (m Middleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		for _, r := range principal.Roles {
			if r == role || r == "admin" {
				c.Next()
				return
			}
		}

		m.logger.Warnf(c.Request.Context(), "user %d lacks role %s | path: %s",
			principal.UserID, role, c.Request.URL.Path)
		response.Forbidden(c)
		c.Abort()
	}
}

// PrincipalFromContext returns the authenticated principal set by Auth.
func PrincipalFromContext(c *gin.Context) (*jwt.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*jwt.Principal)
	return principal, ok
}
