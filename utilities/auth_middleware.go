package utilities

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mindwell-backend/internal/model"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextEmail    = "email"
	ContextRole     = "role"
)

// AuthMiddleware ensures each request outside /auth carries a valid access
// token and stores the principal in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/auth") {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "missing authorization header", "code": "unauthenticated"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ValidateToken(tokenStr, false)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token", "code": "unauthenticated"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. It is the single
// authorization check used by every mutating endpoint.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := CurrentRole(c)
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{"detail": "permission denied", "code": "permission_denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or 0 when absent.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentRole returns the authenticated role, defaulting to RoleUser.
func CurrentRole(c *gin.Context) model.Role {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(model.Role); ok && role.Valid() {
			return role
		}
	}
	return model.RoleUser
}
