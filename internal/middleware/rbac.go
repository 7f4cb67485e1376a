package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/models"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
	"github.com/AliciaPky/Astar/pkg/response"
)

// RequireRoles lets the request through only when the signed-in role is listed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
