package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/response"
)

// RequireRole returns a middleware that allows only the given roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{})
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	key := i18n.ErrForbidden
	if len(roles) == 1 && roles[0] == models.RoleAdmin {
		key = i18n.ErrAdminRequired
	}
	return func(c *gin.Context) {
		roleVal, ok := c.Get(ContextUserRole)
		if !ok {
			response.Abort(c, apperr.Unauthenticated(i18n.ErrUnauthenticated))
			return
		}
		role, _ := roleVal.(models.Role)
		if _, ok := allowed[role]; !ok {
			response.Abort(c, apperr.Forbidden(key))
			return
		}
		c.Next()
	}
}
