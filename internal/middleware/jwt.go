package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID (uuid.UUID) in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role (models.Role) in gin context.
	ContextUserRole = "user_role"
	// ContextTokenID is the key for the session token id (jti).
	ContextTokenID = "token_id"
	// ContextTokenExpiry is the key for the session token expiry (time.Time).
	ContextTokenExpiry = "token_expiry"
)

// Identity is what a valid session token proves.
type Identity struct {
	UserID    uuid.UUID
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenValidator checks a bearer token, including revocation.
type TokenValidator func(ctx context.Context, token string) (Identity, error)

// JWT returns a middleware that validates the bearer token and sets identity in context.
func JWT(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, apperr.Unauthenticated(i18n.ErrUnauthenticated))
			return
		}
		id, err := validate(c.Request.Context(), token)
		if err != nil {
			if apperr.Is(err, apperr.KindInternal) {
				response.Abort(c, err)
				return
			}
			response.Abort(c, apperr.Unauthenticated(i18n.ErrInvalidToken))
			return
		}
		c.Set(ContextUserID, id.UserID)
		c.Set(ContextUserRole, id.Role)
		c.Set(ContextTokenID, id.TokenID)
		c.Set(ContextTokenExpiry, id.ExpiresAt)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// UserID returns the authenticated caller. Only valid behind JWT.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}

// Role returns the authenticated caller's role, empty when anonymous.
func Role(c *gin.Context) models.Role {
	r, _ := c.Get(ContextUserRole)
	role, _ := r.(models.Role)
	return role
}
