package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/morocco-events/backend/internal/i18n"
)

// Locale negotiates the response language: ?lang=, X-Locale, Accept-Language, then def.
func Locale(def i18n.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := i18n.Resolve(c.Query("lang"), c.GetHeader("X-Locale"), c.GetHeader("Accept-Language"), def)
		c.Set(i18n.ContextKey, loc)
		c.Header("Content-Language", string(loc))
		c.Next()
	}
}
