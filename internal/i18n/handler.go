package i18n

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the translation tables to the web client.
type Handler struct{}

// NewHandler creates an i18n handler.
func NewHandler() *Handler { return &Handler{} }

// Dictionary handles GET /i18n/:locale.
func (h *Handler) Dictionary(c *gin.Context) {
	loc, ok := ParseLocale(c.Param("locale"))
	if !ok {
		reqLoc, _ := c.Get(ContextKey)
		l, _ := reqLoc.(Locale)
		c.JSON(http.StatusNotFound, gin.H{"message": T(l, ErrLocaleNotFound)})
		return
	}
	d, _ := Dictionary(loc)
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, d)
}
