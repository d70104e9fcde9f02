package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/validation"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Locale returns the negotiated locale for the request, English if none was set.
func Locale(c *gin.Context) i18n.Locale {
	if v, ok := c.Get(i18n.ContextKey); ok {
		if l, ok := v.(i18n.Locale); ok {
			return l
		}
	}
	return i18n.English
}

// Error sends status with a localized message.
func Error(c *gin.Context, status int, key i18n.Key, details map[string]string) {
	c.JSON(status, ErrorBody{Message: i18n.T(Locale(c), key), Details: details})
}

// Fail maps err to its HTTP status and localized message. Internal causes are
// attached to the gin context for the request logger and never sent to the client.
func Fail(c *gin.Context, err error) {
	e := apperr.As(err)
	if e.Kind == apperr.KindInternal {
		_ = c.Error(err)
	}
	Error(c, e.Status(), e.Key, e.Details)
}

// Abort is Fail followed by c.Abort, for middleware.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

// BindFailed reports a ShouldBind error as a 400 with per-field details.
func BindFailed(c *gin.Context, err error) {
	key := i18n.ErrValidation
	if validation.IsPayloadError(err) {
		key = i18n.ErrInvalidRequest
	}
	Fail(c, apperr.Validation(key).WithDetails(validation.ToDetails(err)))
}

// BadRequest sends 400.
func BadRequest(c *gin.Context, key i18n.Key) {
	Error(c, http.StatusBadRequest, key, nil)
}

// NotFound sends 404.
func NotFound(c *gin.Context, key i18n.Key) {
	Error(c, http.StatusNotFound, key, nil)
}
