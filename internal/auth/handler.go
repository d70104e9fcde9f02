package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/pkg/response"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts /auth. limit guards the credential endpoints.
func (h *Handler) Routes(rg *gin.RouterGroup, auth, limit gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/register", limit, h.Register)
	g.POST("/login", limit, h.Login)
	g.POST("/logout", auth, h.Logout)
	g.GET("/me", auth, h.Me)
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c, err)
		return
	}
	sess, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, sess)
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c, err)
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, sess)
}

// Logout handles POST /auth/logout. The presented token stops working immediately.
func (h *Handler) Logout(c *gin.Context) {
	exp, _ := c.Get(middleware.ContextTokenExpiry)
	expiresAt, _ := exp.(time.Time)
	if err := h.svc.Logout(c.Request.Context(), c.GetString(middleware.ContextTokenID), expiresAt); err != nil {
		response.Fail(c, err)
		return
	}
	h.logger.Info("user logged out", zap.String("user_id", middleware.UserID(c).String()))
	response.NoContent(c)
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, u.ToPublic())
}
