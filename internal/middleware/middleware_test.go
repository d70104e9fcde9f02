package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/metrics"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestJWT(t *testing.T) {
	uid := uuid.New()
	validate := func(_ context.Context, token string) (Identity, error) {
		switch token {
		case "good":
			return Identity{UserID: uid, Role: models.RoleUser, TokenID: "jti-1"}, nil
		case "down":
			return Identity{}, apperr.Internal(errors.New("redis down"))
		}
		return Identity{}, errors.New("bad token")
	}
	r := gin.New()
	r.Use(Locale(i18n.English))
	r.GET("/me", JWT(validate), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c).String(), "role": Role(c), "jti": c.GetString(ContextTokenID)})
	})

	cases := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{"missing", "", http.StatusUnauthorized, "Authentication required"},
		{"malformed", "Token abc", http.StatusUnauthorized, "Authentication required"},
		{"invalid", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"store error", "Bearer down", http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := serve(r, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, message(t, w))
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer good")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), uid.String())
	assert.Contains(t, w.Body.String(), `"jti":"jti-1"`)
}

func TestRequireRole(t *testing.T) {
	withRole := func(role models.Role) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(ContextUserRole, role)
			}
			c.Next()
		}
	}
	for _, tc := range []struct {
		role   models.Role
		status int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleUser, http.StatusForbidden},
		{"", http.StatusUnauthorized},
	} {
		r := gin.New()
		r.GET("/admin", withRole(tc.role), RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, tc.status, w.Code, tc.role)
		if tc.status == http.StatusForbidden {
			assert.Equal(t, "Admin access required", message(t, w))
		}
	}
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	r := gin.New()
	r.POST("/login", RateLimit(rdb, 2, time.Minute, KeyByIPAndRoute("auth"), zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	mr.FastForward(time.Minute + time.Second)
	w = serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	r := gin.New()
	r.POST("/x", RateLimit(rdb, 1, time.Minute, KeyByIPAndRoute("x"), zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/x", nil)).Code)
}

func TestLocaleAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Locale(i18n.English))
	r.GET("/", func(c *gin.Context) {
		v, _ := c.Get(i18n.ContextKey)
		c.String(http.StatusOK, string(v.(i18n.Locale)))
	})

	req := httptest.NewRequest(http.MethodGet, "/?lang=ar", nil)
	req.Header.Set("Accept-Language", "fr")
	w := serve(r, req)
	assert.Equal(t, "ar", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	req.Header.Set("X-Request-ID", "abc")
	w = serve(r, req)
	assert.Equal(t, "fr", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/events/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/api/events/abc", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/api/events/def", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/events/:id", "200")))
}

func TestOriginAllowed(t *testing.T) {
	list := "http://localhost:5173, https://events.ma"
	assert.True(t, OriginAllowed(list, "https://events.ma"))
	assert.True(t, OriginAllowed(list, ""))
	assert.False(t, OriginAllowed(list, "https://evil.example"))
	assert.True(t, OriginAllowed("*", "https://evil.example"))
}
