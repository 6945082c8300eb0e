package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hostelms/backend/internal/infrastructure/auth"
	"github.com/hostelms/backend/internal/infrastructure/config"
	"github.com/hostelms/backend/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-middleware-tests",
		Expiration: expiration,
		Issuer:     "hostelms-test",
	})
}

func newProtectedEngine(jwtService *auth.JWTService) *gin.Engine {
	engine := gin.New()
	engine.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/public"},
		Logger:     zap.NewNop(),
	}))
	engine.GET("/public", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/private", func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUsername(c))
	})
	return engine
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuth_SkipPath(t *testing.T) {
	engine := newProtectedEngine(newJWTService(time.Hour))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	engine := newProtectedEngine(newJWTService(time.Hour))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, decodeError(t, w))
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newJWTService(time.Hour)
	engine := newProtectedEngine(jwtService)

	token, err := jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "warden",
		Role:     "ADMIN",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "warden", w.Body.String())
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	engine := newProtectedEngine(newJWTService(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-jwt")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, decodeError(t, w))
}

func TestRequireRole(t *testing.T) {
	engine := gin.New()
	engine.GET("/admin",
		func(c *gin.Context) { c.Set(JWTRoleKey, "CLERK") },
		RequireRole("ADMIN"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	engine.GET("/desk",
		func(c *gin.Context) { c.Set(JWTRoleKey, "CLERK") },
		RequireRole("ADMIN", "CLERK"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/desk", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
