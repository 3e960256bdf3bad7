//go:build unit

package middleware_test

import (
	"encoding/json"
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"
	"time"

	"bikefleet/internal/domain/principal"
	"bikefleet/internal/handler/middleware"
	"bikefleet/internal/pkg/jwt"
	"bikefleet/internal/usecase"
	"bikefleet/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthRouter mounts /protected behind RequireAuth, plus RequireAnyRole
// when allowedRoles is non-empty.
func newAuthRouter(t *testing.T, allowedRoles ...principal.Role) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := jwt.NewService("test-secret", time.Hour)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtService))

	handlers := []gin.HandlerFunc{auth.RequireAuth()}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, auth.RequireAnyRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		require.True(t, ok)
		role, ok := middleware.GetUserRole(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": role.String()})
	})

	router := gin.New()
	router.GET("/protected", handlers...)
	return router, jwtService
}

// Middleware rejections use the flat {"error": "..."} body; handler errors
// go through httperr and nest the message.
func assertAuthError(t *testing.T, rec *stdhttptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()
	assert.Equal(t, expectedStatus, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, expectedMsg, body.Error)
}

func tokenFor(t *testing.T, jwtService *jwt.Service, role principal.Role) string {
	t.Helper()
	token, err := jwtService.GenerateToken(uuid.New(), role)
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	t.Run("accepts a valid bearer token", func(t *testing.T) {
		router, jwtService := newAuthRouter(t)
		userID := uuid.New()
		token, err := jwtService.GenerateToken(userID, principal.RoleRider)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "rider", body["role"])
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "")
		assertAuthError(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("rejects a forged token", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		forged := jwt.NewService("other-secret", time.Hour)
		token, err := forged.GenerateToken(uuid.New(), principal.RoleAdmin)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)
		assertAuthError(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(uuid.New(), principal.RoleRider)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)
		assertAuthError(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestRequireAnyRole(t *testing.T) {
	t.Run("allows each listed role", func(t *testing.T) {
		router, jwtService := newAuthRouter(t, principal.RoleStaff, principal.RoleAdmin)

		for _, role := range []principal.Role{principal.RoleStaff, principal.RoleAdmin} {
			rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil,
				tokenFor(t, jwtService, role))
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
		}
	})

	t.Run("forbids roles not listed", func(t *testing.T) {
		router, jwtService := newAuthRouter(t, principal.RoleStaff, principal.RoleAdmin)

		for _, role := range []principal.Role{principal.RoleRider, principal.RoleAgent} {
			rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil,
				tokenFor(t, jwtService, role))
			assertAuthError(t, rec, http.StatusForbidden, "Insufficient permissions")
		}
	})
}
