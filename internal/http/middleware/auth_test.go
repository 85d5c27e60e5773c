package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/NovaAI-innovation/backend12/internal/auth"
	"github.com/NovaAI-innovation/backend12/internal/http/middleware"
	"github.com/NovaAI-innovation/backend12/internal/service"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	authService := service.NewAuthService(auth.NewCredentials(string(hash), nil), tokens, nil)
	authMiddleware := &middleware.Auth{AuthService: authService}

	r := gin.New()
	r.GET("/protected", authMiddleware.RequireAdmin, func(c *gin.Context) {
		role, _ := middleware.GetRole(c)
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return r, tokens
}

func TestRequireAdminMissingHeader(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	require.Contains(t, w.Body.String(), "missing_token")
}

func TestRequireAdminMalformedHeader(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, _, err := tokens.Issue(auth.RoleAdmin)
	require.NoError(t, err)

	for _, header := range []string{"Token " + token, "Bearer", "Bearer   ", token} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAdminInvalidToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "invalid_token")
}

func TestRequireAdminValidToken(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, _, err := tokens.Issue(auth.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestRequireAdminLowercaseBearer(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, _, err := tokens.Issue(auth.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
