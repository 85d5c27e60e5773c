package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/auth"
	"github.com/NovaAI-innovation/backend12/internal/service"
)

const (
	roleKey   = "authRole"
	claimsKey = "authClaims"
)

// Auth gates protected routes behind a valid bearer token.
type Auth struct {
	AuthService *service.AuthService
}

// RequireAdmin ensures the request carries a valid admin session token. All
// failure modes produce the same 401 shape; the distinction between missing,
// malformed, tampered, and expired tokens lives only in the logs.
func (m *Auth) RequireAdmin(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		logTokenFailure(c, auth.ErrMissingToken)
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token", "message": "Authentication required."})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		logTokenFailure(c, auth.ErrMissingToken)
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token", "message": "Bearer token required."})
		return
	}

	claims, err := m.AuthService.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		logTokenFailure(c, err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "message": "Authentication token is invalid or expired."})
		return
	}

	c.Set(roleKey, claims.Role)
	c.Set(claimsKey, claims)
	c.Next()
}

// GetRole returns the authenticated role attached by RequireAdmin.
func GetRole(c *gin.Context) (string, bool) {
	value, ok := c.Get(roleKey)
	if !ok {
		return "", false
	}
	role, ok := value.(string)
	return role, ok
}

// GetClaims returns the full decoded token claims.
func GetClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

func logTokenFailure(c *gin.Context, err error) {
	logger := zap.L()
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		logger.Debug("missing bearer token", zap.String("path", c.Request.URL.Path))
	case errors.Is(err, auth.ErrTokenExpired):
		logger.Debug("expired token", zap.String("path", c.Request.URL.Path))
	case errors.Is(err, auth.ErrInvalidSignature):
		logger.Warn("token signature mismatch", zap.String("path", c.Request.URL.Path), zap.String("client_ip", ClientIdentifier(c)))
	default:
		logger.Debug("unparseable token", zap.String("path", c.Request.URL.Path))
	}
}
