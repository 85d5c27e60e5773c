package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/ratelimit"
)

// Rate limited action names. Each action has its own window and budget.
const (
	ActionLogin   = "login"
	ActionUpload  = "upload"
	ActionDelete  = "delete"
	ActionBooking = "booking"
)

// RateLimit counts one attempt per request against the action's policy and
// rejects with 429 once the window budget is spent. A limiter backend error
// fails open with a warning; the login route is always wired to the
// in-process backend, which cannot error, so brute-force protection never
// degrades.
func RateLimit(limiter ratelimit.Limiter, action string, p ratelimit.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := ratelimit.Check(c.Request.Context(), limiter, ClientIdentifier(c), action, p)
		switch {
		case errors.Is(err, ratelimit.ErrRateLimited):
			zap.L().Warn("rate limit exceeded",
				zap.String("action", action),
				zap.String("client_ip", ClientIdentifier(c)),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited", "message": "Too many requests. Please try again later."})
		case err != nil:
			zap.L().Warn("rate limiter unavailable",
				zap.String("action", action),
				zap.Error(err),
			)
			c.Next()
		default:
			c.Next()
		}
	}
}

// ClientIdentifier keys rate-limit windows. The first hop of X-Forwarded-For
// wins when the service sits behind a reverse proxy; otherwise the direct
// peer address.
func ClientIdentifier(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	return c.ClientIP()
}
