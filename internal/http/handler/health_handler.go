package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/config"
)

// HealthHandler serves liveness and dependency checks.
type HealthHandler struct {
	Config config.Config
	Pool   *pgxpool.Pool
}

func NewHealthHandler(cfg config.Config, pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{Config: cfg, Pool: pool}
}

// Root reports the service name and version.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": h.Config.ServiceName,
		"status":  "healthy",
	})
}

// Health is the liveness probe.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// HealthDB pings the database.
func (h *HealthHandler) HealthDB(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.Pool.Ping(pingCtx); err != nil {
		zap.L().Error("database health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"database": "error", "status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "connected", "status": "healthy"})
}

// HealthStorage reports whether blob storage credentials are configured.
func (h *HealthHandler) HealthStorage(c *gin.Context) {
	if !h.Config.Cloudinary.Configured() {
		c.JSON(http.StatusOK, gin.H{"storage": "not_configured", "status": "warning"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"storage": "configured", "status": "healthy"})
}
