package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NovaAI-innovation/backend12/internal/service"
)

// AuthHandler serves the CMS login endpoint.
type AuthHandler struct {
	Auth *service.AuthService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// Login exchanges the admin password for a bearer token. Every credential
// failure returns the same body: the response never distinguishes a wrong
// password from an unconfigured one.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Password is required."})
		return
	}

	resp, err := h.Auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "Invalid credentials."})
		return
	}

	c.JSON(http.StatusOK, resp)
}
