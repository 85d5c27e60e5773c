package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/auth"
)

// TokenResponse is the login payload returned to the CMS frontend.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AuthService composes the credential store and token service behind the
// login and verification operations.
type AuthService struct {
	creds  *auth.Credentials
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewAuthService wires the auth components.
func NewAuthService(creds *auth.Credentials, tokens *auth.TokenService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{creds: creds, tokens: tokens, logger: logger}
}

// Login verifies the admin password and issues a session token. The error is
// auth.ErrInvalidCredentials on any mismatch, with no further detail.
func (s *AuthService) Login(_ context.Context, password string) (TokenResponse, error) {
	if err := s.creds.VerifyPassword(password); err != nil {
		s.logger.Warn("admin login rejected")
		return TokenResponse{}, err
	}

	token, _, err := s.tokens.Issue(auth.RoleAdmin)
	if err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info("admin login succeeded")
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

// Verify validates a bearer token and returns its claims.
func (s *AuthService) Verify(token string) (auth.Claims, error) {
	return s.tokens.Verify(token)
}
