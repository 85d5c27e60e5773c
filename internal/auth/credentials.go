package auth

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the single admin credential pair, loaded once at startup
// and immutable for the process lifetime.
type Credentials struct {
	passwordHash []byte
	logger       *zap.Logger
}

// NewCredentials wraps the configured bcrypt digest. An empty hash is allowed
// at construction so the service can boot without auth configured; every login
// against it fails with the same generic error as a wrong password.
func NewCredentials(passwordHash string, logger *zap.Logger) *Credentials {
	if logger == nil {
		logger = zap.NewNop()
	}
	if passwordHash == "" {
		logger.Warn("admin password hash not configured, all logins will be rejected")
	}
	return &Credentials{passwordHash: []byte(passwordHash), logger: logger}
}

// VerifyPassword compares a plaintext password against the stored bcrypt
// digest. The returned error is identical for a wrong password and for an
// unconfigured hash, so responses cannot leak which case occurred.
func (c *Credentials) VerifyPassword(password string) error {
	if len(c.passwordHash) == 0 {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
