package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/NovaAI-innovation/backend12/internal/auth"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	creds := auth.NewCredentials(string(hash), nil)
	require.NoError(t, creds.VerifyPassword("correct horse"))
	require.ErrorIs(t, creds.VerifyPassword("wrong horse"), auth.ErrInvalidCredentials)
	require.ErrorIs(t, creds.VerifyPassword(""), auth.ErrInvalidCredentials)
}

func TestVerifyPasswordUnconfiguredHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	configured := auth.NewCredentials(string(hash), nil)
	unconfigured := auth.NewCredentials("", nil)

	// Wrong password and missing hash fail identically, so a caller cannot
	// tell which case it hit.
	wrongErr := configured.VerifyPassword("nope")
	missingErr := unconfigured.VerifyPassword("nope")
	require.ErrorIs(t, wrongErr, auth.ErrInvalidCredentials)
	require.ErrorIs(t, missingErr, auth.ErrInvalidCredentials)
	require.Equal(t, wrongErr.Error(), missingErr.Error())
}
