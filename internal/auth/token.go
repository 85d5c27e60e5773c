package auth

import (
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

const (
	// RoleAdmin is the only role this service issues.
	RoleAdmin = "admin"

	subjectAdmin    = "cms_admin"
	tokenTypeAccess = "access"
)

// Claims are the decoded contents of an accepted session token.
type Claims struct {
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type customClaims struct {
	Role      string `json:"role"`
	TokenType string `json:"type"`
}

// TokenService issues and verifies HS256 session tokens. Validity is
// determined purely by signature and expiry; there is no revocation list, so
// a token stays valid until its natural expiry.
type TokenService struct {
	signer jose.Signer
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a token service around the process signing secret.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	return &TokenService{signer: signer, secret: secret, ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source, for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for the given role, expiring after the configured TTL.
func (s *TokenService) Issue(role string) (string, time.Time, error) {
	issued := s.now().UTC()
	expires := issued.Add(s.ttl)

	std := jwt.Claims{
		Subject:  subjectAdmin,
		IssuedAt: jwt.NewNumericDate(issued),
		Expiry:   jwt.NewNumericDate(expires),
	}
	custom := customClaims{Role: role, TokenType: tokenTypeAccess}

	token, err := jwt.Signed(s.signer).Claims(std).Claims(custom).Serialize()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expires, nil
}

// Verify parses and validates a token. It fails with ErrMalformedToken when
// the bytes do not parse as a compact JWS, ErrInvalidSignature when the
// signature does not match the process secret, and ErrTokenExpired once the
// current time reaches the expiry claim.
func (s *TokenService) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return Claims{}, ErrMalformedToken
	}

	var std jwt.Claims
	var custom customClaims
	if err := parsed.Claims(s.secret, &std, &custom); err != nil {
		return Claims{}, ErrInvalidSignature
	}

	if std.Expiry == nil || custom.TokenType != tokenTypeAccess {
		return Claims{}, ErrMalformedToken
	}
	if !s.now().Before(std.Expiry.Time()) {
		return Claims{}, ErrTokenExpired
	}

	claims := Claims{Role: custom.Role, ExpiresAt: std.Expiry.Time()}
	if std.IssuedAt != nil {
		claims.IssuedAt = std.IssuedAt.Time()
	}
	return claims, nil
}
