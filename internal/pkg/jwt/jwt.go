package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned for tokens not signed with HS512.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 key is under 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSession is returned when Generate is called without a session ID.
	ErrMissingSession = errors.New("session id is required")
)

// JWT issues and verifies session tokens.
type JWT interface {
	// Generate signs a token bound to sessionID and returns it with its expiry.
	Generate(sessionID string, userID int64, username string) (string, time.Time, error)
	// Verify parses and validates a token and returns its claims.
	Verify(token string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type jwtContextKey struct{}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	// TTL is the token lifetime. It should match the session lifetime.
	TTL   time.Duration
	Clock clocker
}

// Claims carries the registered claims plus the session owner. ID (jti) is
// the session ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id,string"`
	Username string `json:"username"`
}

// GetAuth returns the claims stored by SetAuth, or nil.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores verified claims in ctx.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
