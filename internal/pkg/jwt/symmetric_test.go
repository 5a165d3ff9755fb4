package jwt

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
)

var testSecret = []byte(strings.Repeat("k", 64))

func newTestJWT(t *testing.T, at time.Time) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:    testSecret,
		Issuer:    "authenticator",
		Audiences: []string{"authenticator-api"},
		TTL:       time.Hour,
		Clock:     clock.Fixed(at),
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}
	return s
}

func TestSymmetric(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		// Arrange
		s := newTestJWT(t, now)

		// Act
		token, exp, err := s.Generate("sess-1", 42, "alice")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		claims, err := s.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if !exp.Equal(now.Add(time.Hour)) {
			t.Fatalf("expiry = %v, want %v", exp, now.Add(time.Hour))
		}
		if claims.ID != "sess-1" || claims.UserID != 42 || claims.Username != "alice" || claims.Subject != "42" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := newTestJWT(t, now).Generate("sess-1", 42, "alice")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		_, err = newTestJWT(t, now.Add(2*time.Hour)).Verify(token)
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("Verify() error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		s := newTestJWT(t, now)
		token, _, err := s.Generate("sess-1", 42, "alice")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if _, err := s.Verify(token[:len(token)-2] + "xx"); err == nil {
			t.Fatalf("expected error for tampered signature")
		}
	})

	t.Run("other secret", func(t *testing.T) {
		token, _, err := newTestJWT(t, now).Generate("sess-1", 42, "alice")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		other, err := NewHS512(Config{
			Secret:    []byte(strings.Repeat("z", 64)),
			Issuer:    "authenticator",
			Audiences: []string{"authenticator-api"},
			Clock:     clock.Fixed(now),
		})
		if err != nil {
			t.Fatalf("NewHS512() error = %v", err)
		}
		if _, err := other.Verify(token); err == nil {
			t.Fatalf("expected error for foreign signature")
		}
	})

	t.Run("missing session", func(t *testing.T) {
		_, _, err := newTestJWT(t, now).Generate("", 42, "alice")
		if !errors.Is(err, ErrMissingSession) {
			t.Fatalf("Generate() error = %v, want ErrMissingSession", err)
		}
	})
}

func TestNewHS512ShortKey(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("NewHS512() error = %v, want ErrSigningKeyTooShort", err)
	}
}

func TestAuthContext(t *testing.T) {
	if GetAuth(context.Background()) != nil {
		t.Fatalf("expected nil claims on empty context")
	}

	ctx := SetAuth(context.Background(), Claims{UserID: 7, Username: "bob"})
	got := GetAuth(ctx)
	if got == nil || got.UserID != 7 || got.Username != "bob" {
		t.Fatalf("GetAuth() = %+v", got)
	}
}
