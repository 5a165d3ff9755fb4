package otp

import (
	"errors"
	"testing"
)

var rfcSecret = []byte("12345678901234567890")

func TestHOTP(t *testing.T) {
	t.Run("RFC4226Vectors", func(t *testing.T) {
		want := []string{
			"755224", "287082", "359152", "969429", "338314",
			"254676", "287922", "162583", "399871", "520489",
		}

		for counter, code := range want {
			// Act
			got, err := HOTP(rfcSecret, uint64(counter), 6)

			// Assert
			if err != nil {
				t.Fatalf("counter %d: unexpected error: %v", counter, err)
			}
			if got != code {
				t.Fatalf("counter %d: got %s, want %s", counter, got, code)
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		// Act
		first, _ := HOTP(rfcSecret, 42, 8)
		second, _ := HOTP(rfcSecret, 42, 8)

		// Assert
		if first != second {
			t.Fatalf("expected identical codes, got %s and %s", first, second)
		}
	})

	t.Run("DefaultDigits", func(t *testing.T) {
		// Act
		got, err := HOTP(rfcSecret, 0, 0)

		// Assert
		if err != nil || got != "755224" {
			t.Fatalf("got %q, %v; want 755224", got, err)
		}
	})

	t.Run("EmptySecretStillProducesCode", func(t *testing.T) {
		// Act
		got, err := HOTP(nil, 1, 6)

		// Assert
		if err != nil || len(got) != 6 {
			t.Fatalf("got %q, %v; want a 6 digit code", got, err)
		}
	})

	t.Run("WideCodesArePadded", func(t *testing.T) {
		// Act
		got, err := HOTP(rfcSecret, 0, 12)

		// Assert
		if err != nil || len(got) != 12 || got[:2] != "00" {
			t.Fatalf("got %q, %v; want a zero padded 12 digit code", got, err)
		}
	})

	t.Run("TooManyDigits", func(t *testing.T) {
		// Act
		_, err := HOTP(rfcSecret, 0, MaxDigits+1)

		// Assert
		if !errors.Is(err, ErrInvalidDigits) {
			t.Fatalf("expected ErrInvalidDigits, got %v", err)
		}
	})
}
