package otp

import (
	"errors"

	libotp "github.com/creachadair/otp"
)

const (
	// DefaultDigits is the code length used when none is configured.
	DefaultDigits = 6
	// MaxDigits is the widest code the decimal formatter can zero-pad.
	// The truncated value has at most 10 significant digits, so anything
	// above 10 only adds leading zeros.
	MaxDigits = 20
)

// ErrInvalidDigits is returned when a code length exceeds MaxDigits.
var ErrInvalidDigits = errors.New("otp: digits out of range")

// HOTP returns the RFC 4226 code for secret and counter. A digits value of zero
// or less means DefaultDigits. Any key length is accepted, including empty.
func HOTP(secret []byte, counter uint64, digits int) (string, error) {
	if digits <= 0 {
		digits = DefaultDigits
	}
	if digits > MaxDigits {
		return "", ErrInvalidDigits
	}

	cfg := libotp.Config{Key: string(secret), Digits: digits}
	return cfg.HOTP(counter), nil
}
