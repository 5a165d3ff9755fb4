package otp

import (
	"crypto/subtle"
	"time"
)

// Verify reports whether candidate equals the code of any counter within
// window steps of now, inclusive on both sides. It never returns an error;
// invalid parameters simply fail verification.
func Verify(secret, candidate string, now time.Time, p Params, window int) bool {
	if window < 0 {
		window = 0
	}

	key := DecodeBase32(secret)
	digits := p.digits()
	current := Counter(now, p.step())

	ok := 0
	for i := -window; i <= window; i++ {
		if i < 0 && uint64(-i) > current {
			continue
		}

		expected, err := HOTP(key, current+uint64(int64(i)), digits)
		if err != nil {
			return false
		}

		ok |= subtle.ConstantTimeCompare([]byte(expected), []byte(candidate))
	}

	return ok == 1
}
