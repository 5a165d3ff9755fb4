package hash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 implements Hash with PBKDF2-HMAC-SHA256.
//
// The stored form is base64(salt || key) with a 16 byte salt and a 32 byte key.
type PBKDF2 struct {
	iterations int
	saltLength int
	keyLength  int
	pepper     string
}

// NewPBKDF2 returns a PBKDF2 hasher with 100k iterations.
func NewPBKDF2(pepper string) *PBKDF2 {
	return &PBKDF2{
		iterations: 100_000,
		saltLength: 16,
		keyLength:  32,
		pepper:     pepper,
	}
}

// Hash derives a key from str with a fresh random salt.
func (p *PBKDF2) Hash(str string) ([]byte, error) {
	salt := make([]byte, p.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(str+p.pepper), salt, p.iterations, p.keyLength, sha256.New)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(salt)+len(key)))
	base64.StdEncoding.Encode(out, append(salt, key...))

	return out, nil
}

// Verify reports whether str derives to the key stored in hashed.
func (p *PBKDF2) Verify(hashed, str string) bool {
	if hashed == "" || str == "" {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(hashed)
	if err != nil || len(raw) <= p.saltLength {
		return false
	}

	salt, expected := raw[:p.saltLength], raw[p.saltLength:]
	got := pbkdf2.Key([]byte(str+p.pepper), salt, p.iterations, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(expected, got) == 1
}
