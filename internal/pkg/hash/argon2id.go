package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// Argon2id implements Hash with Argon2id in the PHC string format.
type Argon2id struct {
	params     argon2Params
	saltLength uint32
	keyLength  uint32
	pepper     string
}

// NewArgon2id returns an Argon2id hasher using 32MB, three passes and two lanes.
func NewArgon2id(pepper string) *Argon2id {
	return &Argon2id{
		params:     argon2Params{memory: 32 * 1024, iterations: 3, parallelism: 2},
		saltLength: 16,
		keyLength:  32,
		pepper:     pepper,
	}
}

// Hash implements Hash.
func (a *Argon2id) Hash(str string) ([]byte, error) {
	salt := make([]byte, a.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	p := a.params
	key := argon2.IDKey([]byte(str+a.pepper), salt, p.iterations, p.memory, p.parallelism, a.keyLength)

	return fmt.Appendf(nil,
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.iterations, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify implements Hash. The cost parameters are read from hashed, so hashes
// written with older settings keep verifying.
func (a *Argon2id) Verify(hashed, str string) bool {
	if hashed == "" || str == "" {
		return false
	}

	p, salt, expected, ok := decodeArgon2id(hashed)
	if !ok {
		return false
	}

	got := argon2.IDKey([]byte(str+a.pepper), salt, p.iterations, p.memory, p.parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(expected, got) == 1
}

func decodeArgon2id(encoded string) (p argon2Params, salt, key []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, false
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, false
	}

	return p, salt, key, true
}
