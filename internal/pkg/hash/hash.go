package hash

import (
	"fmt"
	"strings"
)

// Hash hashes a plaintext and checks a plaintext against a stored hash.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}

// Supported password algorithms.
const (
	AlgorithmPBKDF2   = "pbkdf2"
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Options configures New.
type Options struct {
	Algorithm  string
	Pepper     string
	BcryptCost int
}

// New returns the password hasher named by opts.Algorithm.
func New(opts Options) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Algorithm)) {
	case "", AlgorithmPBKDF2:
		return NewPBKDF2(opts.Pepper), nil
	case AlgorithmBcrypt:
		return NewBcrypt(opts.BcryptCost, opts.Pepper), nil
	case AlgorithmArgon2id:
		return NewArgon2id(opts.Pepper), nil
	default:
		return nil, fmt.Errorf("hash: unsupported algorithm %q", opts.Algorithm)
	}
}
