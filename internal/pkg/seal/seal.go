// Package seal encrypts small secrets at rest, such as authenticator seeds.
//
// Ciphertexts are bound to a Scope through AES-GCM additional data, so a value
// sealed for one user or purpose cannot be opened for another. Each ciphertext
// records the key version it was sealed with, which allows key rotation
// without re-encrypting existing rows.
package seal

import "errors"

// Purpose names what a sealed value is used for.
type Purpose string

const (
	// PurposeEntrySecret scopes authenticator entry seeds.
	PurposeEntrySecret Purpose = "entry_secret"
)

// Scope binds a ciphertext to its owner and purpose.
type Scope struct {
	UserID  int64
	Purpose Purpose
}

// Sealer encrypts and decrypts values for a scope.
type Sealer interface {
	Seal(plaintext []byte, scope Scope) ([]byte, error)
	Open(ciphertext []byte, scope Scope) ([]byte, error)
}

var (
	ErrNotConfigured      = errors.New("seal: sealer not configured")
	ErrPlaintextEmpty     = errors.New("seal: plaintext is empty")
	ErrInvalidKeyLength   = errors.New("seal: invalid key length")
	ErrCiphertextTooShort = errors.New("seal: ciphertext too short")
	ErrUnknownKeyVersion  = errors.New("seal: unknown key version")
	ErrOpenFailed         = errors.New("seal: open failed")
)
