package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Ciphertext layout: uint16 key version, 12 byte nonce, GCM output.
const (
	versionLen = 2
	nonceLen   = 12
	headerLen  = versionLen + nonceLen
)

// AESGCM implements Sealer with AES-256-GCM.
type AESGCM struct {
	keys *Keyring
}

// NewAESGCM returns a sealer backed by keys.
func NewAESGCM(keys *Keyring) *AESGCM {
	return &AESGCM{keys: keys}
}

// Seal implements Sealer.
func (s *AESGCM) Seal(plaintext []byte, scope Scope) ([]byte, error) {
	if s == nil || s.keys == nil {
		return nil, ErrNotConfigured
	}
	if len(plaintext) == 0 {
		return nil, ErrPlaintextEmpty
	}

	version := s.keys.Current()
	gcm, err := s.gcm(version)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerLen, headerLen+len(plaintext)+gcm.Overhead())
	binary.BigEndian.PutUint16(out[:versionLen], version)
	if _, err := rand.Read(out[versionLen:headerLen]); err != nil {
		return nil, fmt.Errorf("seal: nonce generation failed: %w", err)
	}

	return gcm.Seal(out, out[versionLen:headerLen], plaintext, scopeAAD(scope)), nil
}

// Open implements Sealer. Any authentication failure, including a scope
// mismatch, is reported as ErrOpenFailed.
func (s *AESGCM) Open(ciphertext []byte, scope Scope) ([]byte, error) {
	if s == nil || s.keys == nil {
		return nil, ErrNotConfigured
	}
	if len(ciphertext) <= headerLen {
		return nil, ErrCiphertextTooShort
	}

	gcm, err := s.gcm(binary.BigEndian.Uint16(ciphertext[:versionLen]))
	if err != nil {
		return nil, err
	}

	plain, err := gcm.Open(nil, ciphertext[versionLen:headerLen], ciphertext[headerLen:], scopeAAD(scope))
	if err != nil {
		return nil, ErrOpenFailed
	}

	return plain, nil
}

func (s *AESGCM) gcm(version uint16) (cipher.AEAD, error) {
	key, err := s.keys.key(version)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("seal: aes init failed: %w", err)
	}

	return cipher.NewGCM(block)
}

// scopeAAD hashes a labelled form of the scope so the additional data has a
// fixed length and no separator ambiguity.
func scopeAAD(s Scope) []byte {
	sum := sha256.Sum256(fmt.Appendf(nil, "uid=%d\npurpose=%s\n", s.UserID, s.Purpose))
	return sum[:]
}
