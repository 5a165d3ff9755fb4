package seal

import "fmt"

const keyLen = 32

// Keyring holds AES-256 keys by version. New values are sealed with Current.
type Keyring struct {
	current uint16
	keys    map[uint16][]byte
}

// NewKeyring returns a keyring whose current key is keys[current]. Every key
// must be 32 bytes.
func NewKeyring(current uint16, keys map[uint16][]byte) (*Keyring, error) {
	if _, ok := keys[current]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKeyVersion, current)
	}

	kr := &Keyring{current: current, keys: make(map[uint16][]byte, len(keys))}
	for v, k := range keys {
		if len(k) != keyLen {
			return nil, fmt.Errorf("%w: version %d has %d bytes, want %d", ErrInvalidKeyLength, v, len(k), keyLen)
		}
		kr.keys[v] = append([]byte(nil), k...)
	}

	return kr, nil
}

// Current returns the version used for new ciphertexts.
func (k *Keyring) Current() uint16 {
	return k.current
}

func (k *Keyring) key(version uint16) ([]byte, error) {
	key, ok := k.keys[version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKeyVersion, version)
	}
	return key, nil
}
