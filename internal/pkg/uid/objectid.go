package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ErrStableNodeIdentityUnavailable is returned when neither /etc/machine-id nor
// the hostname can identify the current machine.
var ErrStableNodeIdentityUnavailable = errors.New("uid: cannot determine stable node identity (machine-id/hostname unavailable)")

// ObjectIDGenerator generates 24 byte IDs rendered as 48 hex characters. The
// layout is a millisecond timestamp, node, pid, counter and random tail, so
// IDs sort by creation time.
type ObjectIDGenerator struct {
	node    [4]byte
	pid     uint16
	counter atomic.Uint32
}

// NewObjectIDGenerator returns a generator seeded from the machine identity.
func NewObjectIDGenerator() (*ObjectIDGenerator, error) {
	src, err := stableNodeIdentity()
	if err != nil {
		return nil, err
	}

	g := &ObjectIDGenerator{pid: uint16(os.Getpid())}
	sum := sha256.Sum256([]byte(src))
	copy(g.node[:], sum[:4])

	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	g.counter.Store(binary.BigEndian.Uint32(seed[:]))

	return g, nil
}

// Generate implements StringID.
func (g *ObjectIDGenerator) Generate() string {
	var raw [24]byte

	ms := uint64(time.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		raw[i] = byte(ms >> (8 * (5 - i)))
	}
	copy(raw[6:10], g.node[:])
	binary.BigEndian.PutUint16(raw[10:12], g.pid)
	binary.BigEndian.PutUint32(raw[12:16], g.counter.Add(1))

	if _, err := rand.Read(raw[16:]); err != nil {
		sum := sha256.Sum256(raw[:16])
		copy(raw[16:], sum[:8])
	}

	return hex.EncodeToString(raw[:])
}

func stableNodeIdentity() (string, error) {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s, nil
		}
	}

	if h, err := os.Hostname(); err == nil {
		if h = strings.TrimSpace(h); h != "" {
			return h, nil
		}
	}

	return "", ErrStableNodeIdentityUnavailable
}
