// Package sampling provides the process-scope cryptographically seeded
// random source used by the hard-semiprime generator (spec §5): a keyed
// BLAKE3 extendable-output function seeded once from crypto/rand.
package sampling

import (
	"crypto/rand"
	"fmt"

	"github.com/zeebo/blake3"
)

// KeySize is the required length, in bytes, of a KeyedPRNG key.
const KeySize = 32

// KeyedPRNG is a deterministic, seekable random-byte stream keyed from a
// 32-byte secret. Two KeyedPRNGs sharing a key and read offset produce
// identical output — used by tests to reproduce a failing draw.
type KeyedPRNG struct {
	key    [KeySize]byte
	digest *blake3.Digest
}

// NewKeyedPRNG creates a KeyedPRNG from an explicit key, mainly for
// reproducible tests; production callers should use NewPRNG.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("sampling: key must be %d bytes, got %d", KeySize, len(key))
	}
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, fmt.Errorf("sampling: new keyed hasher: %w", err)
	}
	p := &KeyedPRNG{digest: h.Digest()}
	copy(p.key[:], key)
	return p, nil
}

// NewPRNG creates a KeyedPRNG seeded from crypto/rand — the process-scope
// CSPRNG instance that the generator's test-number modes draw from.
func NewPRNG() (*KeyedPRNG, error) {
	var key [KeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("sampling: seeding from crypto/rand: %w", err)
	}
	return NewKeyedPRNG(key[:])
}

// Read fills p with pseudorandom bytes drawn from the XOF stream,
// implementing io.Reader.
func (k *KeyedPRNG) Read(p []byte) (int, error) {
	return k.digest.Read(p)
}

// Reset rewinds the XOF stream back to its start, so the next Read
// reproduces the same bytes already emitted once.
func (k *KeyedPRNG) Reset() {
	k.digest.Reset()
}
