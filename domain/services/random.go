package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mathrand "math/rand"
	"time"

	"raffler/domain/interfaces"
)

// cryptoRandomSource draws uniform integers from crypto/rand. This is
// the production source for live drawings.
type cryptoRandomSource struct{}

// NewCryptoRandomSource returns a cryptographically strong random source
func NewCryptoRandomSource() interfaces.RandomSource {
	return cryptoRandomSource{}
}

func (cryptoRandomSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random bound must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return int(v.Int64()), nil
}

// seededRandomSource is a deterministic pseudo-random source for tests
// and simulations. It is NOT suitable for live drawings: outcomes are
// fully predictable from the seed.
type seededRandomSource struct {
	rng *mathrand.Rand
}

// NewSeededRandomSource returns a deterministic source seeded with the
// given value. Test use only.
func NewSeededRandomSource(seed int64) interfaces.RandomSource {
	return &seededRandomSource{rng: mathrand.New(mathrand.NewSource(seed))}
}

func (s *seededRandomSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random bound must be positive, got %d", n)
	}
	return s.rng.Intn(n), nil
}

// systemClock reads the wall clock in UTC
type systemClock struct{}

// NewSystemClock returns the production clock
func NewSystemClock() interfaces.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
