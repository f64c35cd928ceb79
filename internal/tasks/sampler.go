package tasks

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"

	"github.com/desertthunder/memegacha/internal/models"
)

// RandomSource draws uniform integers in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// NewRandomSource returns a PCG source seeded from crypto/rand.
func NewRandomSource() RandomSource {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:])))
}

// NewSeededSource returns a reproducible source for tests and simulations.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// PickRandomUnseen returns a uniformly chosen entry whose title is not in seen.
//
// It reports false when no such entry exists, including when entries is empty.
func PickRandomUnseen(entries []models.Entry, seen *models.SeenSet, rng RandomSource) (models.Entry, bool) {
	pool := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if !seen.Has(e.Title) {
			pool = append(pool, e)
		}
	}

	if len(pool) == 0 {
		return models.Entry{}, false
	}

	return pool[rng.IntN(len(pool))], true
}
