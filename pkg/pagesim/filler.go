package pagesim

import (
	"math/rand/v2"
	"time"
)

// Filler produces the simulated contents of a new process.
// Contents carry no meaning; they only make frames visibly occupied.
type Filler interface {
	Fill(p []byte)
}

// FillerFunc adapts a function to Filler.
type FillerFunc func(p []byte)

// Fill calls f(p).
func (f FillerFunc) Fill(p []byte) { f(p) }

// RandomFiller fills with uniformly random bytes.
type RandomFiller struct {
	rng *rand.Rand
}

// NewRandomFiller returns a filler seeded with seed, or from the clock when
// seed is zero.
func NewRandomFiller(seed uint64) *RandomFiller {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomFiller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Fill writes len(p) random bytes.
func (r *RandomFiller) Fill(p []byte) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
}
