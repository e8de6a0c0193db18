package synth

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream is the fixed stream constant for the PCG source. Reseeding with
// the same seed must replay the exact same sample sequence.
const pcgStream = 0x9E3779B97F4A7C15

// Sampler produces independent standard-normal deviates (mean 0, stddev 1)
// from a seeded deterministic source.
type Sampler struct {
	normal distuv.Normal
}

// NewSampler returns a Sampler seeded with seed.
func NewSampler(seed int64) *Sampler {
	s := &Sampler{}
	s.Seed(seed)
	return s
}

// Seed resets the generator to a deterministic state. Two samplers seeded
// with the same value produce identical sequences.
func (s *Sampler) Seed(seed int64) {
	s.normal = distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(uint64(seed), pcgStream)}
}

// Next returns one sample from the standard normal distribution.
func (s *Sampler) Next() float64 {
	return s.normal.Rand()
}
