package systems

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws uniform values for the randomized streak fields. All
// randomness in the animation goes through this seam so tests can inject a
// deterministic implementation.
type Sampler interface {
	// Uniform returns a value drawn uniformly from [min, max].
	Uniform(min, max float64) float64
}

// UniformSampler is the production Sampler backed by a seeded PCG source.
type UniformSampler struct {
	src rand.Source
}

// NewSampler creates a sampler seeded with the given value.
func NewSampler(seed uint64) *UniformSampler {
	return &UniformSampler{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// Uniform draws from [min, max]. A degenerate range returns min.
func (s *UniformSampler) Uniform(min, max float64) float64 {
	if min >= max {
		return min
	}
	u := distuv.Uniform{Min: min, Max: max, Src: s.src}
	return u.Rand()
}
