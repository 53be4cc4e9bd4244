package gen

import "math/rand"

// A Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Rand is the single PRNG stream shared by every generation stage.
// All draws go through Pick, so the sequence of draws for a given seed is fixed.
type Rand struct {
	seed    int64
	src     Source
	newSrc  func(seed int64) Source
	nbDraws int
}

func mathSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewRand returns a stream seeded with seed.
func NewRand(seed int64) *Rand {
	return NewRandFrom(seed, mathSource)
}

// NewRandFrom returns a stream whose sources are built by newSrc.
// newSrc is called once now and once per Reset.
func NewRandFrom(seed int64, newSrc func(seed int64) Source) *Rand {
	return &Rand{seed: seed, src: newSrc(seed), newSrc: newSrc}
}

// Seed returns the seed the stream was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// Draws returns the number of draws taken since the last reset.
func (r *Rand) Draws() int {
	return r.nbDraws
}

// Pick returns a uniform integer in [from, to].
// A draw is consumed even when from == to.
func (r *Rand) Pick(from, to int) int {
	if from > to {
		panic("gen: invalid pick range")
	}
	r.nbDraws++
	return from + r.src.Intn(to-from+1)
}

// Sign returns 1 or -1 with equal probability.
func (r *Rand) Sign() int {
	if r.Pick(31, 32) == 32 {
		return -1
	}
	return 1
}

// Reset restarts the stream from its original seed.
// It is the checkpoint between option fuzzing and structure sampling:
// whatever was drawn before, the draws that follow are the same.
func (r *Rand) Reset() {
	r.src = r.newSrc(r.seed)
	r.nbDraws = 0
}
