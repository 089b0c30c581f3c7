package pomcp

import (
	"math/rand"
	"os"
	"strconv"
	"time"
)

// SeedGeneratorFn produces the seed used to construct an engine's random
// source. By default it reads RNG_SEED from the environment, falling back
// to the current time in nanoseconds.
var SeedGeneratorFn func() int64 = func() int64 {
	if v := os.Getenv("RNG_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// SetSeedGeneratorFn overrides the default seed source, mirroring the
// teacher's SetSeedGeneratorFn hook.
func SetSeedGeneratorFn(f func() int64) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

// Rand is the engine-owned uniform random source threaded explicitly
// through the search; no hidden process-wide generator is used.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a random source from a given seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// NewSeededRand creates a random source using SeedGeneratorFn.
func NewSeededRand() *Rand {
	return NewRand(SeedGeneratorFn())
}

// Intn returns a uniform integer in [0, n).
func (rg *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rg.r.Intn(n)
}

// Float64 returns a uniform float64 in [0, 1).
func (rg *Rand) Float64() float64 {
	return rg.r.Float64()
}

// Uint64 returns a uniform pseudo-random uint64.
func (rg *Rand) Uint64() uint64 {
	return rg.r.Uint64()
}
