package pomcp

// Belief is an unordered multiset of hidden-state particles. It owns every
// state it holds: the only legal way to dispose of a particle is to route
// it through a Belief's Free, or to transfer ownership via MoveFrom.
type Belief struct {
	particles []State
}

// NewBelief returns an empty belief with room reserved for capacity
// particles.
func NewBelief(capacity int) *Belief {
	return &Belief{particles: make([]State, 0, capacity)}
}

// AddSample takes ownership of a state and adds it to the multiset.
func (b *Belief) AddSample(s State) {
	b.particles = append(b.particles, s)
}

// Size returns the number of particles currently held.
func (b *Belief) Size() int {
	return len(b.particles)
}

// At returns the particle at index i without transferring ownership,
// for iteration.
func (b *Belief) At(i int) State {
	return b.particles[i]
}

// CreateSample draws a particle uniformly with replacement and returns a
// fresh copy owned by the caller, leaving the belief untouched.
func (b *Belief) CreateSample(sim Simulator, rng *Rand) (State, bool) {
	if len(b.particles) == 0 {
		return nil, false
	}
	idx := rng.Intn(len(b.particles))
	return sim.Copy(b.particles[idx]), true
}

// MoveFrom transfers ownership of every particle in other to b, leaving
// other empty.
func (b *Belief) MoveFrom(other *Belief) {
	b.particles = append(b.particles, other.particles...)
	other.particles = other.particles[:0]
}

// Free releases every particle via the simulator and empties the belief.
func (b *Belief) Free(sim Simulator) {
	for _, s := range b.particles {
		sim.Free(s)
	}
	b.particles = b.particles[:0]
}
