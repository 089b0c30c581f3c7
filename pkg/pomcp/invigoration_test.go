package pomcp

import "testing"

// coinState hides a single boolean; Step always terminates so only Update's
// invigoration path is under test here, not multi-step search.
type coinState struct {
	heads bool
}

type coinDomain struct{}

func (coinDomain) CreateStartState(rng *Rand) State { return &coinState{heads: rng.Float64() < 0.5} }
func (coinDomain) Copy(s State) State {
	c := s.(*coinState)
	return &coinState{heads: c.heads}
}
func (coinDomain) Free(s State)          {}
func (coinDomain) Validate(s State) bool { return true }
func (coinDomain) Step(s State, action int, rng *Rand) (int, float64, bool) {
	c := s.(*coinState)
	if c.heads {
		return 0, 1.0, true
	}
	return 1, 0.0, true
}
func (coinDomain) NumActions() int      { return 1 }
func (coinDomain) NumObservations() int { return 2 }
func (coinDomain) Discount() float64    { return 1.0 }
func (coinDomain) RewardRange() float64 { return 1.0 }

// LocalMove always rejects, simulating a domain where no particle consistent
// with an "impossible" observation can ever be manufactured by perturbation.
func (coinDomain) LocalMove(s State, h *History, lastObservation int, rng *Rand) bool {
	return false
}

func TestInvigorationFallsBackToStartStateWhenExhausted(t *testing.T) {
	sim := coinDomain{}
	cfg := DefaultConfig().
		SetNumSimulations(1).
		SetMaxBeliefSize(100).
		SetUseTransforms(true).
		SetNumTransforms(100).
		SetMaxAttempts(50)
	e := NewEngine(sim, cfg, NewRand(11))
	defer e.Close()

	// Force the root belief empty, as if re-rooting onto a child that was
	// never visited during search landed on an "impossible" observation.
	e.root.Belief = Belief{}

	e.invigorate(0)

	if e.root.Belief.Size() != cfg.MaxBeliefSize {
		t.Fatalf("expected invigoration to refill the belief to MaxBeliefSize via CreateStartState, got %d", e.root.Belief.Size())
	}
}
