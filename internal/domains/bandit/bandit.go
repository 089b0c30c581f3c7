// Package bandit is the smallest possible pomcp.Simulator: a one-shot,
// fully observed, two-armed bandit with deterministic rewards. It carries
// no hidden state at all, so it exists purely to drive the engine with a
// minimal fixed branching factor, the same role the teacher's DummyOps
// plays for pkg/mcts's own tests.
package bandit

import "github.com/IlikeChooros/go-pomcp/pkg/pomcp"

// ArmA and ArmB are the two action indices.
const (
	ArmA = 0
	ArmB = 1
)

// Domain is a two-armed bandit where ArmReward[a] is pulled deterministically
// and the episode ends after a single pull.
type Domain struct {
	ArmReward [2]float64
}

// New returns a Domain where pulling ArmA yields highReward and ArmB yields
// lowReward.
func New(highReward, lowReward float64) *Domain {
	return &Domain{ArmReward: [2]float64{highReward, lowReward}}
}

// state is the (empty) hidden state: the bandit has nothing to hide.
type state struct{}

func (d *Domain) CreateStartState(rng *pomcp.Rand) pomcp.State { return &state{} }

func (d *Domain) Copy(s pomcp.State) pomcp.State { return &state{} }

func (d *Domain) Free(s pomcp.State) {}

func (d *Domain) Validate(s pomcp.State) bool { return true }

// Step always terminates after one pull; the observation carries no
// information since there's nothing to observe.
func (d *Domain) Step(s pomcp.State, action int, rng *pomcp.Rand) (observation int, reward float64, terminal bool) {
	return 0, d.ArmReward[action], true
}

func (d *Domain) NumActions() int      { return 2 }
func (d *Domain) NumObservations() int { return 1 }
func (d *Domain) Discount() float64    { return 1.0 }
func (d *Domain) RewardRange() float64 {
	return d.ArmReward[0] - d.ArmReward[1]
}
