// Package rockline is a one-dimensional simplification of the RockSample
// POMDP (Smith & Simmons 2004), itself the ancestor of the "cellar" domain
// this planner's test domains are grounded on: an agent moves along a
// corridor of cells, some of which hold a rock whose value (good or bad)
// is hidden and must be inferred by noisy checking before deciding whether
// to sample it.
package rockline

import (
	"fmt"
	"io"
	"math"

	"github.com/IlikeChooros/go-pomcp/pkg/pomcp"
)

// Action indices. West/East/Sample are fixed; Check0.. follow, one per rock.
const (
	West   = 0
	East   = 1
	Sample = 2
	checkBase = 3
)

// Observation indices.
const (
	ObsNone = 0
	ObsGood = 1
	ObsBad  = 2
)

const (
	stepPenalty   = -1.0
	sampleReward  = 10.0
	sampleBadCost = -10.0
	exitReward    = 10.0
)

// Domain is a corridor of Length cells (0..Length-1, exit east of
// Length-1) holding len(RockPos) rocks at fixed, known positions. A
// HalfEfficiencyDist of zero (or less) models a perfect sensor: Check is
// always correct regardless of distance.
type Domain struct {
	Length             int
	RockPos            []int
	HalfEfficiencyDist float64
	Start              int
}

// New returns a Domain of the given corridor length with rocks at the given
// (fixed, known) positions, the agent starting at cell 0.
func New(length int, rockPos []int) *Domain {
	return &Domain{Length: length, RockPos: rockPos, HalfEfficiencyDist: 2.0}
}

func (d *Domain) numRocks() int { return len(d.RockPos) }

// State is the hidden world configuration: the agent's known position plus
// each rock's hidden value and collected flag.
type State struct {
	Pos       int
	Valuable  []bool
	Collected []bool
}

func (d *Domain) rockAt(pos int) int {
	for i, p := range d.RockPos {
		if p == pos {
			return i
		}
	}
	return -1
}

func (d *Domain) CreateStartState(rng *pomcp.Rand) pomcp.State {
	s := &State{
		Pos:       d.Start,
		Valuable:  make([]bool, d.numRocks()),
		Collected: make([]bool, d.numRocks()),
	}
	for i := range s.Valuable {
		s.Valuable[i] = rng.Float64() < 0.5
	}
	return s
}

func (d *Domain) Copy(s pomcp.State) pomcp.State {
	src := s.(*State)
	dst := &State{
		Pos:       src.Pos,
		Valuable:  append([]bool(nil), src.Valuable...),
		Collected: append([]bool(nil), src.Collected...),
	}
	return dst
}

func (d *Domain) Free(s pomcp.State) {}

func (d *Domain) Validate(s pomcp.State) bool {
	st := s.(*State)
	if st.Pos < 0 || st.Pos > d.Length {
		return false
	}
	return len(st.Valuable) == d.numRocks() && len(st.Collected) == d.numRocks()
}

// Step implements movement, sampling, and noisy rock checks. Checking a
// rock's value gets more reliable the closer the agent is to it, via the
// same exponential efficiency curve as the RockSample original.
func (d *Domain) Step(s pomcp.State, action int, rng *pomcp.Rand) (observation int, reward float64, terminal bool) {
	st := s.(*State)

	switch {
	case action == West:
		if st.Pos > 0 {
			st.Pos--
		}
		return ObsNone, stepPenalty, false

	case action == East:
		st.Pos++
		if st.Pos >= d.Length {
			return ObsNone, exitReward, true
		}
		return ObsNone, stepPenalty, false

	case action == Sample:
		idx := d.rockAt(st.Pos)
		if idx < 0 || st.Collected[idx] {
			return ObsNone, sampleBadCost, false
		}
		st.Collected[idx] = true
		if st.Valuable[idx] {
			return ObsNone, sampleReward, false
		}
		return ObsNone, sampleBadCost, false

	default:
		idx := action - checkBase
		obs := d.checkObservation(st, idx, rng)
		return obs, stepPenalty, false
	}
}

// checkObservation returns a noisy reading of rock idx's value, correct
// with probability that decays with distance from the agent.
func (d *Domain) checkObservation(st *State, idx int, rng *pomcp.Rand) int {
	if idx < 0 || idx >= d.numRocks() {
		return ObsNone
	}
	correctProb := 1.0
	if d.HalfEfficiencyDist > 0 {
		dist := math.Abs(float64(st.Pos - d.RockPos[idx]))
		efficiency := math.Exp(-dist / d.HalfEfficiencyDist)
		correctProb = 0.5 + 0.5*efficiency
	}

	correct := rng.Float64() < correctProb
	valuable := st.Valuable[idx]
	if !correct {
		valuable = !valuable
	}
	if valuable {
		return ObsGood
	}
	return ObsBad
}

func (d *Domain) NumActions() int      { return checkBase + d.numRocks() }
func (d *Domain) NumObservations() int { return 3 }
func (d *Domain) Discount() float64    { return 0.95 }
func (d *Domain) RewardRange() float64 { return exitReward - sampleBadCost }

// GenerateLegal excludes West at the left wall, Sample off a rock tile or
// over an already-collected one, and Check of an already-collected rock.
func (d *Domain) GenerateLegal(s pomcp.State, h *pomcp.History) []int {
	st := s.(*State)
	legal := make([]int, 0, d.NumActions())

	if st.Pos > 0 {
		legal = append(legal, West)
	}
	legal = append(legal, East)

	if idx := d.rockAt(st.Pos); idx >= 0 && !st.Collected[idx] {
		legal = append(legal, Sample)
	}
	for i := range st.Collected {
		if !st.Collected[i] {
			legal = append(legal, checkBase+i)
		}
	}
	return legal
}

// GeneratePreferred samples a known-valuable rock underfoot, otherwise
// moves toward the nearest uncollected rock (checking it when already
// standing on it), otherwise heads east to exit.
func (d *Domain) GeneratePreferred(s pomcp.State, h *pomcp.History) []int {
	st := s.(*State)

	if idx := d.rockAt(st.Pos); idx >= 0 && !st.Collected[idx] && st.Valuable[idx] {
		return []int{Sample}
	}

	nearest := -1
	for i, p := range d.RockPos {
		if st.Collected[i] {
			continue
		}
		if nearest == -1 || math.Abs(float64(p-st.Pos)) < math.Abs(float64(d.RockPos[nearest]-st.Pos)) {
			nearest = i
		}
	}
	if nearest == -1 {
		return []int{East}
	}
	if d.RockPos[nearest] < st.Pos {
		return []int{West}
	}
	if d.RockPos[nearest] > st.Pos {
		return []int{East}
	}
	return []int{checkBase + nearest}
}

// Potential is the PGS potential function Φ(s): the negative distance to
// the nearest uncollected valuable rock, or the agent's own position once
// no valuable rock remains (higher position, closer to the exit, scores
// higher). Grounded on cellar.h's potential shaping the rollout uses in
// place of raw reward.
func (d *Domain) Potential(s pomcp.State) float64 {
	st := s.(*State)

	best := -1.0
	found := false
	for i, p := range d.RockPos {
		if st.Collected[i] || !st.Valuable[i] {
			continue
		}
		dist := math.Abs(float64(p - st.Pos))
		if !found || dist < best {
			best = dist
			found = true
		}
	}
	if !found {
		return float64(st.Pos)
	}
	return -best
}

// PGSLegal prunes the certainly-harmful action from GenerateLegal's set:
// sampling the rock underfoot when it is known (from the true simulated
// state) to be worthless.
func (d *Domain) PGSLegal(s pomcp.State, h *pomcp.History) []int {
	st := s.(*State)
	legal := d.GenerateLegal(s, h)

	idx := d.rockAt(st.Pos)
	if idx < 0 || st.Collected[idx] || st.Valuable[idx] {
		return legal
	}

	pruned := make([]int, 0, len(legal))
	for _, a := range legal {
		if a != Sample {
			pruned = append(pruned, a)
		}
	}
	return pruned
}

// LocalMove perturbs one rock's hidden value and accepts the move only if
// replaying the check that produced lastObservation against the new
// hypothesis would plausibly have produced the same reading. Only
// Check actions carry enough information to drive a meaningful perturbation;
// any other last action is rejected outright.
func (d *Domain) LocalMove(s pomcp.State, h *pomcp.History, lastObservation int, rng *pomcp.Rand) bool {
	st := s.(*State)

	last, ok := h.Back(0)
	if !ok || last.Action < checkBase {
		return false
	}
	checkedIdx := last.Action - checkBase
	if checkedIdx < 0 || checkedIdx >= d.numRocks() {
		return false
	}

	target := rng.Intn(d.numRocks())
	st.Valuable[target] = !st.Valuable[target]

	replay := d.checkObservation(st, checkedIdx, rng)
	return replay == lastObservation
}

func (d *Domain) DisplayState(w io.Writer, s pomcp.State) {
	st := s.(*State)
	fmt.Fprintf(w, "pos=%d collected=%v valuable=%v\n", st.Pos, st.Collected, st.Valuable)
}

func (d *Domain) DisplayObservation(w io.Writer, s pomcp.State, obs int) {
	names := map[int]string{ObsNone: "none", ObsGood: "good", ObsBad: "bad"}
	fmt.Fprintln(w, names[obs])
}

func (d *Domain) DisplayAction(w io.Writer, action int) {
	switch action {
	case West:
		fmt.Fprintln(w, "west")
	case East:
		fmt.Fprintln(w, "east")
	case Sample:
		fmt.Fprintln(w, "sample")
	default:
		fmt.Fprintf(w, "check(%d)\n", action-checkBase)
	}
}

// DisplayBelief prints, per rock, the fraction of particles in b that
// believe it is valuable.
func (d *Domain) DisplayBelief(w io.Writer, b *pomcp.Belief) {
	n := b.Size()
	if n == 0 {
		fmt.Fprintln(w, "belief: empty")
		return
	}

	valuable := make([]int, d.numRocks())
	for i := 0; i < n; i++ {
		st := b.At(i).(*State)
		for r, v := range st.Valuable {
			if v {
				valuable[r]++
			}
		}
	}

	fmt.Fprintf(w, "belief (n=%d):", n)
	for r, count := range valuable {
		fmt.Fprintf(w, " rock%d=%.2f", r, float64(count)/float64(n))
	}
	fmt.Fprintln(w)
}
