package pomcp

import "testing"

// bandit is a minimal in-package fixture mirroring internal/domains/bandit,
// kept local so pkg/pomcp's tests don't depend on internal packages.
type bandit struct {
	reward [2]float64
}

type banditState struct{}

func (b *bandit) CreateStartState(rng *Rand) State { return &banditState{} }
func (b *bandit) Copy(s State) State               { return &banditState{} }
func (b *bandit) Free(s State)                     {}
func (b *bandit) Validate(s State) bool            { return true }
func (b *bandit) Step(s State, action int, rng *Rand) (int, float64, bool) {
	return 0, b.reward[action], true
}
func (b *bandit) NumActions() int      { return 2 }
func (b *bandit) NumObservations() int { return 1 }
func (b *bandit) Discount() float64    { return 1.0 }
func (b *bandit) RewardRange() float64 { return b.reward[0] - b.reward[1] }

func TestSelectActionConvergesToHigherRewardArm(t *testing.T) {
	sim := &bandit{reward: [2]float64{1.0, -1.0}}
	cfg := DefaultConfig().SetNumSimulations(500).SetMaxBeliefSize(10)
	e := NewEngine(sim, cfg, NewRand(7))
	defer e.Close()

	a := e.SelectAction()
	if a != 0 {
		t.Fatalf("expected the higher-reward arm (0) to be selected, got %d", a)
	}
	if e.root.Qs[0].Stats.Count()+e.root.Qs[1].Stats.Count() != cfg.NumSimulations {
		t.Fatalf("expected root visit counts to sum to NumSimulations")
	}
}

func TestStatisticInvariant(t *testing.T) {
	var s Statistic
	s.Add(2)
	s.Add(4)
	s.Add(6)
	if s.Count() != 3 {
		t.Fatalf("expected count 3, got %d", s.Count())
	}
	if got, want := s.Mean(), 4.0; got != want {
		t.Fatalf("expected mean %v, got %v", want, got)
	}
	if got, want := s.Total(), s.Mean()*float64(s.Count()); got != want {
		t.Fatalf("invariant violated: total %v != mean*count %v", got, want)
	}
	if s.Max() < s.Mean() || s.Mean() < s.Min() {
		t.Fatalf("invariant violated: expected max (%v) >= mean (%v) >= min (%v)", s.Max(), s.Mean(), s.Min())
	}
	if got, want := s.Max(), 6.0; got != want {
		t.Fatalf("expected max %v, got %v", want, got)
	}
	if got, want := s.Min(), 2.0; got != want {
		t.Fatalf("expected min %v, got %v", want, got)
	}
}

// TestSubtractPeelsOffASample checks that Subtract exactly undoes the
// effect of the Add it cancels, restoring count/mean as if the sample had
// never been recorded — the primitive for retracting a single back-up.
func TestSubtractPeelsOffASample(t *testing.T) {
	var s Statistic
	s.Add(2)
	s.Add(4)

	var want Statistic
	want.Add(2)
	want.Add(4)

	s.Add(10)
	s.Subtract(10)

	if s.Count() != want.Count() {
		t.Fatalf("expected count %d after peeling off the added sample, got %d", want.Count(), s.Count())
	}
	if s.Total() != want.Total() {
		t.Fatalf("expected total %v after peeling off the added sample, got %v", want.Total(), s.Total())
	}
	if s.Mean() != want.Mean() {
		t.Fatalf("expected mean %v after peeling off the added sample, got %v", want.Mean(), s.Mean())
	}
}

func TestHistoryAppendAndTruncate(t *testing.T) {
	h := NewHistory()
	h.Append(1, 2)
	h.Append(3, 4)
	if h.Size() != 2 {
		t.Fatalf("expected size 2, got %d", h.Size())
	}
	last, ok := h.Back(0)
	if !ok || last.Action != 3 || last.Observation != 4 {
		t.Fatalf("unexpected last entry: %+v", last)
	}
	h.Truncate(1)
	if h.Size() != 1 {
		t.Fatalf("expected size 1 after truncate, got %d", h.Size())
	}
}

func TestUpdateWithoutReuseRebuildsFreshRoot(t *testing.T) {
	sim := &bandit{reward: [2]float64{1.0, -1.0}}
	cfg := DefaultConfig().SetNumSimulations(50).SetMaxBeliefSize(20).SetReuseTree(false)
	e := NewEngine(sim, cfg, NewRand(3))
	defer e.Close()

	e.SelectAction()
	e.Update(0, 0, 1.0)

	if e.root.Belief.Size() != cfg.MaxBeliefSize {
		t.Fatalf("expected a fresh root's belief to be topped up to MaxBeliefSize, got %d", e.root.Belief.Size())
	}
	if e.history.Size() != 1 {
		t.Fatalf("expected history size 1 after one Update, got %d", e.history.Size())
	}
}

func TestBestRootActionTieBreaksOnVisitCountThenIndex(t *testing.T) {
	v := &VNode{Qs: make([]QNode, 2)}
	v.Qs[0].initialize(0, 0, 0)
	v.Qs[1].initialize(1, 0, 0)
	v.Qs[0].Stats.Add(1.0)
	v.Qs[1].Stats.Add(1.0)
	v.Qs[1].Stats.Add(1.0)

	cand0 := rootCandidate{action: 0, mean: v.Qs[0].Stats.Mean(), count: v.Qs[0].Stats.Count()}
	cand1 := rootCandidate{action: 1, mean: v.Qs[1].Stats.Mean(), count: v.Qs[1].Stats.Count()}
	if !betterCandidate(cand1, cand0) {
		t.Fatalf("expected the action with more (tied-mean) visits to win the tie-break")
	}
}
