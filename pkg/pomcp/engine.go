package pomcp

// Config holds every tunable of a search. Construct with DefaultConfig and
// chain the SetX methods, mirroring the teacher's Limits builder idiom.
type Config struct {
	NumSimulations      int
	MaxDepth            int
	ExplorationConstant float64
	UseRave             bool
	RaveConstant        float64
	RaveDiscount        float64
	UseTransforms       bool
	NumTransforms       int
	MaxAttempts         int
	ExpandCount         int
	ReuseTree           bool
	SmartTreeCount      int
	SmartTreeValue      float64
	UsePGS              bool
	MaxBeliefSize       int
	DebugValidate       bool
	PoolCapacity        int
}

// DefaultConfig returns a Config with conservative, RAVE/PGS/transform
// disabled defaults.
func DefaultConfig() *Config {
	return &Config{
		NumSimulations:      1000,
		MaxDepth:            100,
		ExplorationConstant: 1.0,
		RaveConstant:        0.5,
		RaveDiscount:        1.0,
		NumTransforms:       100,
		MaxAttempts:         1000,
		ExpandCount:         1,
		SmartTreeValue:      0,
		MaxBeliefSize:       1000,
		PoolCapacity:        DefaultPoolCapacity,
	}
}

func (c *Config) SetNumSimulations(n int) *Config      { c.NumSimulations = n; return c }
func (c *Config) SetMaxDepth(d int) *Config             { c.MaxDepth = d; return c }
func (c *Config) SetExplorationConstant(v float64) *Config {
	c.ExplorationConstant = v
	return c
}
func (c *Config) SetUseRave(b bool) *Config             { c.UseRave = b; return c }
func (c *Config) SetRaveConstant(v float64) *Config     { c.RaveConstant = v; return c }
func (c *Config) SetRaveDiscount(v float64) *Config     { c.RaveDiscount = v; return c }
func (c *Config) SetUseTransforms(b bool) *Config       { c.UseTransforms = b; return c }
func (c *Config) SetNumTransforms(n int) *Config        { c.NumTransforms = n; return c }
func (c *Config) SetMaxAttempts(n int) *Config          { c.MaxAttempts = n; return c }
func (c *Config) SetExpandCount(n int) *Config          { c.ExpandCount = n; return c }
func (c *Config) SetReuseTree(b bool) *Config           { c.ReuseTree = b; return c }
func (c *Config) SetSmartTree(count int, value float64) *Config {
	c.SmartTreeCount = count
	c.SmartTreeValue = value
	return c
}
func (c *Config) SetUsePGS(b bool) *Config        { c.UsePGS = b; return c }
func (c *Config) SetMaxBeliefSize(n int) *Config  { c.MaxBeliefSize = n; return c }
func (c *Config) SetDebugValidate(b bool) *Config { c.DebugValidate = b; return c }
func (c *Config) SetPoolCapacity(n int) *Config   { c.PoolCapacity = n; return c }

// Engine is a single POMCP search over one Simulator, owning a search tree
// rooted at the current belief. Not safe for concurrent use: spec mandates
// a single-threaded, deterministic-given-a-seed search with no suspension
// points within a simulation.
type Engine struct {
	sim     Simulator
	pgsSim  PGSSimulator
	cfg     *Config
	rand    *Rand
	pool    *NodePool
	root    *VNode
	history *History
	limiter *Limiter

	allActions []int
}

// NewEngine constructs an engine over sim with cfg, and populates the root
// belief with cfg.MaxBeliefSize particles drawn from the simulator's prior.
func NewEngine(sim Simulator, cfg *Config, rng *Rand) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if rng == nil {
		rng = NewSeededRand()
	}

	e := &Engine{
		sim:     sim,
		cfg:     cfg,
		rand:    rng,
		pool:    NewNodePool(cfg.PoolCapacity),
		history: NewHistory(),
		limiter: NewLimiter(),
	}
	if pgsSim, ok := sim.(PGSSimulator); ok && cfg.UsePGS {
		e.pgsSim = pgsSim
	}

	e.allActions = make([]int, sim.NumActions())
	for i := range e.allActions {
		e.allActions[i] = i
	}

	e.root = e.pool.newVNode(sim.NumActions(), cfg.SmartTreeCount, cfg.SmartTreeValue)
	for i := 0; i < cfg.MaxBeliefSize; i++ {
		s := sim.CreateStartState(rng)
		e.validateState(s, "root belief initialization")
		e.root.Belief.AddSample(s)
	}

	return e
}

// Close frees the search tree and all particles it owns, and drains the
// node recycler. The engine must not be used afterward.
func (e *Engine) Close() {
	e.root.free(e.sim, e.pool)
	e.pool.Drain()
}

// History returns the action/observation sequence from the tree's root.
func (e *Engine) History() *History {
	return e.history
}

// SampleRootState draws one particle from the root belief (or, if empty,
// the simulator's prior) for a caller driving a real episode rather than a
// simulation — e.g. a CLI experiment loop advancing the true environment.
// The caller owns the returned state and must Free it.
func (e *Engine) SampleRootState() State {
	if s, ok := e.root.Belief.CreateSample(e.sim, e.rand); ok {
		return s
	}
	return e.sim.CreateStartState(e.rand)
}

// RootBelief returns the current root's particle belief, for callers that
// want to inspect or display it (e.g. the CLI's Displayer hook). The
// engine retains ownership; callers must not Free its particles.
func (e *Engine) RootBelief() *Belief {
	return &e.root.Belief
}

// RunSingleSimulation draws one particle from the root belief (or, if
// empty, the simulator's prior) and runs one simulation from it. Exposed so
// a caller wanting wall-clock budgeting can wrap it in its own loop instead
// of using SelectActionWithLimits.
func (e *Engine) RunSingleSimulation() {
	state, ok := e.root.Belief.CreateSample(e.sim, e.rand)
	if !ok {
		state = e.sim.CreateStartState(e.rand)
	}
	e.validateState(state, "simulation start state")
	e.simulateV(state, false, e.root, 0)
	e.sim.Free(state)
}

// SelectAction runs cfg.NumSimulations simulations from the root and
// returns the recommended action.
func (e *Engine) SelectAction() int {
	for i := 0; i < e.cfg.NumSimulations; i++ {
		e.RunSingleSimulation()
	}
	return e.bestRootAction()
}

// SelectActionWithLimits runs simulations until limits exhausts (wall-clock,
// simulation count, or both), then returns the recommended action. This is
// the hook a caller wanting wall-clock budgeting over RunSingleSimulation
// uses directly, rather than going through SelectAction's fixed count.
func (e *Engine) SelectActionWithLimits(limits *Limits) int {
	e.limiter.SetLimits(limits)
	e.limiter.Reset()

	var cycles uint32
	for e.limiter.Ok(cycles) {
		e.RunSingleSimulation()
		cycles++
	}
	return e.bestRootAction()
}

// StopReason reports why the most recent SelectActionWithLimits call
// stopped.
func (e *Engine) StopReason() StopReason {
	return e.limiter.StopReason()
}

type rootCandidate struct {
	action int
	mean   float64
	count  int
}

func betterCandidate(a, b rootCandidate) bool {
	if a.mean != b.mean {
		return a.mean > b.mean
	}
	if a.count != b.count {
		return a.count > b.count
	}
	return a.action < b.action
}

func (e *Engine) bestRootAction() int {
	var best *rootCandidate
	for a := range e.root.Qs {
		n := e.root.Qs[a].Stats.Count()
		if n == 0 {
			continue
		}
		cand := rootCandidate{action: a, mean: e.root.Qs[a].Stats.Mean(), count: n}
		if best == nil || betterCandidate(cand, *best) {
			best = &cand
		}
	}
	if best == nil {
		a := e.fallbackAction()
		logRootActionFallback(a)
		return a
	}
	return best.action
}

// fallbackAction returns a uniform random legal action, used when no
// simulation ever visited any root child — e.g. NumSimulations == 0, or a
// negative MaxDepth, which makes every simulation return at the root before
// an action is selected.
func (e *Engine) fallbackAction() int {
	state := e.SampleRootState()
	defer e.sim.Free(state)

	legal := e.legalActionSet(state)
	if len(legal) == 0 {
		legal = e.allActions
	}
	return legal[e.rand.Intn(len(legal))]
}

// Update advances the engine past one real (action, observation) step,
// with reward recorded only in the external caller's bookkeeping — the
// engine's own statistics already absorbed simulated rewards during
// search. If cfg.ReuseTree is set and the corresponding child exists, it is
// promoted to the new root; otherwise a fresh root is built, taking over
// the corresponding child's particles when that child exists. Either way
// the new root's belief is topped up to MaxBeliefSize by invigoration.
func (e *Engine) Update(action, observation int, reward float64) {
	e.history.Append(action, observation)

	var newRoot *VNode
	q := &e.root.Qs[action]
	child := q.Child(observation)
	if e.cfg.ReuseTree && child != nil {
		delete(q.Children, observation)
		newRoot = child
	} else {
		newRoot = e.pool.newVNode(e.sim.NumActions(), e.cfg.SmartTreeCount, e.cfg.SmartTreeValue)
		if child != nil {
			newRoot.Belief.MoveFrom(&child.Belief)
		}
	}

	e.root.free(e.sim, e.pool)
	e.root = newRoot

	e.invigorate(observation)
}

// invigorate tops up the current root's belief to MaxBeliefSize. When
// UseTransforms is set and the simulator implements LocalMover, it first
// tries to grow the belief by perturbing existing particles into states
// consistent with the latest observation, bounded by NumTransforms
// successful insertions and MaxAttempts total accept/reject trials. Any
// remaining shortfall — including a belief left at size 0 — is filled by
// plain resampling, falling back to the simulator's prior if the belief is
// empty.
func (e *Engine) invigorate(lastObservation int) {
	if e.cfg.UseTransforms {
		if mover, ok := e.sim.(LocalMover); ok {
			needed := e.cfg.MaxBeliefSize - e.root.Belief.Size()
			if needed > e.cfg.NumTransforms {
				needed = e.cfg.NumTransforms
			}

			added, attempts := 0, 0
			for added < needed && attempts < e.cfg.MaxAttempts {
				attempts++
				particle, ok := e.root.Belief.CreateSample(e.sim, e.rand)
				if !ok {
					break
				}
				if mover.LocalMove(particle, e.history, lastObservation, e.rand) {
					e.root.Belief.AddSample(particle)
					added++
				} else {
					e.sim.Free(particle)
				}
			}
			if added < needed {
				logInvigorationShortfall(added, needed)
			}
		}
	}

	if e.root.Belief.Size() == 0 {
		logBeliefExhausted(lastObservation)
	}

	for e.root.Belief.Size() < e.cfg.MaxBeliefSize {
		if s, ok := e.root.Belief.CreateSample(e.sim, e.rand); ok {
			e.root.Belief.AddSample(s)
		} else {
			e.root.Belief.AddSample(e.sim.CreateStartState(e.rand))
		}
	}
}

// simulateV runs one simulation starting at state from v, at depth below
// the root, returning the discounted return and the list of actions taken
// at or below v (used for RAVE's AMAF credit assignment by the caller).
func (e *Engine) simulateV(state State, terminal bool, v *VNode, depth int) (float64, []int) {
	if depth > e.cfg.MaxDepth || terminal {
		return 0, nil
	}

	if v.Belief.Size() < e.cfg.MaxBeliefSize {
		v.Belief.AddSample(e.sim.Copy(state))
	}

	legal := e.legalActionSet(state)
	a := e.selectAction(v, legal)
	obs, reward, term := e.sim.Step(state, a, e.rand)
	e.validateState(state, "post-step state")

	q := &v.Qs[a]

	var R float64
	var raveBelow []int

	if v.Stats.Count() < e.cfg.ExpandCount || term {
		future := 0.0
		if !term {
			future = e.rollout(state, depth+1)
		}
		R = reward + e.sim.Discount()*future
	} else {
		child := q.Child(obs)
		if child == nil {
			child = e.pool.newVNode(e.sim.NumActions(), e.cfg.SmartTreeCount, e.cfg.SmartTreeValue)
			q.SetChild(obs, child)
		}
		var future float64
		future, raveBelow = e.simulateV(state, term, child, depth+1)
		R = reward + e.sim.Discount()*future
	}

	q.Stats.Add(R)
	v.Stats.Add(R)

	actionsHere := append([]int{a}, raveBelow...)
	if e.cfg.UseRave {
		discount := 1.0
		for _, act := range actionsHere {
			v.Qs[act].AMAF.Add(R * discount)
			discount *= e.cfg.RaveDiscount
		}
	}

	return R, actionsHere
}

// selectAction dispatches to UCB1 or RAVE-mixed UCB1 according to cfg.
func (e *Engine) selectAction(v *VNode, legal []int) int {
	if e.cfg.UseRave {
		return SelectRAVE(v, legal, e.cfg.ExplorationConstant, e.cfg.RaveConstant)
	}
	return SelectUCB(v, legal, e.cfg.ExplorationConstant)
}

// legalActionSet returns the simulator's legal (or PGS-legal) action set
// for state, or nil to mean "use the full action space" — spec's resolution
// for an empty legal set at selection time.
func (e *Engine) legalActionSet(state State) []int {
	if e.cfg.UsePGS && e.pgsSim != nil {
		if legal := e.pgsSim.PGSLegal(state, e.history); len(legal) > 0 {
			return legal
		}
		return nil
	}
	if lg, ok := e.sim.(LegalGenerator); ok {
		if legal := lg.GenerateLegal(state, e.history); len(legal) > 0 {
			return legal
		}
	}
	return nil
}

// rollout runs a random (or preferred, or PGS-scored) playout from state
// for up to MaxDepth-depth further steps, returning its discounted return.
func (e *Engine) rollout(state State, depth int) float64 {
	usePGS := e.cfg.UsePGS && e.pgsSim != nil

	var potential float64
	if usePGS {
		potential = e.pgsSim.Potential(state)
	}

	total := 0.0
	discount := 1.0
	remaining := e.cfg.MaxDepth - depth

	for step := 0; step < remaining; step++ {
		actions := e.rolloutActions(state, usePGS)
		if len(actions) == 0 {
			break
		}
		a := actions[e.rand.Intn(len(actions))]
		_, reward, terminal := e.sim.Step(state, a, e.rand)

		increment := reward
		if usePGS {
			newPotential := e.pgsSim.Potential(state)
			increment = newPotential - potential
			potential = newPotential
		}

		total += discount * increment
		discount *= e.sim.Discount()

		if terminal {
			break
		}
	}

	return total
}

func (e *Engine) rolloutActions(state State, usePGS bool) []int {
	if usePGS {
		if legal := e.pgsSim.PGSLegal(state, e.history); len(legal) > 0 {
			return legal
		}
		return e.allActions
	}
	if pg, ok := e.sim.(PreferredGenerator); ok {
		if pref := pg.GeneratePreferred(state, e.history); len(pref) > 0 {
			return pref
		}
	}
	if lg, ok := e.sim.(LegalGenerator); ok {
		if legal := lg.GenerateLegal(state, e.history); len(legal) > 0 {
			return legal
		}
	}
	return e.allActions
}
