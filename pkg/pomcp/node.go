package pomcp

// QNode is a per-action node under a VNode. It holds two statistics —
// value (the Monte Carlo return estimate) and AMAF (the all-moves-as-first
// return estimate, used only when RAVE is enabled) — and a sparse map of
// child VNodes indexed by observation integer. Missing observation slots
// are created lazily on first visit.
type QNode struct {
	Stats    Statistic
	AMAF     Statistic
	Action   int
	Children map[int]*VNode
}

func (q *QNode) initialize(action int, priorCount int, priorValue float64) {
	q.Stats.Clear()
	q.Stats.SetPrior(priorCount, priorValue)
	q.AMAF.Clear()
	q.Action = action
	q.Children = nil
}

// Child returns the VNode for a given observation, or nil if absent.
func (q *QNode) Child(observation int) *VNode {
	if q.Children == nil {
		return nil
	}
	return q.Children[observation]
}

// SetChild installs v as the child for a given observation.
func (q *QNode) SetChild(observation int, v *VNode) {
	if q.Children == nil {
		q.Children = make(map[int]*VNode)
	}
	q.Children[observation] = v
}

// VNode is an observation/belief node. It holds one statistic (its
// backed-up value), a particle belief, and a fixed-length array of QNodes
// — one per legal action in the domain's full action space. Invariant:
// len(Qs) == simulator.NumActions(); Belief.Size() <= the configured max.
type VNode struct {
	Stats  Statistic
	Belief Belief
	Qs     []QNode
}

// newVNode allocates (or recycles) a VNode sized for numActions. priorCount
// and priorValue seed every QNode's value statistic (Config.SmartTreeCount/
// SmartTreeValue) so a freshly created node starts with a pseudo-sample
// instead of a cold mean of zero.
func (pool *NodePool) newVNode(numActions int, priorCount int, priorValue float64) *VNode {
	v := pool.vnodes.Get()
	v.initialize(numActions, priorCount, priorValue)
	return v
}

// initialize resets the node's statistics and sizes its QNode array to
// numActions, one QNode per legal action.
func (v *VNode) initialize(numActions int, priorCount int, priorValue float64) {
	v.Stats.Clear()
	v.Belief = Belief{}
	if cap(v.Qs) >= numActions {
		v.Qs = v.Qs[:numActions]
	} else {
		v.Qs = make([]QNode, numActions)
	}
	for a := range v.Qs {
		v.Qs[a].initialize(a, priorCount, priorValue)
	}
}

// free releases this VNode and recursively all children and particles,
// returning the node (and its QNodes) to pool.
func (v *VNode) free(sim Simulator, pool *NodePool) {
	v.Belief.Free(sim)
	for i := range v.Qs {
		for _, child := range v.Qs[i].Children {
			child.free(sim, pool)
		}
		v.Qs[i].Children = nil
		v.Qs[i].Stats.Clear()
		v.Qs[i].AMAF.Clear()
	}
	v.Qs = v.Qs[:0]
	v.Stats.Clear()
	pool.vnodes.Put(v)
}

// VisitedChildren reports the count of QNodes under v with at least one
// real visit.
func (v *VNode) VisitedChildren() int {
	n := 0
	for i := range v.Qs {
		if v.Qs[i].Stats.Count() > 0 {
			n++
		}
	}
	return n
}
