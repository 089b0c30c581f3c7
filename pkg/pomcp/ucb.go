package pomcp

import "math"

// SelectUCB chooses the action index maximizing UCB1 over v's QNodes,
// restricted to legal (or, if empty, all) action indices:
//
//	a* = argmax_a mean(Q(v,a)) + c*sqrt(ln(count(v)) / count(Q(v,a)))
//
// Unvisited actions (count == 0) are preferred in declaration order. If
// c == 0, this is pure greedy on mean. Ties are broken by lowest action
// index, since the loop below only replaces the incumbent on strict
// improvement.
func SelectUCB(v *VNode, legal []int, c float64) int {
	indices := legal
	if len(indices) == 0 {
		indices = fullRange(len(v.Qs))
	}

	for _, a := range indices {
		if v.Qs[a].Stats.Count() == 0 {
			return a
		}
	}

	best := indices[0]
	bestScore := math.Inf(-1)
	lnParent := math.Log(float64(v.Stats.Count()))

	for _, a := range indices {
		n := float64(v.Qs[a].Stats.Count())
		score := v.Qs[a].Stats.Mean()
		if c != 0 {
			score += c * math.Sqrt(lnParent/n)
		}
		if score > bestScore {
			bestScore = score
			best = a
		}
	}

	return best
}
