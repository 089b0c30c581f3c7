package pomcp

import "math"

// Rapid Action Value Estimation (RAVE) selection and backup.
// Reference: https://en.wikipedia.org/wiki/Monte_Carlo_tree_search#Improvements
//
// AMAF credits an action at a QNode with the outcome of every simulation
// that played that action anywhere at or below the node, not just the
// simulations that played it immediately. This converges faster on
// domains with many transposable action orderings, at the cost of bias
// the RaveBeta mixing weight is meant to anneal away as real visits
// accumulate.

// RaveBeta is the mixing weight between the real value estimate and the
// AMAF estimate, close to one for few real visits and to zero as real
// visits dominate. Mirrors the teacher's RaveDSilver function, generalized
// to a configurable constant instead of a hardcoded b=0.5.
func RaveBeta(visits, playoutsContainingMove int, raveConstant float64) float64 {
	if playoutsContainingMove <= 0 {
		return 0
	}
	b := raveConstant
	factor := 4 * b * b
	n, pcm := float64(visits), float64(playoutsContainingMove)
	return pcm / (n + pcm + factor*n*pcm)
}

// SelectRAVE chooses an action index mixing UCB1 with the AMAF estimate,
// restricted to legal (or, if empty, all) action indices. Unvisited
// actions are preferred in declaration order, same tie-break as SelectUCB.
func SelectRAVE(v *VNode, legal []int, explorationConstant, raveConstant float64) int {
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
		q := &v.Qs[a]
		n := q.Stats.Count()
		score := q.Stats.Mean()

		if pcm := q.AMAF.Count(); pcm > 0 {
			b := RaveBeta(n, pcm, raveConstant)
			score = (1-b)*score + b*q.AMAF.Mean()
		}

		if explorationConstant != 0 {
			score += explorationConstant * math.Sqrt(lnParent/float64(n))
		}

		if score > bestScore {
			bestScore = score
			best = a
		}
	}

	return best
}

func fullRange(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}
