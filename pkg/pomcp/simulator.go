package pomcp

import "io"

// State is opaque to the engine: a domain-defined hidden world
// configuration. The engine only ever copies, frees, creates, steps, and
// validates a state through the Simulator contract below, and never
// introspects its contents.
type State = any

// Simulator is the abstract domain interface consumed by the engine.
// A conforming domain is a value of this shape; the engine is generic
// over it, the same way the teacher's GameOperations capability record
// replaces inheritance-based dispatch.
type Simulator interface {
	// CreateStartState returns a new state sampled from the prior.
	CreateStartState(rng *Rand) State
	// Copy returns a deep, independently-owned copy of s.
	Copy(s State) State
	// Free releases a state previously returned by Copy or
	// CreateStartState. Every Copy/CreateStartState call must be paired
	// with exactly one Free.
	Free(s State)
	// Validate checks the legality of s for the current history. Only
	// called when debug validation is enabled; a false return is a
	// non-fatal invariant violation in release builds.
	Validate(s State) bool
	// Step advances state in place for the given action, returning the
	// resulting observation, reward, and whether the episode terminated.
	Step(s State, action int, rng *Rand) (observation int, reward float64, terminal bool)

	NumActions() int
	NumObservations() int
	Discount() float64
	RewardRange() float64
}

// LegalGenerator is an optional Simulator capability returning the set of
// action indices legal from s. A nil or empty result means "use the full
// action space".
type LegalGenerator interface {
	GenerateLegal(s State, h *History) []int
}

// PreferredGenerator is an optional Simulator capability biasing rollout
// action choice. A nil or empty result means "no preference".
type PreferredGenerator interface {
	GeneratePreferred(s State, h *History) []int
}

// LocalMover is an optional Simulator capability used by particle
// invigoration: it mutates state into another hidden configuration
// consistent with the history, reporting whether the proposal is
// acceptable.
type LocalMover interface {
	LocalMove(s State, h *History, lastObservation int, rng *Rand) bool
}

// PGSSimulator is the optional Preferred Generator Search capability
// group: a potential function Φ(state) plus a legality filter that prunes
// certainly-harmful actions. The engine never computes Φ itself; it only
// calls into these hooks when Config.UsePGS is set.
type PGSSimulator interface {
	Simulator
	// Potential returns Φ(s), a domain-defined score used in place of raw
	// reward for PGS rollouts.
	Potential(s State) float64
	// PGSLegal returns the legal set pruned of actions the potential
	// function marks as certainly harmful (e.g. redundant sensing,
	// pushing into a known-static obstacle).
	PGSLegal(s State, h *History) []int
}

// Displayer is an optional, correctness-irrelevant capability a Simulator
// may implement for human-readable dumps of states, observations, actions,
// and beliefs.
type Displayer interface {
	DisplayState(w io.Writer, s State)
	DisplayObservation(w io.Writer, s State, obs int)
	DisplayAction(w io.Writer, action int)
	DisplayBelief(w io.Writer, b *Belief)
}
