package pomcp

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// validateState calls the simulator's Validate hook when debug validation
// is enabled, panicking on a rejection. When disabled the hook is never
// called, which is equivalent to tolerating a violation silently but
// cheaper.
func (e *Engine) validateState(s State, context string) {
	if !e.cfg.DebugValidate {
		return
	}
	if !e.sim.Validate(s) {
		panic(fmt.Sprintf("pomcp: invariant violation: %s", context))
	}
}

func logBeliefExhausted(observation int) {
	log.Warn().
		Int("observation", observation).
		Msg("pomcp: root belief exhausted after re-rooting, resampling from prior")
}

func logInvigorationShortfall(added, needed int) {
	log.Warn().
		Int("added", added).
		Int("needed", needed).
		Msg("pomcp: particle invigoration exhausted its attempt budget before reaching target")
}

func logRootActionFallback(action int) {
	log.Debug().
		Int("action", action).
		Msg("pomcp: no root child was ever visited, falling back to a uniform random legal action")
}
