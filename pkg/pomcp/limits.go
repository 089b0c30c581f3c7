package pomcp

import "math"

// Limits bounds one call to SelectActionWithLimits: a wall-clock budget, a
// simulation-count budget, or both. Construct with DefaultLimits and chain
// the SetX methods, mirroring the teacher's builder idiom.
type Limits struct {
	Cycles   uint32
	Movetime int
	Infinite bool
}

const (
	DefaultCyclesLimit   uint32 = math.MaxInt32*2 + 1
	DefaultMovetimeLimit int    = -1
)

// DefaultLimits returns an unbounded Limits value.
func DefaultLimits() *Limits {
	return &Limits{
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
	}
}

// SetCycles bounds the number of simulations run.
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = cycles
	l.Infinite = false
	return l
}

// SetMovetime bounds the wall-clock time spent, in milliseconds.
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

// SetInfinite marks the search unbounded, ignoring whatever Cycles/Movetime
// happen to be set to.
func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}
