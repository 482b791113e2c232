package justify

import (
	"github.com/lidrupcheck/lidrup-check/internal/checkerr"
	"github.com/lidrupcheck/lidrup-check/internal/position"
)

// markAll sets the mark bit of every literal in lits. The caller must
// unmark the same set before returning, matching the "lent" contract
// spec.md §5 places on the mark array.
func (e *Engine) markAll(lits []int32) {
	for _, lit := range lits {
		e.vars.SetMark(lit, true)
	}
}

func (e *Engine) unmarkAll(lits []int32) {
	for _, lit := range lits {
		e.vars.SetMark(lit, false)
	}
}

// HasComplementaryPair reports whether lits contains both a literal
// and its negation, per spec.md §4.6.
func (e *Engine) HasComplementaryPair(lits []int32) bool {
	e.markAll(lits)
	defer e.unmarkAll(lits)
	for _, lit := range lits {
		if e.vars.Mark(-lit) {
			return true
		}
	}
	return false
}

// CheckConsistent fails with "inconsistent line" if lits contains a
// complementary pair, used for m/v/u/f lines.
func (e *Engine) CheckConsistent(lits []int32, pos position.Position) error {
	if e.HasComplementaryPair(lits) {
		return &checkerr.CheckError{Pos: pos, Msg: "inconsistent line"}
	}
	return nil
}

// EqualSets reports whether a and b contain the same literals,
// regardless of order or duplicates, via a two-pass mark/unmark sweep.
func (e *Engine) EqualSets(a, b []int32) bool {
	e.markAll(a)
	bInA := true
	for _, lit := range b {
		if !e.vars.Mark(lit) {
			bInA = false
			break
		}
	}
	e.unmarkAll(a)
	if !bInA {
		return false
	}
	return e.Subset(a, b)
}

// Subset reports whether every literal of a also occurs in b.
func (e *Engine) Subset(a, b []int32) bool {
	e.markAll(b)
	defer e.unmarkAll(b)
	for _, lit := range a {
		if !e.vars.Mark(lit) {
			return false
		}
	}
	return true
}

// ModelSatisfiesInput reports a CheckError naming the first input
// clause the marked model fails to satisfy, if any.
func (e *Engine) ModelSatisfiesInput(model []int32, pos position.Position) error {
	e.markAll(model)
	defer e.unmarkAll(model)

	for _, c := range e.store.Inputs() {
		if c.Tautological {
			continue
		}
		satisfied := false
		for _, lit := range c.Lits {
			if e.vars.Mark(lit) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return &checkerr.CheckError{Pos: pos, Msg: "model does not satisfy input clause"}
		}
	}
	return nil
}

// FailedConsistentWithCore requires that for every literal in the
// failed-assumption set F, its negation does not occur in the core U.
func (e *Engine) FailedConsistentWithCore(failed, core []int32, pos position.Position) error {
	e.markAll(core)
	defer e.unmarkAll(core)
	for _, lit := range failed {
		if e.vars.Mark(-lit) {
			return &checkerr.CheckError{Pos: pos, Msg: "failed assumption contradicts core"}
		}
	}
	return nil
}
