// Package justify implements the trail-based RUP/resolution
// justification engine and the consistency-check predicates that sit
// on top of the shared mark array (spec.md §4.5/§4.6). It is grounded
// directly on check_implied and the mark/unmark helpers of the
// original checker; nothing in the retrieval pack offers this
// algorithm as a library, and spec.md's Non-goals forbid delegating
// the check itself to any SAT solver.
package justify

import (
	"github.com/lidrupcheck/lidrup-check/internal/checkerr"
	"github.com/lidrupcheck/lidrup-check/internal/clause"
	"github.com/lidrupcheck/lidrup-check/internal/position"
	"github.com/lidrupcheck/lidrup-check/internal/record"
	"github.com/lidrupcheck/lidrup-check/internal/stats"
)

// Sign selects which polarity the justification engine assumes for
// the line's literals: Lemma assumes their negation (looking for a
// conflict to prove the lemma follows), Core assumes them positively
// (looking for a conflict under the claimed-unsatisfiable assumption
// set).
type Sign int32

const (
	Lemma Sign = 1
	Core  Sign = -1
)

// Engine runs one justification check at a time against a shared
// variable table and clause store.
type Engine struct {
	vars         *clause.VariableTable
	store        *clause.Store
	counters     *stats.Counters
	inconsistent bool
}

// New builds an engine over the given variable table, clause store,
// and counters, all owned by the caller and shared with the rest of
// the checker.
func New(vars *clause.VariableTable, store *clause.Store, counters *stats.Counters) *Engine {
	return &Engine{vars: vars, store: store, counters: counters}
}

// Inconsistent reports whether the empty clause has ever been derived.
// Once true, every subsequent Check call trivially succeeds.
func (e *Engine) Inconsistent() bool { return e.inconsistent }

// CheckImplied performs the §4.5 algorithm against lits under sign,
// using ids as the antecedent chain (or running unguided unit
// propagation across all active clauses when ids is empty). pos and
// rec are used only to build diagnostics; failMsg is the message used
// when the antecedent chain runs out without reaching a conflict.
func (e *Engine) CheckImplied(lits []int32, ids []int64, sign Sign, pos position.Position, rec record.Record, failMsg string) error {
	e.counters.Checks++
	if e.inconsistent {
		return nil
	}

	defer e.vars.ClearTrail()

	for _, lit := range lits {
		l := int32(sign) * lit
		if e.vars.Value(-l) == 1 {
			continue // negation already true: duplicate, ignore
		}
		if e.vars.Value(l) == 1 {
			return nil // line itself already true: tautological, succeeds
		}
		e.vars.Assign(-l)
	}

	if len(ids) > 0 {
		return e.checkGuided(ids, pos, rec, failMsg)
	}
	return e.checkUnguided(pos, rec, failMsg)
}

// checkGuided follows the antecedent chain in order, discharging
// falsified literals and propagating the single non-falsified one,
// until some antecedent is found fully falsified (a conflict) or the
// chain is exhausted without deriving one.
func (e *Engine) checkGuided(ids []int64, pos position.Position, rec record.Record, failMsg string) error {
	for _, id := range ids {
		if id <= 0 {
			return &checkerr.CheckError{Pos: pos, Msg: "negative antecedent identifier"}
		}
		c := e.store.FindActive(id)
		if c == nil {
			if e.store.FindInactive(id) != nil {
				return &checkerr.LineError{Pos: pos, Msg: "antecedent clause has been weakened", Rec: rec}
			}
			return &checkerr.LineError{Pos: pos, Msg: "unknown antecedent identifier", Rec: rec}
		}

		var u int32
		uSet := false
		conflict := true
		for _, lit := range c.Lits {
			if e.vars.Value(lit) == -1 {
				continue // discharged
			}
			conflict = false
			if !uSet {
				u = lit
				uSet = true
				continue
			}
			if lit != u {
				return &checkerr.LineError{Pos: pos, Msg: "antecedent clause not resolvable", Rec: rec}
			}
		}
		e.counters.Resolutions++
		if conflict {
			return nil
		}
		if e.vars.Value(u) == 0 {
			e.vars.Assign(u)
		}
	}
	return &checkerr.LineError{Pos: pos, Msg: failMsg, Rec: rec}
}

// checkUnguided runs plain unit propagation over every active clause
// to a fixpoint, succeeding as soon as one clause is fully falsified.
// This is the degenerate case spec.md §4.5 describes for a record
// whose antecedent list is absent.
func (e *Engine) checkUnguided(pos position.Position, rec record.Record, failMsg string) error {
	for {
		progressed := false
		for _, c := range e.store.ActiveClauses() {
			var u int32
			uSet := false
			conflict := true
			for _, lit := range c.Lits {
				if e.vars.Value(lit) == -1 {
					continue
				}
				conflict = false
				if !uSet {
					u = lit
					uSet = true
				} else if lit != u {
					uSet = false
					break
				}
			}
			if conflict {
				e.counters.Resolutions++
				return nil
			}
			if uSet && e.vars.Value(u) == 0 {
				e.vars.Assign(u)
				e.counters.Resolutions++
				progressed = true
			}
		}
		if !progressed {
			return &checkerr.LineError{Pos: pos, Msg: failMsg, Rec: rec}
		}
	}
}

// SetInconsistent latches the inconsistency flag once the empty
// clause has been added or derived. It never resets.
func (e *Engine) SetInconsistent() {
	e.inconsistent = true
}
