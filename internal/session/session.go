// Package session drives the dual-stream state machine of spec.md
// §4.7: it walks the interactions stream and the proof stream forward
// in lock-step (or the proof stream alone, in single-file mode),
// dispatching each record to the clause store or the justification
// engine and bracketing queries with start/conclude events. It is
// grounded on the goto-driven parse_and_check_icnf_and_idrup and
// parse_and_check_idrup state machines of the original checker,
// translated into an idiomatic Go enum-dispatch loop the way
// sqlparser.Parse's documented cursor-position convention suggests.
package session

import (
	"github.com/lidrupcheck/lidrup-check/internal/checkerr"
	"github.com/lidrupcheck/lidrup-check/internal/clause"
	"github.com/lidrupcheck/lidrup-check/internal/justify"
	"github.com/lidrupcheck/lidrup-check/internal/parse"
	"github.com/lidrupcheck/lidrup-check/internal/position"
	"github.com/lidrupcheck/lidrup-check/internal/record"
	"github.com/lidrupcheck/lidrup-check/internal/stats"
)

// Mode selects how strictly the state machine enforces headers and
// mandatory conclusion records (spec.md §4.7 "Modes" table).
type Mode int

const (
	Strict Mode = iota
	Relaxed
	Pedantic
)

type state int

const (
	stInteractionHeader state = iota
	stProofHeader
	stInteractionInput
	stProofInput
	stProofQuery
	stProofCheck
	stInteractionSatisfiable
	stInteractionSatisfied
	stProofModel
	stInteractionUnsatisfiable
	stInteractionUnsatisfied
	stProofCore
	stInteractionUnknown
	stDone
)

// Session holds every piece of shared state the state machine touches.
type Session struct {
	mode Mode

	interactions *parse.Parser // nil in single-file (proof-only) mode
	proof        *parse.Parser

	vars     *clause.VariableTable
	store    *clause.Store
	engine   *justify.Engine
	counters *stats.Counters

	savedLits []int32
	savedType byte
	query     []int32

	firstInteractionLine bool
	firstProofLine       bool

	// Partial is set in relaxed mode when a mandatory m/u was tolerated
	// missing; the caller reflects this as exit code 2.
	Partial bool
}

// New builds a two-stream session. Pass a nil interactions parser (via
// NewSolo) to run in single-file proof-only mode.
func New(interactions, proof *parse.Parser, mode Mode, noReuse bool) *Session {
	vars := clause.NewVariableTable()
	store := clause.NewStore(noReuse)
	counters := &stats.Counters{}
	return &Session{
		mode:                  mode,
		interactions:          interactions,
		proof:                 proof,
		vars:                  vars,
		store:                 store,
		engine:                justify.New(vars, store, counters),
		counters:              counters,
		firstInteractionLine:  true,
		firstProofLine:        true,
	}
}

// NewSolo builds a single-file session over the proof stream alone.
func NewSolo(proof *parse.Parser, mode Mode, noReuse bool) *Session {
	return New(nil, proof, mode, noReuse)
}

// Counters exposes the running statistics for the caller to print.
func (s *Session) Counters() *stats.Counters { return s.counters }

func (s *Session) importLits(lits []int32) {
	for _, lit := range lits {
		v := lit
		if v < 0 {
			v = -v
		}
		if !s.vars.Imported(v) {
			s.counters.Imported++
		}
		s.vars.Import(v)
	}
}

// Run drives the state machine to completion, returning nil once the
// interactions stream (or, in solo mode, the proof stream) reaches
// end of file with every step justified.
func (s *Session) Run() error {
	if s.interactions == nil {
		return s.runSolo()
	}

	st := stInteractionInput
	if s.mode == Pedantic {
		st = stInteractionHeader
	}

	for {
		switch st {
		case stInteractionHeader:
			rec, err := s.interactions.Next()
			if err != nil {
				return err
			}
			if rec.Type != record.Header || rec.Text != record.ICNF {
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected icnf header"}
			}
			st = stProofHeader

		case stProofHeader:
			rec, err := s.proof.Next()
			if err != nil {
				return err
			}
			if rec.Type != record.Header || rec.Text != record.LIDRUP {
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected lidrup header"}
			}
			st = stInteractionInput

		case stInteractionInput:
			rec, err := s.interactions.Next()
			if err != nil {
				return err
			}
			if rec.Type == record.Header && rec.Text == record.ICNF && s.firstInteractionLine {
				s.firstInteractionLine = false
				continue
			}
			s.firstInteractionLine = false
			switch rec.Type {
			case record.EOF:
				st = stDone
			case record.Input:
				s.importLits(rec.Lits)
				s.savedLits = rec.Lits
				s.savedType = record.Input
				st = stProofInput
			case record.Query:
				s.importLits(rec.Lits)
				s.savedLits = rec.Lits
				s.savedType = record.Query
				s.query = rec.Lits
				s.counters.Queries++
				st = stProofQuery
			default:
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "unexpected record in interactions stream"}
			}

		case stProofInput:
			rec, err := s.proof.Next()
			if err != nil {
				return err
			}
			if rec.Type == record.Header && rec.Text == record.LIDRUP && s.firstProofLine {
				s.firstProofLine = false
				continue
			}
			s.firstProofLine = false
			switch rec.Type {
			case record.Input:
				s.importLits(rec.Lits)
				if !equalInt32(rec.Lits, s.savedLits) {
					return &checkerr.CheckError{Msg: "input clause does not match interactions stream"}
				}
				if err := s.applyInput(rec); err != nil {
					return err
				}
				st = stInteractionInput
			case record.Lemma, record.Delete, record.Weaken, record.Restore:
				if err := s.applyProof(rec); err != nil {
					return err
				}
			default:
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "unexpected record in proof stream"}
			}

		case stProofQuery:
			rec, err := s.proof.Next()
			if err != nil {
				return err
			}
			if rec.Type == record.Header && rec.Text == record.LIDRUP && s.firstProofLine {
				s.firstProofLine = false
				continue
			}
			s.firstProofLine = false
			switch rec.Type {
			case record.Query:
				s.importLits(rec.Lits)
				if !equalInt32(rec.Lits, s.savedLits) {
					return &checkerr.CheckError{Msg: "query does not match interactions stream"}
				}
				st = stProofCheck
			case record.Lemma, record.Delete, record.Weaken, record.Restore:
				if err := s.applyProof(rec); err != nil {
					return err
				}
			default:
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "unexpected record while awaiting query"}
			}

		case stProofCheck:
			rec, err := s.proof.Next()
			if err != nil {
				return err
			}
			switch rec.Type {
			case record.Input:
				s.importLits(rec.Lits)
				if err := s.applyInput(rec); err != nil {
					return err
				}
				irec, err := s.interactions.Next()
				if err != nil {
					return err
				}
				if irec.Type != record.Input || !equalInt32(irec.Lits, rec.Lits) {
					return &checkerr.CheckError{Msg: "interleaved input does not match interactions stream"}
				}
			case record.Lemma, record.Delete, record.Weaken, record.Restore:
				if err := s.applyProof(rec); err != nil {
					return err
				}
			case record.Status:
				switch rec.Text {
				case record.Satisfiable:
					st = stInteractionSatisfiable
				case record.Unsatisfiable:
					st = stInteractionUnsatisfiable
				case record.Unknown:
					st = stInteractionUnknown
				default:
					return &checkerr.FatalInternal{Msg: "unreachable status"}
				}
			default:
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "unexpected record during query check"}
			}

		case stInteractionSatisfiable:
			rec, err := s.interactions.Next()
			if err != nil {
				return err
			}
			if rec.Type != record.Status || rec.Text != record.Satisfiable {
				return &checkerr.CheckError{Msg: "interactions stream did not confirm SATISFIABLE"}
			}
			st = stInteractionSatisfied

		case stInteractionSatisfied:
			rec, err := s.interactions.Next()
			if err != nil {
				return err
			}
			if rec.Type != record.Model && rec.Type != record.Value {
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected model or partial values"}
			}
			s.importLits(rec.Lits)
			if err := s.engine.CheckConsistent(rec.Lits, position.Position{}); err != nil {
				return err
			}
			if rec.Type == record.Model {
				if err := s.engine.ModelSatisfiesInput(rec.Lits, position.Position{}); err != nil {
					return err
				}
				if !subsetHolds(s.engine, s.query, rec.Lits) {
					return &checkerr.CheckError{Msg: "model does not satisfy query"}
				}
			}
			s.savedLits = rec.Lits
			s.savedType = rec.Type
			st = stProofModel

		case stProofModel:
			peeked, err := s.proof.PeekType()
			if err != nil {
				return err
			}
			if peeked != record.Model {
				if s.mode == Relaxed {
					s.Partial = true
					st = stInteractionInput
					continue
				}
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected model record in proof stream"}
			}
			rec, err := s.proof.Next()
			if err != nil {
				return err
			}
			s.importLits(rec.Lits)
			if err := s.engine.CheckConsistent(rec.Lits, position.Position{}); err != nil {
				return err
			}
			if err := s.engine.ModelSatisfiesInput(rec.Lits, position.Position{}); err != nil {
				return err
			}
			if !subsetHolds(s.engine, s.query, rec.Lits) {
				return &checkerr.CheckError{Msg: "model does not satisfy query"}
			}
			if !s.matchesSaved(rec.Lits) {
				return &checkerr.CheckError{Msg: "model inconsistent with interactions stream"}
			}
			s.counters.Conclusions++
			s.counters.Models++
			st = stInteractionInput

		case stInteractionUnsatisfiable:
			rec, err := s.interactions.Next()
			if err != nil {
				return err
			}
			if rec.Type != record.Status || rec.Text != record.Unsatisfiable {
				return &checkerr.CheckError{Msg: "interactions stream did not confirm UNSATISFIABLE"}
			}
			st = stInteractionUnsatisfied

		case stInteractionUnsatisfied:
			rec, err := s.interactions.Next()
			if err != nil {
				return err
			}
			if rec.Type != record.Failed && rec.Type != record.Core {
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected failed-assumption subset or core"}
			}
			s.importLits(rec.Lits)
			if err := s.engine.CheckConsistent(rec.Lits, position.Position{}); err != nil {
				return err
			}
			if rec.Type == record.Failed && !s.engine.Subset(rec.Lits, s.query) {
				return &checkerr.CheckError{Msg: "failed assumptions not a subset of query"}
			}
			s.savedLits = rec.Lits
			s.savedType = rec.Type
			st = stProofCore

		case stProofCore:
			peeked, err := s.proof.PeekType()
			if err != nil {
				return err
			}
			if peeked != record.Core {
				if s.mode == Relaxed {
					s.Partial = true
					st = stInteractionInput
					continue
				}
				return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected core record in proof stream"}
			}
			rec, err := s.proof.Next()
			if err != nil {
				return err
			}
			s.importLits(rec.Lits)
			if !s.engine.Subset(rec.Lits, s.query) {
				return &checkerr.CheckError{Msg: "core not a subset of query"}
			}
			switch s.savedType {
			case record.Core:
				if !s.engine.EqualSets(rec.Lits, s.savedLits) {
					return &checkerr.CheckError{Msg: "core inconsistent with interactions stream"}
				}
			case record.Failed:
				if err := s.engine.FailedConsistentWithCore(s.savedLits, rec.Lits, position.Position{}); err != nil {
					return err
				}
			}
			if err := s.engine.CheckImplied(rec.Lits, rec.IDs, justify.Core, position.Position{}, rec, "unsatisfiable core check failed"); err != nil {
				return err
			}
			s.counters.Conclusions++
			s.counters.Cores++
			st = stInteractionInput

		case stInteractionUnknown:
			rec, err := s.interactions.Next()
			if err != nil {
				return err
			}
			if rec.Type != record.Status || rec.Text != record.Unknown {
				return &checkerr.CheckError{Msg: "interactions stream did not confirm UNKNOWN"}
			}
			s.counters.Conclusions++
			st = stInteractionInput

		case stDone:
			return nil
		}
	}
}

// runSolo drives the simplified single-file state machine (spec.md
// §4.7 "When only one file is supplied"): there is no interactions
// stream to match against, so input/query records are applied
// directly and a status line's conclusion is checked against the
// proof stream alone.
func (s *Session) runSolo() error {
	for {
		rec, err := s.proof.Next()
		if err != nil {
			return err
		}
		if s.firstProofLine && s.mode == Pedantic && (rec.Type != record.Header || rec.Text != record.LIDRUP) {
			return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected lidrup header"}
		}
		if rec.Type == record.Header && rec.Text == record.LIDRUP && s.firstProofLine {
			s.firstProofLine = false
			continue
		}
		s.firstProofLine = false

		switch rec.Type {
		case record.EOF:
			return nil
		case record.Input:
			s.importLits(rec.Lits)
			if err := s.applyInput(rec); err != nil {
				return err
			}
		case record.Lemma, record.Delete, record.Weaken, record.Restore:
			if err := s.applyProof(rec); err != nil {
				return err
			}
		case record.Query:
			s.importLits(rec.Lits)
			s.query = rec.Lits
			s.counters.Queries++
		case record.Status:
			switch rec.Text {
			case record.Satisfiable:
				if err := s.soloModel(); err != nil {
					return err
				}
			case record.Unsatisfiable:
				if err := s.soloCore(); err != nil {
					return err
				}
			case record.Unknown:
				s.counters.Conclusions++
			default:
				return &checkerr.FatalInternal{Msg: "unreachable status"}
			}
		default:
			return &checkerr.ParseError{Pos: position.Position{}, Msg: "unexpected record in proof stream"}
		}
	}
}

func (s *Session) soloModel() error {
	peeked, err := s.proof.PeekType()
	if err != nil {
		return err
	}
	if peeked != record.Model {
		if s.mode == Relaxed {
			s.Partial = true
			return nil
		}
		return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected model after SATISFIABLE"}
	}
	rec, err := s.proof.Next()
	if err != nil {
		return err
	}
	s.importLits(rec.Lits)
	if err := s.engine.CheckConsistent(rec.Lits, position.Position{}); err != nil {
		return err
	}
	if err := s.engine.ModelSatisfiesInput(rec.Lits, position.Position{}); err != nil {
		return err
	}
	if !subsetHolds(s.engine, s.query, rec.Lits) {
		return &checkerr.CheckError{Msg: "model does not satisfy query"}
	}
	s.counters.Conclusions++
	s.counters.Models++
	return nil
}

func (s *Session) soloCore() error {
	peeked, err := s.proof.PeekType()
	if err != nil {
		return err
	}
	if peeked != record.Core {
		if s.mode == Relaxed {
			s.Partial = true
			return nil
		}
		return &checkerr.ParseError{Pos: position.Position{}, Msg: "expected core after UNSATISFIABLE"}
	}
	rec, err := s.proof.Next()
	if err != nil {
		return err
	}
	s.importLits(rec.Lits)
	if !s.engine.Subset(rec.Lits, s.query) {
		return &checkerr.CheckError{Msg: "core not a subset of query"}
	}
	if err := s.engine.CheckImplied(rec.Lits, rec.IDs, justify.Core, position.Position{}, rec, "unsatisfiable core check failed"); err != nil {
		return err
	}
	s.counters.Conclusions++
	s.counters.Cores++
	return nil
}

// applyInput allocates and indexes a fresh input clause.
func (s *Session) applyInput(rec record.Record) error {
	if s.store.NoReuse() && s.store.Reserved(rec.ID) {
		return &checkerr.LineError{Msg: "clause identifier reused", Rec: rec}
	}
	taut := s.engine.HasComplementaryPair(rec.Lits)
	s.store.Allocate(rec.ID, rec.Lits, true, taut, 0)
	s.counters.Added++
	if s.store.NoReuse() {
		s.store.MarkUsed(rec.ID)
	}
	s.counters.Inputs++
	if len(rec.Lits) == 0 {
		s.engine.SetInconsistent()
	}
	return nil
}

// applyProof dispatches an l/d/w/r record coming off the proof stream.
func (s *Session) applyProof(rec record.Record) error {
	switch rec.Type {
	case record.Lemma:
		return s.applyLemma(rec)
	case record.Delete:
		for _, id := range rec.IDs {
			c := s.store.FindActive(id)
			if c == nil {
				return &checkerr.LineError{Msg: "delete of unknown clause", Rec: rec}
			}
			s.store.Delete(c)
			s.counters.Deleted++
		}
		return nil
	case record.Weaken:
		for _, id := range rec.IDs {
			c := s.store.FindActive(id)
			if c == nil {
				return &checkerr.LineError{Msg: "weaken of unknown clause", Rec: rec}
			}
			s.store.Weaken(c)
			s.counters.Weakened++
		}
		return nil
	case record.Restore:
		for _, id := range rec.IDs {
			c := s.store.FindInactive(id)
			if c == nil {
				return &checkerr.LineError{Msg: "restore of unknown weakened clause", Rec: rec}
			}
			s.store.Restore(c)
			s.counters.Restored++
		}
		return nil
	default:
		return &checkerr.FatalInternal{Msg: "unreachable proof record type"}
	}
}

func (s *Session) applyLemma(rec record.Record) error {
	s.importLits(rec.Lits)
	if s.store.NoReuse() && s.store.Reserved(rec.ID) {
		return &checkerr.LineError{Msg: "clause identifier reused", Rec: rec}
	}
	taut := s.engine.HasComplementaryPair(rec.Lits)
	if !taut {
		if err := s.engine.CheckImplied(rec.Lits, rec.IDs, justify.Lemma, position.Position{}, rec, "lemma resolution check failed"); err != nil {
			return err
		}
	}
	s.store.Allocate(rec.ID, rec.Lits, false, taut, 0)
	s.counters.Added++
	if s.store.NoReuse() {
		s.store.MarkUsed(rec.ID)
	}
	s.counters.Lemmas++
	if len(rec.Lits) == 0 {
		s.engine.SetInconsistent()
	}
	return nil
}

func (s *Session) matchesSaved(model []int32) bool {
	if s.savedType == record.Value {
		return s.engine.Subset(s.savedLits, model)
	}
	return s.engine.EqualSets(s.savedLits, model)
}

func subsetHolds(e *justify.Engine, a, b []int32) bool {
	if len(a) == 0 {
		return true
	}
	return e.Subset(a, b)
}

func equalInt32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
