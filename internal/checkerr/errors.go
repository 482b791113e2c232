// Package checkerr defines the four error kinds of the checking core
// (ParseError, CheckError, LineError, FatalInternal). All of them are
// terminal: whichever caller receives one stops the pipeline and
// reports it, but none of them call os.Exit themselves so that the
// core packages stay usable as a library and by tests.
package checkerr

import (
	"fmt"
	"strings"

	"github.com/lidrupcheck/lidrup-check/internal/position"
	"github.com/lidrupcheck/lidrup-check/internal/record"
)

// ParseError reports a malformed byte sequence or token: bad characters,
// missing terminators, overflow, wrong record type for the current
// parser state.
type ParseError struct {
	Pos position.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: at %s: %s", e.Pos.WithColumn(), e.Msg)
}

// CheckError reports a check that failed without needing to echo a
// specific offending record: a saved-line mismatch, an inconsistent
// literal set, a model failing to satisfy an input clause, a core not
// a subset of its query, and so on.
type CheckError struct {
	Pos position.Position
	Msg string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("error: at %s: %s", e.Pos, e.Msg)
}

// LineError reports a record-level failure that must echo the
// offending record verbatim: an unknown or weakened antecedent, a
// resolution that failed to derive a conflict, a reused clause
// identifier.
type LineError struct {
	Pos position.Position
	Msg string
	Rec record.Record
}

func (e *LineError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: at %s: %s\n", e.Pos, e.Msg)
	b.WriteString(e.Rec.String())
	return b.String()
}

// FatalInternal indicates an invariant violation or unreachable state:
// a programming error in the checker itself, not in its input.
type FatalInternal struct {
	Pos position.Position
	Msg string
}

func (e *FatalInternal) Error() string {
	return fmt.Sprintf("fatal internal error: at %s: %s", e.Pos, e.Msg)
}
