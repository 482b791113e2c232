// Package record defines the parsed-line representation shared by the
// line parser and every downstream consumer (clause store, justification
// engine, state machine). It corresponds to spec.md §3 "Literal" /
// "Clause identifier" and §4.2's tagged record.
package record

import (
	"fmt"
	"strings"
)

// Type letters, one per spec.md §4.2 record kind. 'a' is canonicalised
// to Query by the parser, so there is no separate constant for it.
const (
	Header  byte = 'p'
	Status  byte = 's'
	Input   byte = 'i'
	Lemma   byte = 'l'
	Delete  byte = 'd'
	Weaken  byte = 'w'
	Restore byte = 'r'
	Query   byte = 'q'
	Model   byte = 'm'
	Value   byte = 'v'
	Core    byte = 'u'
	Failed  byte = 'f'

	// EOF is the zero Type value returned at end of stream.
	EOF byte = 0
)

// Header/status string constants (§6). Comparisons against these use
// simple string equality; the C original compares pointers into a
// small set of interned constants for the same effect, which Go's
// string equality already gives for free.
const (
	ICNF   = "icnf"
	LIDRUP = "lidrup"

	Satisfiable   = "SATISFIABLE"
	Unsatisfiable = "UNSATISFIABLE"
	Unknown       = "UNKNOWN"
)

// Record is one parsed logical line from either input stream.
type Record struct {
	Type byte

	// Text holds the header/status text when Type is Header or Status.
	Text string

	ID   int64   // set when HasID(Type)
	Lits []int32 // set when HasLits(Type)
	IDs  []int64 // set when HasIDs(Type)
}

// HasID reports whether records of this type carry a clause identifier
// in the proof-stream grammar. The interactions stream never carries
// one regardless of type; internal/parse.Parser accounts for that.
func HasID(t byte) bool { return t == Input || t == Lemma }

// HasLits reports whether records of this type carry a literal list.
func HasLits(t byte) bool {
	switch t {
	case Input, Lemma, Query, Model, Value, Core, Failed:
		return true
	default:
		return false
	}
}

// HasIDs reports whether records of this type carry an antecedent
// list in the proof-stream grammar. Same interactions-stream
// exception as HasID.
func HasIDs(t byte) bool {
	switch t {
	case Lemma, Delete, Weaken, Restore, Core:
		return true
	default:
		return false
	}
}

// String renders the record the way line_error echoes the offending
// line in the C original: the type letter, the identifier if any, the
// literal list terminated by 0, and the antecedent list terminated by 0.
func (r Record) StringRepr() string {
	var b strings.Builder
	b.WriteByte(r.Type)
	if r.Type == Header || r.Type == Status {
		fmt.Fprintf(&b, " %s", r.Text)
	}
	if HasID(r.Type) {
		fmt.Fprintf(&b, " %d", r.ID)
	}
	if HasLits(r.Type) {
		for _, lit := range r.Lits {
			fmt.Fprintf(&b, " %d", lit)
		}
		b.WriteString(" 0")
	}
	if HasIDs(r.Type) {
		for _, id := range r.IDs {
			fmt.Fprintf(&b, " %d", id)
		}
		b.WriteString(" 0")
	}
	return b.String()
}

func (r Record) String() string { return r.StringRepr() }
