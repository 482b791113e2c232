// Package parse turns the byte stream from ioline into tagged records
// (spec.md §4.2): headers, status lines, and the eleven lowercase
// record types, with all of the integer-literal validation the format
// demands.
package parse

import (
	"fmt"
	"io"

	"github.com/lidrupcheck/lidrup-check/internal/checkerr"
	"github.com/lidrupcheck/lidrup-check/internal/ioline"
	"github.com/lidrupcheck/lidrup-check/internal/record"
)

// Parser produces one record.Record per call to Next.
type Parser struct {
	r            *ioline.Reader
	interactions bool // true when reading the interactions stream of a two-stream session
}

// New wraps a line reader using the full proof-stream grammar: records
// that carry a clause identifier or an antecedent list are parsed with
// both present. Use this for a single-file (solo) session and for the
// proof stream of a two-stream session.
func New(r *ioline.Reader) *Parser { return &Parser{r: r} }

// NewInteractions wraps a line reader using the interactions-stream
// grammar (spec.md §4.2: "In the interactions stream … records never
// carry an id or antecedent ids"). Matches lidrup-check.c's
// `file != interactions` guard around identifier/antecedent parsing.
func NewInteractions(r *ioline.Reader) *Parser { return &Parser{r: r, interactions: true} }

// Next reads and returns the next record, skipping blank lines.
// record.EOF is returned with a nil error at end of stream.
func (p *Parser) Next() (record.Record, error) {
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return record.Record{Type: record.EOF}, nil
			}
			return record.Record{}, err
		}
		if c == '\n' {
			continue // blank line
		}

		typ := c
		if typ == 'a' {
			typ = record.Query
		}
		if !validType(typ) {
			return record.Record{}, p.parseErr("unknown record type '%c'", c)
		}
		if err := p.expectSpace(); err != nil {
			return record.Record{}, err
		}
		return p.parseBody(typ)
	}
}

// PeekType returns the type letter of the next record without
// consuming it (blank lines in between are consumed, since they carry
// no meaning). record.EOF is returned at end of stream. It lets a
// caller decide, in relaxed mode, whether a mandatory record is about
// to be missing before committing to read it.
func (p *Parser) PeekType() (byte, error) {
	for {
		c, err := p.r.PeekByte()
		if err != nil {
			if err == io.EOF {
				return record.EOF, nil
			}
			return 0, err
		}
		if c == '\n' {
			if _, err := p.r.ReadByte(); err != nil {
				return 0, err
			}
			continue
		}
		return c, nil
	}
}

func validType(t byte) bool {
	switch t {
	case record.Header, record.Status, record.Input, record.Lemma, record.Delete,
		record.Weaken, record.Restore, record.Query, record.Model, record.Value,
		record.Core, record.Failed:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBody(typ byte) (record.Record, error) {
	rec := record.Record{Type: typ}

	switch typ {
	case record.Header:
		word, delim, err := p.readWord()
		if err != nil {
			return record.Record{}, err
		}
		if word != record.ICNF && word != record.LIDRUP {
			return record.Record{}, p.parseErr("unrecognised header %q", word)
		}
		if delim != '\n' {
			return record.Record{}, p.parseErr("expected newline after header")
		}
		rec.Text = word
		return rec, nil

	case record.Status:
		word, delim, err := p.readWord()
		if err != nil {
			return record.Record{}, err
		}
		switch word {
		case record.Satisfiable, record.Unsatisfiable, record.Unknown:
		default:
			return record.Record{}, p.parseErr("unrecognised status %q", word)
		}
		if delim != '\n' {
			return record.Record{}, p.parseErr("expected newline after status")
		}
		rec.Text = word
		return rec, nil
	}

	hasID := record.HasID(typ) && !p.interactions
	hasIDs := record.HasIDs(typ) && !p.interactions

	if hasID {
		id, delim, err := p.readUnsigned(63)
		if err != nil {
			return record.Record{}, err
		}
		if id == 0 {
			return record.Record{}, p.parseErr("clause identifier must be positive")
		}
		if delim != ' ' {
			return record.Record{}, p.parseErr("expected space after identifier")
		}
		rec.ID = id
	}

	if record.HasLits(typ) {
		lits, err := p.readLiteralList(hasIDs)
		if err != nil {
			return record.Record{}, err
		}
		rec.Lits = lits
	}

	if hasIDs {
		ids, err := p.readIdentifierList()
		if err != nil {
			return record.Record{}, err
		}
		rec.IDs = ids
	}

	return rec, nil
}

// readLiteralList reads signed 31-bit literals up to and including the
// terminating 0. moreFollows controls whether the delimiter after the
// terminator must be a space (another list follows) or a newline.
func (p *Parser) readLiteralList(moreFollows bool) ([]int32, error) {
	var lits []int32
	for {
		v, delim, err := p.readSigned(31)
		if err != nil {
			return nil, err
		}
		if v == 0 {
			wantNL := '\n'
			if moreFollows {
				if delim != ' ' {
					return nil, p.parseErr("expected space after literal list")
				}
				return lits, nil
			}
			if delim != byte(wantNL) {
				return nil, p.parseErr("expected newline after literal list")
			}
			return lits, nil
		}
		if delim != ' ' {
			return nil, p.parseErr("expected space after literal")
		}
		lits = append(lits, int32(v))
	}
}

// readIdentifierList reads signed 64-bit antecedent identifiers up to
// and including the terminating 0; the list must end in a newline.
func (p *Parser) readIdentifierList() ([]int64, error) {
	var ids []int64
	for {
		v, delim, err := p.readSigned(63)
		if err != nil {
			return nil, err
		}
		if v == 0 {
			if delim != '\n' {
				return nil, p.parseErr("expected newline after identifier list")
			}
			return ids, nil
		}
		if delim != ' ' {
			return nil, p.parseErr("expected space after identifier")
		}
		ids = append(ids, v)
	}
}

func (p *Parser) expectSpace() error {
	c, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return p.parseErr("unexpected end of file, expected space")
		}
		return err
	}
	if c != ' ' {
		return p.parseErr("expected space, got '%c'", c)
	}
	return nil
}

// readWord reads consecutive ASCII letters (either case) and returns the
// word together with the delimiter (space or newline) that ended it.
func (p *Parser) readWord() (string, byte, error) {
	var buf []byte
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", 0, p.parseErr("unexpected end of file in word")
			}
			return "", 0, err
		}
		if c == ' ' || c == '\n' {
			if len(buf) == 0 {
				return "", 0, p.parseErr("empty word")
			}
			return string(buf), c, nil
		}
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return "", 0, p.parseErr("unexpected character '%c' in word", c)
		}
		buf = append(buf, c)
	}
}

// readUnsigned reads a non-negative decimal integer bounded to the
// given number of magnitude bits, rejecting a leading zero in a
// multi-digit number. It returns the value and the delimiter that
// terminated it (space or newline).
func (p *Parser) readUnsigned(bits uint) (int64, byte, error) {
	c, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, 0, p.parseErr("unexpected end of file, expected digit")
		}
		return 0, 0, err
	}
	if c < '0' || c > '9' {
		return 0, 0, p.parseErr("expected digit, got '%c'", c)
	}
	digits := []byte{c}
	for {
		c2, err := p.r.PeekByte()
		if err != nil && err != io.EOF {
			return 0, 0, err
		}
		if err == io.EOF || c2 < '0' || c2 > '9' {
			break
		}
		if _, err := p.r.ReadByte(); err != nil {
			return 0, 0, err
		}
		digits = append(digits, c2)
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, 0, p.parseErr("leading zero in number")
	}
	value, ok := parseMagnitude(digits, bits)
	if !ok {
		return 0, 0, p.parseErr("integer overflow")
	}
	delim, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, 0, p.parseErr("unexpected end of file after number")
		}
		return 0, 0, err
	}
	if delim != ' ' && delim != '\n' {
		return 0, 0, p.parseErr("digit not followed by delimiter, got '%c'", delim)
	}
	return value, delim, nil
}

// readSigned is like readUnsigned but additionally accepts a leading
// '-'. A literal "-0" is rejected, matching the original format's
// rule that zero is only ever written unsigned as a terminator.
func (p *Parser) readSigned(bits uint) (int64, byte, error) {
	c, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, 0, p.parseErr("unexpected end of file, expected digit or '-'")
		}
		return 0, 0, err
	}
	neg := false
	if c == '-' {
		neg = true
		c, err = p.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, 0, p.parseErr("unexpected end of file after '-'")
			}
			return 0, 0, err
		}
	}
	if c < '0' || c > '9' {
		return 0, 0, p.parseErr("expected digit, got '%c'", c)
	}
	digits := []byte{c}
	for {
		c2, err := p.r.PeekByte()
		if err != nil && err != io.EOF {
			return 0, 0, err
		}
		if err == io.EOF || c2 < '0' || c2 > '9' {
			break
		}
		if _, err := p.r.ReadByte(); err != nil {
			return 0, 0, err
		}
		digits = append(digits, c2)
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, 0, p.parseErr("leading zero in number")
	}
	if neg && len(digits) == 1 && digits[0] == '0' {
		return 0, 0, p.parseErr("'-0' is not a valid literal")
	}
	value, ok := parseMagnitude(digits, bits)
	if !ok {
		return 0, 0, p.parseErr("integer overflow")
	}
	if neg {
		value = -value
	}
	delim, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, 0, p.parseErr("unexpected end of file after number")
		}
		return 0, 0, err
	}
	if delim != ' ' && delim != '\n' {
		return 0, 0, p.parseErr("digit not followed by delimiter, got '%c'", delim)
	}
	return value, delim, nil
}

// parseMagnitude folds a decimal digit string into an int64, rejecting
// overflow past 2^bits - 1 (the format never accepts the most negative
// value of either range, so the bound is symmetric).
func parseMagnitude(digits []byte, bits uint) (int64, bool) {
	var v int64
	max := int64(1)<<bits - 1
	for _, d := range digits {
		if v > (max-int64(d-'0'))/10 {
			return 0, false
		}
		v = v*10 + int64(d-'0')
	}
	if v > max {
		return 0, false
	}
	return v, true
}

func (p *Parser) parseErr(format string, args ...any) error {
	return &checkerr.ParseError{Pos: p.r.Position(), Msg: fmt.Sprintf(format, args...)}
}
