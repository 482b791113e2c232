// Package ioline is the buffered byte-at-a-time source that the parser
// reads from (spec.md §4.1). It tracks line, column and absolute byte
// offset the way sqlparser.Scanner tracks them over an in-memory
// string, except this reader pulls from a real file and comment lines
// (beginning with 'c') are skipped transparently before the parser
// ever sees them.
package ioline

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/lidrupcheck/lidrup-check/internal/checkerr"
	"github.com/lidrupcheck/lidrup-check/internal/position"
)

// bufferSize matches the 1MB read buffer the original checker uses so
// that very large proofs still stream rather than load wholesale.
const bufferSize = 1 << 20

// Reader is a positioned byte source over a single input stream (the
// interactions file or the proof file).
type Reader struct {
	name string
	br   *bufio.Reader
	closer io.Closer

	line int // 1-indexed line of the next byte to be returned
	col  int // 1-indexed column of the next byte to be returned
	byte int // total bytes consumed so far

	atLineStart bool
}

// Open opens path for reading. Passing "-" reads from stdin, matching
// the command-line convention of treating a bare dash as "no file".
func Open(path string) (*Reader, error) {
	if path == "-" {
		return New(os.Stdin, "<stdin>"), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", path)
	}
	r := New(f, path)
	r.closer = f
	return r, nil
}

// New wraps an already-open stream; name is used in positions and
// diagnostics only.
func New(r io.Reader, name string) *Reader {
	return &Reader{
		name:        name,
		br:          bufio.NewReaderSize(r, bufferSize),
		line:        1,
		col:         1,
		atLineStart: true,
	}
}

// Close releases the underlying file, if any. Readers built over an
// already-open io.Reader (stdin, a test buffer) are not closed.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Name returns the stream's display name.
func (r *Reader) Name() string { return r.name }

// Position reports the coordinates of the next byte ReadByte will return.
func (r *Reader) Position() position.Position {
	return position.Position{File: r.name, Line: r.line, Col: r.col, Byte: r.byte}
}

// skipComments consumes any run of full comment lines sitting at the
// current position, leaving the cursor at the start of real content
// or at EOF.
func (r *Reader) skipComments() error {
	for r.atLineStart {
		b, err := r.br.Peek(1)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrapf(err, "reading %q", r.name)
		}
		if b[0] != 'c' {
			return nil
		}
		if err := r.skipLine(); err != nil {
			return err
		}
	}
	return nil
}

// ReadByte returns the next non-comment byte. Lines whose first
// character is 'c' are consumed in full, including the terminating
// newline, and never surfaced to the caller. A bare '\r' not
// immediately followed by '\n' is a ParseError; a '\r\n' pair is
// collapsed into a single '\n'.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.skipComments(); err != nil {
		return 0, err
	}
	c, err := r.readRaw()
	if err != nil {
		return 0, err
	}
	if c == '\r' {
		if err := r.expectLF(); err != nil {
			return 0, err
		}
		c = '\n'
	}
	return c, nil
}

// readRaw reads and position-tracks a single byte with no CR/comment
// handling of its own.
func (r *Reader) readRaw() (byte, error) {
	c, err := r.br.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, errors.Wrapf(err, "reading %q", r.name)
	}
	r.byte++
	if c == '\n' {
		r.line++
		r.col = 1
		r.atLineStart = true
	} else {
		r.col++
		r.atLineStart = false
	}
	return c, nil
}

// expectLF consumes the byte following a '\r' and requires it be '\n'.
func (r *Reader) expectLF() error {
	c, err := r.br.ReadByte()
	if err != nil || c != '\n' {
		return &checkerr.ParseError{Pos: r.Position(), Msg: "bad carriage return"}
	}
	r.byte++
	r.line++
	r.col = 1
	r.atLineStart = true
	return nil
}

// skipLine discards bytes up to and including the next newline. A CR
// mid-comment is handled the same way as in ReadByte; reaching EOF
// before a newline is a ParseError, since a comment line must be
// terminated.
func (r *Reader) skipLine() error {
	for {
		c, err := r.br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return &checkerr.ParseError{Pos: r.Position(), Msg: "end-of-file-in-comment"}
			}
			return errors.Wrapf(err, "reading %q", r.name)
		}
		r.byte++
		if c == '\r' {
			if err := r.expectLF(); err != nil {
				return err
			}
			return nil
		}
		if c == '\n' {
			r.line++
			r.col = 1
			r.atLineStart = true
			return nil
		}
	}
}

// PeekByte returns the next byte ReadByte would return, without
// consuming it. It is used by the parser to decide a record's type
// before committing to parsing it.
func (r *Reader) PeekByte() (byte, error) {
	if err := r.skipComments(); err != nil {
		return 0, err
	}
	b, err := r.br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, errors.Wrapf(err, "reading %q", r.name)
	}
	return b[0], nil
}
