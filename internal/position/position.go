// Package position carries the file/line/column/byte context used in
// every diagnostic the checker prints.
package position

import "fmt"

// Position locates a record within one of the two input streams.
type Position struct {
	File string
	Line int // 1-indexed line number of the next byte to be read
	Col  int // 1-indexed column of the next byte to be read
	Byte int // total bytes consumed from the file so far
}

func (p Position) String() string {
	return fmt.Sprintf("line %d in '%s'", p.Line, p.File)
}

// WithColumn renders the position the way parse errors do, including
// the column of the offending character.
func (p Position) WithColumn() string {
	return fmt.Sprintf("line %d column %d in '%s'", p.Line, p.Col, p.File)
}
