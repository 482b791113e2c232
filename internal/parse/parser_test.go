package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidrupcheck/lidrup-check/internal/checkerr"
	"github.com/lidrupcheck/lidrup-check/internal/ioline"
	"github.com/lidrupcheck/lidrup-check/internal/record"
)

func parseAll(t *testing.T, text string) []record.Record {
	t.Helper()
	r := ioline.New(strings.NewReader(text), "test")
	p := New(r)
	var out []record.Record
	for {
		rec, err := p.Next()
		require.NoError(t, err)
		if rec.Type == record.EOF {
			return out
		}
		out = append(out, rec)
	}
}

func TestHeaderAndStatus(t *testing.T) {
	recs := parseAll(t, "p icnf\np lidrup\ns SATISFIABLE\ns UNSATISFIABLE\ns UNKNOWN\n")
	require.Len(t, recs, 5)
	assert.Equal(t, record.Header, recs[0].Type)
	assert.Equal(t, record.ICNF, recs[0].Text)
	assert.Equal(t, record.LIDRUP, recs[1].Text)
	assert.Equal(t, record.Satisfiable, recs[2].Text)
	assert.Equal(t, record.Unsatisfiable, recs[3].Text)
	assert.Equal(t, record.Unknown, recs[4].Text)
}

func TestInputAndLemma(t *testing.T) {
	recs := parseAll(t, "i 1 1 -2 0\nl 2 2 3 0 1 0\n")
	require.Len(t, recs, 2)
	assert.Equal(t, record.Input, recs[0].Type)
	assert.EqualValues(t, 1, recs[0].ID)
	assert.Equal(t, []int32{1, -2}, recs[0].Lits)

	assert.Equal(t, record.Lemma, recs[1].Type)
	assert.EqualValues(t, 2, recs[1].ID)
	assert.Equal(t, []int32{2, 3}, recs[1].Lits)
	assert.Equal(t, []int64{1}, recs[1].IDs)
}

func TestDeleteWeakenRestore(t *testing.T) {
	recs := parseAll(t, "d 1 0\nw 2 0\nr 2 0\n")
	require.Len(t, recs, 3)
	assert.Equal(t, record.Delete, recs[0].Type)
	assert.Equal(t, []int64{1}, recs[0].IDs)
	assert.Equal(t, record.Weaken, recs[1].Type)
	assert.Equal(t, record.Restore, recs[2].Type)
}

func TestQueryAliasA(t *testing.T) {
	recs := parseAll(t, "a 1 -2 0\n")
	require.Len(t, recs, 1)
	assert.Equal(t, record.Query, recs[0].Type)
	assert.Equal(t, []int32{1, -2}, recs[0].Lits)
}

func TestModelValueCoreFailed(t *testing.T) {
	recs := parseAll(t, "m 1 -2 3 0\nv 1 0\nu 1 -2 0 3 0\nf 1 0\n")
	require.Len(t, recs, 4)
	assert.Equal(t, record.Model, recs[0].Type)
	assert.Equal(t, record.Value, recs[1].Type)
	assert.Equal(t, record.Core, recs[2].Type)
	assert.Equal(t, []int32{1, -2}, recs[2].Lits)
	assert.Equal(t, []int64{3}, recs[2].IDs)
	assert.Equal(t, record.Failed, recs[3].Type)
}

func TestCommentsAndBlankLinesSkipped(t *testing.T) {
	recs := parseAll(t, "c a comment\n\ni 1 1 0\n\nc trailing\n")
	require.Len(t, recs, 1)
	assert.Equal(t, record.Input, recs[0].Type)
}

func TestLeadingZeroRejected(t *testing.T) {
	r := ioline.New(strings.NewReader("i 01 1 0\n"), "test")
	p := New(r)
	_, err := p.Next()
	require.Error(t, err)
	var parseErr *checkerr.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestNegativeZeroRejected(t *testing.T) {
	r := ioline.New(strings.NewReader("i 1 -0 0\n"), "test")
	p := New(r)
	_, err := p.Next()
	require.Error(t, err)
}

func TestLiteralOverflowRejected(t *testing.T) {
	r := ioline.New(strings.NewReader("i 1 2147483648 0\n"), "test")
	p := New(r)
	_, err := p.Next()
	require.Error(t, err)
}

func TestZeroIdentifierRejected(t *testing.T) {
	r := ioline.New(strings.NewReader("i 0 1 0\n"), "test")
	p := New(r)
	_, err := p.Next()
	require.Error(t, err)
}

func TestInteractionsGrammarOmitsIDs(t *testing.T) {
	r := ioline.New(strings.NewReader("i 1 -2 0\nu 1 -2 0\n"), "test")
	p := NewInteractions(r)

	rec, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, record.Input, rec.Type)
	assert.EqualValues(t, 0, rec.ID)
	assert.Equal(t, []int32{1, -2}, rec.Lits)

	rec, err = p.Next()
	require.NoError(t, err)
	assert.Equal(t, record.Core, rec.Type)
	assert.Equal(t, []int32{1, -2}, rec.Lits)
	assert.Nil(t, rec.IDs)
}

func TestUnknownTypeLetter(t *testing.T) {
	r := ioline.New(strings.NewReader("z 1 0\n"), "test")
	p := New(r)
	_, err := p.Next()
	require.Error(t, err)
}
