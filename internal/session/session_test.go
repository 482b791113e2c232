package session

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidrupcheck/lidrup-check/internal/fixtures"
	"github.com/lidrupcheck/lidrup-check/internal/ioline"
	"github.com/lidrupcheck/lidrup-check/internal/parse"
)

func soloSession(text string, mode Mode, noReuse bool) *Session {
	r := ioline.New(strings.NewReader(text), "test")
	p := parse.New(r)
	return NewSolo(p, mode, noReuse)
}

// Scenario: a trivially unsatisfiable two-clause core, checked via an
// explicit resolution antecedent (spec.md §8 scenario for core checks).
func TestSoloUnsatisfiableCoreVerifies(t *testing.T) {
	s := soloSession("i 1 1 2 0\ni 2 -1 -2 0\na 1 2 0\ns UNSATISFIABLE\nu 1 2 0 2 0\n", Strict, false)
	err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Counters().Cores)
	assert.EqualValues(t, 1, s.Counters().Conclusions)
	assert.False(t, s.Partial)
}

// Scenario: a satisfiable query with a model that is checked for
// consistency and for satisfying every input clause (spec.md §8
// scenario for model checks).
func TestSoloSatisfiableModelVerifies(t *testing.T) {
	s := soloSession("i 1 1 2 0\na 1 0\ns SATISFIABLE\nm 1 -2 0\n", Strict, false)
	err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Counters().Models)
}

func TestSoloModelViolatingInputClauseFails(t *testing.T) {
	s := soloSession("i 1 1 2 0\na 1 0\ns SATISFIABLE\nm -1 -2 0\n", Strict, false)
	err := s.Run()
	require.Error(t, err)
}

func TestSoloMissingModelStrictFails(t *testing.T) {
	s := soloSession("a 1 0\ns SATISFIABLE\n", Strict, false)
	err := s.Run()
	require.Error(t, err)
}

func TestSoloMissingModelRelaxedTolerated(t *testing.T) {
	s := soloSession("a 1 0\ns SATISFIABLE\n", Relaxed, false)
	err := s.Run()
	require.NoError(t, err)
	assert.True(t, s.Partial)
}

func TestSoloLemmaCheckedAgainstInputUnits(t *testing.T) {
	s := soloSession("i 1 1 0\ni 2 -1 2 0\nl 3 2 0 1 2 0\n", Strict, false)
	err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Counters().Lemmas)
}

// Scenario: a pure-RUP lemma (no antecedent identifiers) whose literal
// is not actually forced by unit propagation over the clauses already
// active must fail, not be accepted vacuously by matching against
// itself once inserted.
func TestSoloUnsupportedPureRUPLemmaFails(t *testing.T) {
	s := soloSession("i 1 1 0\nl 2 7 0 0\n", Strict, false)
	err := s.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lemma resolution check failed")
	assert.EqualValues(t, 0, s.Counters().Lemmas)
}

func TestSoloUnknownAntecedentSurfacesLineError(t *testing.T) {
	s := soloSession("i 1 1 0\nl 3 2 0 99 0\n", Strict, false)
	err := s.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown antecedent")
}

func TestSoloNoReuseRejectsRepeatedIdentifier(t *testing.T) {
	s := soloSession("i 1 1 0\ni 1 2 0\n", Strict, true)
	err := s.Run()
	require.Error(t, err)
}

func TestSoloWeakenRestoreRoundTrip(t *testing.T) {
	s := soloSession("i 1 1 0\nw 1 0\nr 1 0\n", Strict, false)
	err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Counters().Weakened)
	assert.EqualValues(t, 1, s.Counters().Restored)
}

func TestSoloDeleteOfUnknownClauseFails(t *testing.T) {
	s := soloSession("d 1 0\n", Strict, false)
	err := s.Run()
	require.Error(t, err)
}

func twoStreamSession(interactions, proof string, mode Mode, noReuse bool) *Session {
	ir := ioline.New(strings.NewReader(interactions), "interactions")
	pr := ioline.New(strings.NewReader(proof), "proof")
	return New(parse.NewInteractions(ir), parse.New(pr), mode, noReuse)
}

// Scenario: the two-stream state machine walks interactions and proof
// in lock-step, cross-checking the unsatisfiable core each reports.
func TestTwoStreamUnsatisfiableCoreVerifies(t *testing.T) {
	s := twoStreamSession(
		"i 1 2 0\ni -1 -2 0\na 1 2 0\ns UNSATISFIABLE\nu 1 2 0\n",
		"i 1 1 2 0\ni 2 -1 -2 0\nq 1 2 0\ns UNSATISFIABLE\nu 1 2 0 2 0\n",
		Strict, false)
	err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Counters().Cores)
	assert.EqualValues(t, 1, s.Counters().Conclusions)
}

// Scenario: the two-stream state machine walks a satisfiable query
// through to a model cross-checked against both streams.
func TestTwoStreamSatisfiableModelVerifies(t *testing.T) {
	s := twoStreamSession(
		"i 1 2 0\na 1 0\ns SATISFIABLE\nm 1 -2 0\n",
		"i 1 1 2 0\nq 1 0\ns SATISFIABLE\nm 1 -2 0\n",
		Strict, false)
	err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Counters().Models)
}

// Scenario: the proof stream's model disagreeing with what the
// interactions stream already committed to is a cross-check failure,
// not merely an independent-model failure.
func TestTwoStreamModelMismatchAcrossStreamsFails(t *testing.T) {
	s := twoStreamSession(
		"i 1 2 0\na 1 0\ns SATISFIABLE\nm 1 -2 0\n",
		"i 1 1 2 0\nq 1 0\ns SATISFIABLE\nm 1 2 0\n",
		Strict, false)
	err := s.Run()
	require.Error(t, err)
}

// Scenario: an input clause diverging between the two streams is
// caught before it ever reaches the clause store.
func TestTwoStreamMismatchedInputClauseFails(t *testing.T) {
	s := twoStreamSession(
		"i 1 2 0\na 1 0\ns SATISFIABLE\nm 1 -2 0\n",
		"i 1 1 3 0\nq 1 0\ns SATISFIABLE\nm 1 -2 0\n",
		Strict, false)
	err := s.Run()
	require.Error(t, err)
}

// Scenario: the fixtures package's fixed unsatisfiable CNF, rendered by
// its proof writer, verifies end to end in solo mode, exercising the
// generator rather than a hand-written proof.
func TestSoloVerifiesGiniGeneratedUnsatFixture(t *testing.T) {
	cnf := fixtures.GenerateUnsat()
	text := fixtures.LIDRUPText(cnf, false, nil)

	s := soloSession(text, Strict, false)
	err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Counters().Cores)
}

// Scenario: a gini-solved satisfiable fixture verifies end to end in
// solo mode; the random search retries until it lands on a
// satisfiable instance, since Random makes no such guarantee.
func TestSoloVerifiesGiniGeneratedSatFixture(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for attempt := 0; attempt < 50; attempt++ {
		cnf := fixtures.Random(rng, 4, 4)
		sat, model := fixtures.Solve(cnf)
		if !sat {
			continue
		}
		text := fixtures.LIDRUPText(cnf, true, model)
		s := soloSession(text, Strict, false)
		err := s.Run()
		require.NoError(t, err)
		assert.EqualValues(t, 1, s.Counters().Models)
		return
	}
	t.Fatal("no satisfiable fixture found in 50 attempts")
}
