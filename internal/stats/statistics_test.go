package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintIncludesAllCounterLines(t *testing.T) {
	s := New()
	s.Added = 10
	s.Inputs = 3
	s.Lemmas = 7
	s.Checks = 7
	s.Queries = 2
	s.Conclusions = 2

	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()

	for _, want := range []string{"added:", "conclusions:", "cores:", "checks:", "deleted:",
		"inputs:", "lemmas:", "models:", "resolutions:", "queries:", "restored:", "weakened:",
		"process-time:", "wall-clock-time:", "maximum-resident-set-size:"} {
		assert.Contains(t, out, want)
	}
}

func TestPrintHandlesZeroDenominatorsWithoutDivideByZero(t *testing.T) {
	s := New()
	var buf bytes.Buffer
	assert.NotPanics(t, func() { s.Print(&buf) })
}
