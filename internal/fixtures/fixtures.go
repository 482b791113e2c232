// Package fixtures is test-support only: it drives a real incremental
// SAT solver (github.com/go-air/gini) over small random CNFs and
// renders the result as matching interactions/proof text, so the
// checker's own tests can be run against solver-shaped input instead
// of only hand-written proofs. It is the in-repo stand-in for the
// separate random-test generator spec.md keeps out of the shipped
// product.
package fixtures

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// CNF is a small random formula over variables 1..NumVars.
type CNF struct {
	NumVars int
	Clauses [][]int32
}

// Random builds a random CNF: numClauses clauses, each of width
// 2 or 3 (capped at numVars) drawn from numVars variables with random
// polarity. It does
// not guarantee satisfiability; call Solve to find out.
func Random(rng *rand.Rand, numVars, numClauses int) CNF {
	cnf := CNF{NumVars: numVars}
	for i := 0; i < numClauses; i++ {
		width := 2 + rng.Intn(2)
		if width > numVars {
			width = numVars
		}
		seen := map[int32]bool{}
		var clause []int32
		for len(clause) < width {
			v := int32(1 + rng.Intn(numVars))
			if seen[v] {
				continue
			}
			seen[v] = true
			lit := v
			if rng.Intn(2) == 0 {
				lit = -v
			}
			clause = append(clause, lit)
		}
		cnf.Clauses = append(cnf.Clauses, clause)
	}
	return cnf
}

// Solve runs gini over the formula and reports satisfiability plus,
// when satisfiable, a total model (one signed literal per variable).
func Solve(cnf CNF) (sat bool, model []int32) {
	g := gini.New()
	for _, clause := range cnf.Clauses {
		for _, lit := range clause {
			g.Add(litOf(lit))
		}
		g.Add(z.LitNull)
	}

	switch g.Solve() {
	case 1:
		model = make([]int32, cnf.NumVars)
		for v := 1; v <= cnf.NumVars; v++ {
			lit := int32(v)
			if !g.Value(z.Var(v).Pos()) {
				lit = -lit
			}
			model[v-1] = lit
		}
		return true, model
	default:
		return false, nil
	}
}

func litOf(lit int32) z.Lit {
	v := lit
	neg := false
	if v < 0 {
		v = -v
		neg = true
	}
	if neg {
		return z.Var(v).Neg()
	}
	return z.Var(v).Pos()
}

// ICNFText renders the formula as an interactions-stream document: one
// "i" record per clause (no identifier, per spec.md §4.2's interactions
// grammar) plus a "p icnf" header.
func ICNFText(cnf CNF) string {
	var b strings.Builder
	b.WriteString("p icnf\n")
	for _, clause := range cnf.Clauses {
		writeClauseRecord(&b, 'i', 0, clause)
	}
	return b.String()
}

// LIDRUPText renders a proof stream that merely re-asserts the inputs,
// makes an unconditional query (no assumption literals, so every
// model or core trivially satisfies it), and concludes with either the
// model Solve found or (when unsatisfiable) an empty unsatisfiable core
// whose antecedent list names every input clause's identifier in turn. This is only ever satisfiable-by-construction or
// trivially-unsatisfiable-by-construction test input, not a stand-in
// for a real incremental solver's trace.
func LIDRUPText(cnf CNF, sat bool, model []int32) string {
	var b strings.Builder
	b.WriteString("p lidrup\n")
	for i, clause := range cnf.Clauses {
		writeClauseRecord(&b, 'i', int64(i+1), clause)
	}

	writeClauseRecord(&b, 'q', 0, nil)

	if sat {
		fmt.Fprintf(&b, "s SATISFIABLE\n")
		writeClauseRecord(&b, 'm', 0, model)
		return b.String()
	}

	fmt.Fprintf(&b, "s UNSATISFIABLE\n")
	// Walking every input clause in order derives a conflict for the
	// empty core when the inputs are complementary unit clauses, which
	// is the shape GenerateUnsat returns.
	ids := make([]int64, len(cnf.Clauses))
	for i := range cnf.Clauses {
		ids[i] = int64(i + 1)
	}
	writeCoreRecord(&b, nil, ids)
	return b.String()
}

func writeClauseRecord(b *strings.Builder, typ byte, id int64, lits []int32) {
	b.WriteByte(typ)
	if id != 0 {
		fmt.Fprintf(b, " %d", id)
	}
	b.WriteByte(' ')
	for _, lit := range lits {
		fmt.Fprintf(b, "%d ", lit)
	}
	b.WriteString("0\n")
}

func writeCoreRecord(b *strings.Builder, lits []int32, ids []int64) {
	b.WriteByte('u')
	b.WriteByte(' ')
	for _, lit := range lits {
		fmt.Fprintf(b, "%d ", lit)
	}
	b.WriteString("0 ")
	for _, id := range ids {
		fmt.Fprintf(b, "%d ", id)
	}
	b.WriteString("0\n")
}

// GenerateUnsat builds the simplest possible unsatisfiable fixture: a
// single variable asserted both positively and negatively as two unit
// input clauses, which resolve directly against each other. Good
// enough for exercising the UNSATISFIABLE/core path end to end without
// needing a real resolution trace from the solver.
func GenerateUnsat() CNF {
	return CNF{NumVars: 1, Clauses: [][]int32{{1}, {-1}}}
}
