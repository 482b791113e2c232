// Package clause owns the variable table and the clause store: the
// allocation of clauses, their active/inactive hash indices, the
// input-clause list, and the used-identifier bit-set (spec.md
// §4.3/4.4/§9). It is grounded directly on the tombstoned
// open-addressing hash table and doubling bit-table of the original
// checker, since no third-party library in the retrieval pack offers
// those exact semantics.
package clause

// Clause is an immutable literal vector plus its store-visible flags.
// Literal order is preserved from the record that created it.
type Clause struct {
	ID           int64
	Lits         []int32
	Input        bool // came from the CNF; never freed before shutdown
	Weakened     bool // currently inactive, kept for possible restore
	Tautological bool // contains both l and -l
	Lineno       int  // diagnostic aid, line of the defining record
}

// Store owns every clause and both of its identifier-keyed indices.
type Store struct {
	active   hashTable
	inactive hashTable
	inputs   []*Clause
	used     bitTable
	noReuse  bool
}

// NewStore creates an empty clause store. noReuse mirrors the
// --no-reuse flag and is reported by NoReuse; Allocate itself neither
// records identifiers nor rejects a repeat, callers use Reserved and
// MarkUsed for that.
func NewStore(noReuse bool) *Store {
	return &Store{noReuse: noReuse}
}

// Allocate builds a new clause from id/lits and inserts it into the
// active index. tautological is computed by the caller (the
// justification package owns the mark array used to detect it) and
// passed in, matching the original's single-pass-with-mark-aid
// computation happening just before allocation.
func (s *Store) Allocate(id int64, lits []int32, input, tautological bool, lineno int) *Clause {
	c := &Clause{ID: id, Lits: lits, Input: input, Tautological: tautological, Lineno: lineno}
	if input {
		s.inputs = append(s.inputs, c)
	}
	s.active.insert(c)
	return c
}

// Reserved reports whether id has ever been used as a clause
// identifier, regardless of whether that clause has since been
// deleted. It is only meaningful when reuse is disabled.
func (s *Store) Reserved(id int64) bool {
	return s.used.contains(id)
}

// MarkUsed records id as seen. Call exactly once per successfully
// allocated clause when reuse is disabled.
func (s *Store) MarkUsed(id int64) {
	s.used.insert(id)
}

// NoReuse reports whether identifier reuse is disabled for this store.
func (s *Store) NoReuse() bool { return s.noReuse }

// FindActive looks up a clause current usable as an antecedent.
func (s *Store) FindActive(id int64) *Clause { return s.active.find(id) }

// FindInactive looks up a weakened clause.
func (s *Store) FindInactive(id int64) *Clause { return s.inactive.find(id) }

// Delete removes a clause from the active index permanently. Input
// clauses are kept alive in the input list regardless.
func (s *Store) Delete(c *Clause) {
	s.active.remove(c)
}

// Weaken moves a clause from active to inactive, keeping its
// identifier and literal vector untouched.
func (s *Store) Weaken(c *Clause) {
	s.active.remove(c)
	c.Weakened = true
	s.inactive.insert(c)
}

// Restore moves a clause from inactive back to active.
func (s *Store) Restore(c *Clause) {
	s.inactive.remove(c)
	c.Weakened = false
	s.active.insert(c)
}

// Inputs returns every clause ever added as an input clause, in the
// order they were added. The slice must not be mutated by the caller.
func (s *Store) Inputs() []*Clause { return s.inputs }

// ActiveClauses returns every clause currently in the active index.
// Used only by the unguided (no antecedent hints) unit-propagation
// fallback in the justification engine; the guided path looks
// antecedents up individually by identifier instead of scanning.
func (s *Store) ActiveClauses() []*Clause {
	var out []*Clause
	for _, c := range s.active.table {
		if c != nil && c != removed {
			out = append(out, c)
		}
	}
	return out
}
