package clause

// VariableTable holds every per-literal and per-variable array the
// checker needs, lazily grown as new variable indices are imported
// (spec.md §4.3). Per-literal arrays are symmetric about zero: index
// them with a signed literal, never a variable index.
type VariableTable struct {
	maxVar    int32
	allocated int32 // allocated capacity, always > maxVar once nonzero

	values []int8 // indexed by literal + allocated, range [-1,0,1]
	marks  []bool // indexed by literal + allocated

	imported []bool // indexed by variable index, 1-based

	Trail []int32 // assignment trail, resized in step with allocated
}

// NewVariableTable returns an empty table. Everything grows on demand
// from Import.
func NewVariableTable() *VariableTable {
	return &VariableTable{}
}

// MaxVar is the largest variable index imported so far.
func (v *VariableTable) MaxVar() int32 { return v.maxVar }

func (v *VariableTable) index(lit int32) int32 { return lit + v.allocated }

// Value returns the current truth value of a literal: -1, 0 or 1.
func (v *VariableTable) Value(lit int32) int8 {
	return v.values[v.index(lit)]
}

// setValue assigns a literal's truth value directly; used by Assign
// and Unassign.
func (v *VariableTable) setValue(lit int32, val int8) {
	v.values[v.index(lit)] = val
}

// Mark reports whether a literal is currently marked.
func (v *VariableTable) Mark(lit int32) bool {
	return v.marks[v.index(lit)]
}

// SetMark sets or clears a literal's mark bit.
func (v *VariableTable) SetMark(lit int32, set bool) {
	v.marks[v.index(lit)] = set
}

// Imported reports whether a variable index has ever been imported.
func (v *VariableTable) Imported(idx int32) bool {
	if idx > v.maxVar {
		return false
	}
	return v.imported[idx]
}

// Import grows the table to cover idx if necessary and marks it
// imported. It is idempotent and monotone: capacity only grows.
func (v *VariableTable) Import(idx int32) {
	if idx > v.maxVar {
		v.increaseMaxVar(idx)
	}
	if !v.imported[idx] {
		v.imported[idx] = true
	}
}

func (v *VariableTable) increaseMaxVar(idx int32) {
	if idx >= v.allocated {
		v.increaseAllocated(idx)
	}
	v.maxVar = idx
}

// increaseAllocated doubles capacity until idx fits, copying existing
// per-literal/per-variable contents into the new arrays and resetting
// the (always-empty-between-checks) trail to the new capacity.
func (v *VariableTable) increaseAllocated(idx int32) {
	newAllocated := v.allocated
	if newAllocated == 0 {
		newAllocated = 1
	}
	for idx >= newAllocated {
		newAllocated *= 2
	}

	newValues := make([]int8, 2*newAllocated)
	newMarks := make([]bool, 2*newAllocated)
	if v.maxVar > 0 {
		for lit := -v.maxVar; lit <= v.maxVar; lit++ {
			newValues[lit+newAllocated] = v.values[lit+v.allocated]
			newMarks[lit+newAllocated] = v.marks[lit+v.allocated]
		}
	}
	v.values = newValues
	v.marks = newMarks

	newImported := make([]bool, newAllocated+1)
	copy(newImported, v.imported)
	v.imported = newImported

	v.Trail = make([]int32, 0, newAllocated)

	v.allocated = newAllocated
}

// Assign pushes lit onto the trail as true.
func (v *VariableTable) Assign(lit int32) {
	v.setValue(lit, 1)
	v.setValue(-lit, -1)
	v.Trail = append(v.Trail, lit)
}

// Unassign resets lit and its negation to unknown. It does not touch
// the trail; ClearTrail unwinds the trail in reverse order with it.
func (v *VariableTable) Unassign(lit int32) {
	v.setValue(lit, 0)
	v.setValue(-lit, 0)
}

// ClearTrail unassigns every literal currently on the trail, in
// reverse order, and empties it.
func (v *VariableTable) ClearTrail() {
	for i := len(v.Trail) - 1; i >= 0; i-- {
		v.Unassign(v.Trail[i])
	}
	v.Trail = v.Trail[:0]
}
