package clause

// removed is the tombstone sentinel. A clause pointer is never equal
// to it, so it is safe to use as a distinguished marker alongside nil
// ("never occupied") and a live clause pointer.
var removed = &Clause{}

// hashTable is an open-addressing map from clause identifier to
// *Clause, sized to a power of two and grown before an insertion once
// the load factor has reached one half. Deletions leave a tombstone
// (removed) so that probe chains through a deleted slot are not broken.
type hashTable struct {
	table []*Clause
	count int // occupied slots, tombstones included until the next enlarge
}

func reduceHash(id int64, size int) int {
	return int(uint64(id) & uint64(size-1))
}

func (h *hashTable) find(id int64) *Clause {
	size := len(h.table)
	if size == 0 {
		return nil
	}
	start := reduceHash(id, size)
	pos := start
	for {
		res := h.table[pos]
		if res == nil {
			return nil
		}
		if res != removed && res.ID == id {
			return res
		}
		pos++
		if pos == size {
			pos = 0
		}
		if pos == start {
			return nil
		}
	}
}

func (h *hashTable) isFull() bool {
	size := len(h.table)
	return size == 0 || 2*h.count >= size
}

func (h *hashTable) enlarge() {
	oldTable := h.table
	newSize := 1
	if len(oldTable) > 0 {
		newSize = 2 * len(oldTable)
	}
	newTable := make([]*Clause, newSize)
	removedCount := 0
	for _, c := range oldTable {
		if c == nil {
			continue
		}
		if c == removed {
			removedCount++
			continue
		}
		pos := reduceHash(c.ID, newSize)
		for newTable[pos] != nil {
			pos++
			if pos == newSize {
				pos = 0
			}
		}
		newTable[pos] = c
	}
	h.table = newTable
	h.count -= removedCount
}

func (h *hashTable) insert(c *Clause) {
	if h.isFull() {
		h.enlarge()
	}
	size := len(h.table)
	start := reduceHash(c.ID, size)
	pos := start
	for {
		res := h.table[pos]
		if res == removed {
			break
		}
		if res == nil {
			h.count++
			break
		}
		pos++
		if pos == size {
			pos = 0
		}
	}
	h.table[pos] = c
}

// remove leaves a tombstone in place of c. Matching the original, this
// does not decrement count: count tracks "slots occupied since the
// last enlarge", not live entries, and is only reconciled by enlarge's
// own tombstone sweep.
func (h *hashTable) remove(c *Clause) {
	size := len(h.table)
	start := reduceHash(c.ID, size)
	pos := start
	for {
		if h.table[pos] == c {
			break
		}
		pos++
		if pos == size {
			pos = 0
		}
	}
	h.table[pos] = removed
}
