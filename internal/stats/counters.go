// Package stats tracks the checker's running counters and prints the
// summary shown at shutdown or on a caught signal (spec.md §4.8, §5).
// It is grounded on the original checker's statistics struct and its
// process-time/signal-catching shutdown path.
package stats

// Counters mirrors the original's global statistics struct. Each field
// is incremented at the single well-defined call site spec.md §4.8
// names; nothing here recomputes a count from other state.
type Counters struct {
	Added       uint64
	Checks      uint64
	Conclusions uint64
	Cores       uint64
	Deleted     uint64
	Inputs      uint64
	Imported    uint64
	Lemmas      uint64
	Models      uint64
	Resolutions uint64
	Queries     uint64
	Restored    uint64
	Weakened    uint64
}
