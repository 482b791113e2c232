package stats

import (
	"fmt"
	"io"
	"syscall"
	"time"
)

// Statistics bundles the running counters with the timing state
// needed to print the shutdown summary (spec.md §4.8).
type Statistics struct {
	Counters
	start time.Time
}

// New starts the wall-clock timer and returns an empty Statistics.
func New() *Statistics {
	return &Statistics{start: time.Now()}
}

func (s *Statistics) wallClockSeconds() float64 {
	return time.Since(s.start).Seconds()
}

// processSeconds reads user+system CPU time consumed so far, the Go
// equivalent of the original's getrusage(RUSAGE_SELF)-based
// process_time.
func processSeconds() float64 {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	user := float64(ru.Utime.Sec) + float64(ru.Utime.Usec)/1e6
	sys := float64(ru.Stime.Sec) + float64(ru.Stime.Usec)/1e6
	return user + sys
}

func maximumResidentSetSizeMB() float64 {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	// Linux reports ru_maxrss in kilobytes.
	return float64(ru.Maxrss) / 1024.0
}

func average(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func percent(a, b float64) float64 { return average(100*a, b) }

// Print writes the shutdown summary in the same field layout as the
// original's print_statistics, to w (normally stdout, with the "c "
// comment prefix the rest of the checker's diagnostic output uses).
func (s *Statistics) Print(w io.Writer) {
	p := processSeconds()
	wall := s.wallClockSeconds()
	c := s.Counters

	fmt.Fprintf(w, "c %-20s %20d %12.2f per variable\n", "added:", c.Added, average(float64(c.Added), float64(c.Imported)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% queries\n", "conclusions:", c.Conclusions, percent(float64(c.Conclusions), float64(c.Queries)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% conclusions\n", "cores:", c.Cores, percent(float64(c.Cores), float64(c.Conclusions)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% lemmas\n", "checks:", c.Checks, percent(float64(c.Checks), float64(c.Lemmas)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% added\n", "deleted:", c.Deleted, percent(float64(c.Deleted), float64(c.Added)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% added\n", "inputs:", c.Inputs, percent(float64(c.Inputs), float64(c.Added)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% added\n", "lemmas:", c.Lemmas, percent(float64(c.Lemmas), float64(c.Added)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% conclusions\n", "models:", c.Models, percent(float64(c.Models), float64(c.Conclusions)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f per check\n", "resolutions:", c.Resolutions, average(float64(c.Resolutions), float64(c.Checks)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f per second\n", "queries:", c.Queries, average(float64(c.Queries), wall))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% weakened\n", "restored:", c.Restored, percent(float64(c.Restored), float64(c.Weakened)))
	fmt.Fprintf(w, "c %-20s %20d %12.2f %% inputs\n", "weakened:", c.Weakened, percent(float64(c.Weakened), float64(c.Inputs)))
	fmt.Fprintln(w, "c")
	fmt.Fprintf(w, "c %-20s %20.2f seconds %4.0f %% wall-clock\n", "process-time:", p, percent(p, wall))
	fmt.Fprintf(w, "c %-20s %20.2f seconds  100 %%\n", "wall-clock-time:", wall)
	fmt.Fprintf(w, "c %-20s %11.2f MB\n", "maximum-resident-set-size:", maximumResidentSetSizeMB())
}
