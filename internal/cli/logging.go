package cli

import (
	"os"

	"github.com/alecthomas/repr"
	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"

	"github.com/lidrupcheck/lidrup-check/internal/record"
	"github.com/lidrupcheck/lidrup-check/internal/stats"
)

// debugBuildsEnabled stands in for the original's `#ifndef NDEBUG`: the
// C tool compiles -l/--logging out of release builds entirely, but a
// Go build tag would make the flag untestable in any single build, so
// this is a plain runtime switch instead.
const debugBuildsEnabled = true

// newLogger builds the logger that backs the message/verbose/debug
// tiers described in SPEC_FULL.md §A.1. quiet suppresses Info,
// verbose raises the floor to Debug, logging (only honoured when
// debugBuildsEnabled) raises it further to Trace.
func newLogger(quiet bool, verbose int, logging bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case quiet:
		logger.SetLevel(logrus.ErrorLevel)
	case logging && debugBuildsEnabled:
		logger.SetLevel(logrus.TraceLevel)
	case verbose > 0:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// debugRecord dumps a parsed record through repr at Trace level, the
// structured-dump replacement for the original's debug_clause buffer
// formatting.
func debugRecord(logger *logrus.Logger, rec record.Record) {
	if logger.IsLevelEnabled(logrus.TraceLevel) {
		logger.Trace(repr.String(rec))
	}
}

// printStatsPretty renders the run's statistics with pp when -v is
// passed twice or more, in addition to the plain "c "-prefixed block
// every run prints.
func printStatsPretty(verbose int, s *stats.Statistics) {
	if verbose < 2 {
		return
	}
	pp.Println(s)
}
