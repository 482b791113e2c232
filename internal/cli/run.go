package cli

import (
	"fmt"
	"os"

	"github.com/gofrs/uuid"
	"golang.org/x/term"

	"github.com/lidrupcheck/lidrup-check/internal/ioline"
	"github.com/lidrupcheck/lidrup-check/internal/parse"
	"github.com/lidrupcheck/lidrup-check/internal/session"
	"github.com/lidrupcheck/lidrup-check/internal/stats"
)

// Exit codes, §6/§7: 0 verified, 1 parse/check/line failure, 2 partial
// check tolerated in relaxed mode.
const (
	exitVerified = 0
	exitFailed   = 1
	exitPartial  = 2
)

// runChecker opens the one or two input files named by args, drives a
// Session to completion, prints the closing statistics block unless
// quiet, and returns the process exit code.
func runChecker(flags runFlags, args []string) int {
	logger := newLogger(flags.quiet, flags.verbose, flags.logging)

	runID, err := uuid.NewV4()
	if err != nil {
		// Never fatal: the run identifier is diagnostic sugar, not a
		// correctness requirement.
		runID = uuid.Nil
	}
	if flags.verbose > 0 {
		logger.Infof("run %s starting in %s mode", runID, flags.mode)
	}

	readers, closeAll, err := openInputs(args)
	if err != nil {
		logger.Error(err)
		return exitFailed
	}
	defer closeAll()

	mode := session.Strict
	switch flags.mode {
	case "relaxed":
		mode = session.Relaxed
	case "pedantic":
		mode = session.Pedantic
	}

	var sess *session.Session
	if len(readers) == 1 {
		sess = session.NewSolo(parse.New(readers[0]), mode, flags.noReuse)
	} else {
		sess = session.New(parse.NewInteractions(readers[0]), parse.New(readers[1]), mode, flags.noReuse)
	}

	statistics := stats.New()
	handler := stats.InstallSignalHandler(statistics, os.Stderr, flags.verbose > 0)
	defer handler.Stop()

	runErr := sess.Run()
	statistics.Counters = *sess.Counters()

	if !flags.quiet {
		printClosingBlock(os.Stdout, statistics, term.IsTerminal(int(os.Stdout.Fd())))
		printStatsPretty(flags.verbose, statistics)
	}

	if runErr != nil {
		reportError(runErr)
		return exitFailed
	}
	if sess.Partial {
		if flags.verbose > 0 {
			logger.Warn("partial check: a mandatory record was tolerated in relaxed mode")
		}
		return exitPartial
	}
	return exitVerified
}

// openInputs resolves the positional arguments into parser readers: one
// file means proof-only mode, two means <icnf> <lidrup>.
func openInputs(args []string) (readers []*ioline.Reader, closeAll func(), err error) {
	for _, path := range args {
		r, openErr := ioline.Open(path)
		if openErr != nil {
			for _, opened := range readers {
				opened.Close()
			}
			return nil, func() {}, openErr
		}
		readers = append(readers, r)
	}
	return readers, func() {
		for _, r := range readers {
			r.Close()
		}
	}, nil
}

// printClosingBlock writes the "c "-prefixed statistics summary,
// slightly decorated with a banner rule when stdout is a terminal
// (SPEC_FULL.md §A.4); the underlying fields are identical either way.
func printClosingBlock(w *os.File, s *stats.Statistics, tty bool) {
	if tty {
		fmt.Fprintln(w, "c ----------------------------------------")
	}
	s.Print(w)
}

// reportError prints a checker failure the way the original's
// die/parse_error/check_error/line_error family does: always to
// stderr, regardless of --quiet, and never through logrus so it
// survives a quiet run untouched. checkerr's four types and a plain
// file-I/O error all format the same way, through their Error() string.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, "lidrup-check: "+err.Error())
}
