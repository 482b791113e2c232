// Package cli wires internal/session into a single cobra root command:
// flag parsing, optional config-file defaults, logging tiers and exit
// code selection (SPEC_FULL.md §A.3, §A.4).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is stamped at release time; "dev" covers a local build, the
// way most single-binary cobra CLIs in the pack leave it.
var version = "dev"

// runFlags collects the resolved command-line/config state that
// runChecker needs; it exists mainly so root.go and run.go don't have
// to pass six separate parameters around.
type runFlags struct {
	quiet    bool
	verbose  int
	logging  bool
	noReuse  bool
	mode     string // "strict", "relaxed" or "pedantic"
	config   string
}

var (
	flagQuiet    bool
	flagVerbose  int
	flagLogging  bool
	flagNoReuse  bool
	flagStrict   bool
	flagRelaxed  bool
	flagPedantic bool
	flagConfig   string

	rootCmd = &cobra.Command{
		Use:     "lidrup-check [options] <icnf> <lidrup>",
		Short:   "lidrup-check",
		Long:    "Checks an incremental DRUP proof against its interactions log, or a proof file alone.",
		Version:       version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flagConfig, flagConfig != "")
			if err != nil {
				return err
			}

			verbose := cfg.Verbose
			if flagVerbose > 0 {
				verbose = flagVerbose
			}

			flags := runFlags{
				quiet:   flagQuiet,
				verbose: verbose,
				logging: flagLogging,
				noReuse: flagNoReuse || cfg.NoReuse,
				mode:    resolveMode(cfg.Mode),
				config:  flagConfig,
			}

			code := runChecker(flags, args)
			if code != exitVerified {
				return exitCodeError(code)
			}
			return nil
		},
	}
)

// exitCodeError lets RunE signal a non-zero exit without cobra printing
// a redundant "Error:" line for what is, from the checker's point of
// view, an ordinary verified-or-not outcome rather than a usage error.
type exitCodeError int

func (e exitCodeError) Error() string { return "" }

// resolveMode picks strict/relaxed/pedantic with "last flag on the
// command line wins" semantics (matching the C original's single
// `mode` global, last assignment wins), falling back to the config
// file's mode and finally to strict.
func resolveMode(configMode string) string {
	var last string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--strict":
			last = "strict"
		case "--relaxed":
			last = "relaxed"
		case "--pedantic":
			last = "pedantic"
		}
	}
	if last != "" {
		return last
	}
	if configMode != "" {
		return configMode
	}
	return "strict"
}

// Execute parses flags, runs the checker and returns the process exit
// code; it never calls os.Exit itself so that internal/cli stays
// usable from tests.
func Execute() int {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagNoReuse, "no-reuse", "n", false, "reject reuse of a clause identifier, even after deletion")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "require every mandatory record (default)")
	rootCmd.PersistentFlags().BoolVar(&flagRelaxed, "relaxed", false, "tolerate a missing mandatory model/core record")
	rootCmd.PersistentFlags().BoolVar(&flagPedantic, "pedantic", false, "additionally require the p icnf/p lidrup headers")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a lidrup-check.yaml config file")

	if debugBuildsEnabled {
		rootCmd.PersistentFlags().BoolVarP(&flagLogging, "logging", "l", false, "raise the log level to trace (debug builds only)")
	}

	if err := rootCmd.Execute(); err != nil {
		if _, ok := err.(exitCodeError); ok {
			return int(err.(exitCodeError))
		}
		fmt.Fprintln(os.Stderr, "lidrup-check: "+err.Error())
		return exitFailed
	}
	return exitVerified
}
