// Package cmd wires the golox CLI together with cobra: a root command that
// opens a REPL with no arguments or batch-runs a single script file.
package cmd

import (
	"fmt"
	"os"

	"github.com/sdecook/golox/internal/lox"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags (-ldflags "-X ...Version=...").
	Version = "0.1.0-dev"

	noColor  bool
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "A tree-walking interpreter for the Lox language",
	Long: `golox is a tree-walking interpreter for Lox: Scanner, Parser,
Resolver and Interpreter, in the style of Crafting Interpreters' jlox.

Run with no arguments to start an interactive REPL, or pass a single
script path to execute it in batch mode.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostics")
}

// Execute runs the CLI and returns the process exit code (the 0/64/65/70
// convention). Any error that comes back through cobra — an argument-count
// mistake cobra itself detects, or a script file that cannot be read — is
// printed to stderr and maps to 64.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return lox.ExitUsageError
	}
	return exitCode
}

func runRoot(_ *cobra.Command, args []string) error {
	reporter := lox.NewDefaultReporter(os.Stderr, noColor)

	if len(args) == 0 {
		repl := lox.NewREPL(reporter, os.Stdout)
		repl.Run(os.Stdin)
		return nil
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		exitCode = lox.ExitUsageError
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	exitCode = lox.Run(string(source), reporter, func(s string) { fmt.Println(s) })
	return nil
}
