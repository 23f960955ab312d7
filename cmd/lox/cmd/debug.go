package cmd

import (
	"fmt"
	"os"

	"github.com/sdecook/golox/internal/lox"
	"github.com/spf13/cobra"
)

// tokenizeCmd and parseCmd expose the Scanner and Parser stages directly,
// for debugging a script without running it.

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Print the token stream for a script",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the parsed AST for a script",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
}

func runTokenize(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		exitCode = lox.ExitUsageError
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	reporter := lox.NewDefaultReporter(os.Stderr, noColor)
	tokens := lox.NewScanner(string(source), reporter).Scan()
	for _, t := range tokens {
		fmt.Println(t.String())
	}

	if reporter.HadCompileError {
		exitCode = lox.ExitCompileErr
	}
	return nil
}

func runParse(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		exitCode = lox.ExitUsageError
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	reporter := lox.NewDefaultReporter(os.Stderr, noColor)
	tokens := lox.NewScanner(string(source), reporter).Scan()
	stmts := lox.NewParser(tokens, reporter).Parse()
	for _, s := range stmts {
		fmt.Println(s.String())
	}

	if reporter.HadCompileError {
		exitCode = lox.ExitCompileErr
	}
	return nil
}
