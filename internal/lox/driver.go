package lox

// Process exit codes, following the jlox convention.
const (
	ExitSuccess     = 0
	ExitUsageError  = 64
	ExitCompileErr  = 65
	ExitRuntimeErr  = 70
)

// Run drives one full Scan→Parse→Resolve→Interpret pass over source,
// reporting through reporter and emitting `print` output through print.
// It returns the process exit code by severity (70 > 65 > 0): a runtime
// error is only possible once every compile stage succeeded, so the two
// are mutually exclusive in one run.
func Run(source string, reporter Reporter, print func(string)) int {
	scanner := NewScanner(source, reporter)
	tokens := scanner.Scan()

	parser := NewParser(tokens, reporter)
	stmts := parser.Parse()

	if dr, ok := reporter.(*DefaultReporter); ok && dr.HadCompileError {
		return ExitCompileErr
	}

	resolver := NewResolver(reporter)
	locals := resolver.Resolve(stmts)

	if dr, ok := reporter.(*DefaultReporter); ok && dr.HadCompileError {
		return ExitCompileErr
	}

	interp := NewInterpreter(reporter, print)
	interp.SetLocals(locals)

	if err := interp.Interpret(stmts); err != nil {
		return ExitRuntimeErr
	}

	return ExitSuccess
}
