// Command lox is the golox CLI: zero arguments opens a REPL, one argument
// batch-runs a script, and a handful of debug subcommands expose the
// individual pipeline stages.
package main

import (
	"os"

	"github.com/sdecook/golox/cmd/lox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
