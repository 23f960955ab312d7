// Command lox-conformance runs every script under testdata/scripts
// in-process and prints a colorized pass/fail table, diffing each run's
// actual output against the script's own `// expect:` annotations.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sdecook/golox/internal/lox"
	flag "github.com/spf13/pflag"
)

const width = 120

var (
	filter       = flag.String("filter", "", "only run scripts whose name contains this substring")
	noFailStderr = flag.Bool("no-fail-stderr", false, "a script whose stderr lacks its expected error text still passes")
)

type result struct {
	name   string
	passed bool
	reason string
}

func main() {
	flag.Parse()

	dir := "testdata/scripts"
	if len(flag.Args()) == 1 {
		dir = flag.Args()[0]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", dir, err)
		os.Exit(1)
	}

	var results []result
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lox" {
			continue
		}
		if *filter != "" && !strings.Contains(entry.Name(), *filter) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		source, err := os.ReadFile(path)
		if err != nil {
			results = append(results, result{name: entry.Name(), passed: false, reason: err.Error()})
			continue
		}

		expectation := lox.ParseExpectations(string(source))
		actual := lox.RunConformanceScript(string(source))

		ok, reason := expectation.Matches(actual)
		if !ok && *noFailStderr && strings.Contains(reason, "stderr") {
			ok = true
		}
		results = append(results, result{name: entry.Name(), passed: ok, reason: reason})
	}

	printResults(results)

	for _, r := range results {
		if !r.passed {
			os.Exit(1)
		}
	}
}

func printResults(results []result) {
	divider := strings.Repeat("-", width)
	failCount := 0

	for _, r := range results {
		label := color.GreenString("passed")
		if !r.passed {
			label = color.RedString("failed")
			failCount++
		}

		spacing := width - len("  [passed] ") - len(r.name)
		if spacing < 1 {
			spacing = 1
		}
		fmt.Printf("  [%s] %s%s\n", label, r.name, strings.Repeat(" ", spacing))

		if !r.passed {
			fmt.Println(divider)
			fmt.Println(r.reason)
			fmt.Println(divider)
		}
	}

	fmt.Printf("\n%d passed, %d failed\n", len(results)-failCount, failCount)
}
