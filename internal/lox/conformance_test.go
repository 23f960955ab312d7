package lox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sdecook/golox/internal/lox"
)

// TestConformance walks testdata/scripts and runs every *.lox file through
// the driver, asserting its output/exit code against the file's own
// `// expect:` annotations.
func TestConformance(t *testing.T) {
	entries, err := os.ReadDir("../../testdata/scripts")
	if err != nil {
		t.Fatalf("reading testdata/scripts: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lox" {
			continue
		}

		entry := entry
		t.Run(entry.Name(), func(t *testing.T) {
			path := filepath.Join("../../testdata/scripts", entry.Name())
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}

			expectation := lox.ParseExpectations(string(source))
			result := lox.RunConformanceScript(string(source))

			if ok, reason := expectation.Matches(result); !ok {
				t.Errorf("%s: %s\nstderr: %s", entry.Name(), reason, result.Stderr)
			}
		})
	}
}
