package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

var updateGolden = flag.Bool("update", false, "update golden files")

// packageDir is the working directory the test binary started in, so golden
// files resolve even after a test changes directory.
var packageDir = func() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}()

// Update returns true if golden files should be updated.
// Use with: go test -update
func Update() bool {
	return *updateGolden
}

// Golden compares actual output against testdata/<name>.golden in the test's
// package directory. With -update the golden file is rewritten instead.
func Golden(t testing.TB, name string, actual []byte) {
	t.Helper()

	dir := filepath.Join(packageDir, "testdata")
	goldenPath := filepath.Join(dir, name+".golden")

	if Update() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create testdata directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, actual, 0644); err != nil {
			t.Fatalf("Failed to write golden file %s: %v", goldenPath, err)
		}
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file %s does not exist. Run with -update to create it.", goldenPath)
		}
		t.Fatalf("Failed to read golden file %s: %v", goldenPath, err)
	}

	assert.Equal(t, string(expected), string(actual),
		"output does not match %s; run go test -update to refresh it", goldenPath)
}

// GoldenString is a convenience wrapper for Golden that accepts a string.
func GoldenString(t testing.TB, name string, actual string) {
	t.Helper()
	Golden(t, name, []byte(actual))
}

// StripANSI removes ANSI escape codes from a byte slice.
func StripANSI(data []byte) []byte {
	return []byte(StripANSIString(string(data)))
}

// StripANSIString removes ANSI escape codes from a string.
func StripANSIString(s string) string {
	var result []byte
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') {
				inEscape = false
			}
			continue
		}
		result = append(result, s[i])
	}
	return string(result)
}
