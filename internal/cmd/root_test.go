package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/output"
	"github.com/gantt-tools/gantt-go/internal/testutil"
)

// executeCommand runs the real command tree with flags reset to their
// defaults and returns the combined output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupProject creates a project with a config file and makes it the
// working directory for the test.
func setupProject(t *testing.T, opts ...testutil.ConfigOption) string {
	t.Helper()
	dir := testutil.TempProjectWithConfig(t, testutil.NewTestConfig(t, opts...))
	t.Chdir(dir)
	return dir
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected ExitError, got %T: %v", err, err)
	}
	return exitErr.Code
}

func TestRootHelp(t *testing.T) {
	setupProject(t)

	output, err := executeCommand(t, "", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, sub := range []string{"serve", "render", "show", "export", "config", "version"} {
		if !strings.Contains(output, sub) {
			t.Errorf("Expected help to list %q, got:\n%s", sub, output)
		}
	}
	for _, flag := range []string{"--config", "--no-color", "--log-level", "--log-json"} {
		if !strings.Contains(output, flag) {
			t.Errorf("Expected help to mention %s", flag)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	setupProject(t)

	output, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	expected := []string{"gantt version dev", "commit:", "go:", "backends: [pdf png svg text]"}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestNoColorFlag(t *testing.T) {
	setupProject(t)
	t.Cleanup(output.EnableColor)

	if _, err := executeCommand(t, "", "version", "--no-color"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if output.IsColorEnabled() {
		t.Error("Expected color disabled after --no-color")
	}
	if got := output.Color("x", output.Red); got != "x" {
		t.Errorf("Color() = %q, want plain text", got)
	}
}

func TestLogFlags(t *testing.T) {
	dir := setupProject(t)
	testutil.WriteFile(t, dir, "plan.csv", []byte(testutil.SampleCanonicalCSV))

	output, err := executeCommand(t, "", "export", "plan.csv", "-o", "-", "--log-level", "warn", "--log-json")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(output, "Removed 1 rows with invalid dates") || !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("Expected JSON warning in output, got:\n%s", output)
	}
	if strings.Contains(output, "dataset loaded") {
		t.Errorf("Info log should be filtered at warn level, got:\n%s", output)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := setupProject(t)
	other := testutil.NewTestConfig(t, testutil.WithChartTitle("From flag"))
	path := filepath.Join(dir, "other.yaml")
	if err := other.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	output, err := executeCommand(t, "", "config", "--config", path)
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(output, "From flag") {
		t.Errorf("Expected title from --config file, got:\n%s", output)
	}
	if !strings.Contains(output, path) {
		t.Errorf("Expected config path %s in output", path)
	}
}

func TestInvalidConfigExitCode(t *testing.T) {
	dir := setupProject(t, func(c *config.Config) { c.Gantt.Chart.Width = 10 })
	testutil.WriteFile(t, dir, "plan.csv", []byte(testutil.SampleCanonicalCSV))

	_, err := executeCommand(t, "", "render", "plan.csv")
	if err == nil {
		t.Fatal("Expected error for invalid config")
	}
	if code := exitCode(t, err); code != 2 {
		t.Errorf("Expected exit code 2, got %d", code)
	}
	if !strings.Contains(err.Error(), "Width") {
		t.Errorf("Expected error to name the field, got %v", err)
	}
}

func TestExitError(t *testing.T) {
	err := NewExitError(3, "boom")
	if err.Error() != "boom" {
		t.Errorf("Expected message boom, got %q", err.Error())
	}

	var exitErr *ExitError
	if !errors.As(error(err), &exitErr) || exitErr.Code != 3 {
		t.Errorf("Expected ExitError with code 3")
	}
}
