package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

const planCSV = "Activity,Start Date,End Date,Completion\n" +
	"Design,31/01/2024,02/02/2024,40%\n" +
	"Build,03/02/2024,10/02/2024,\n"

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "gantt.exe"
	}
	return "gantt"
}

// buildBinary compiles the CLI into a temp dir and returns its path.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	binaryPath := filepath.Join(t.TempDir(), binaryName())
	build := exec.Command("go", "build", "-o", binaryPath, ".")
	if output, err := build.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build gantt CLI: %v\n%s", err, output)
	}
	return binaryPath
}

func TestBinary(t *testing.T) {
	binaryPath := buildBinary(t)
	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, "plan.csv"), []byte(planCSV), 0644); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) ([]byte, error) {
		cmd := exec.Command(binaryPath, args...)
		cmd.Dir = workDir
		return cmd.CombinedOutput()
	}

	t.Run("version_command", func(t *testing.T) {
		output, err := run("version")
		if err != nil {
			t.Fatalf("version command failed: %v\n%s", err, output)
		}
		if !bytes.Contains(output, []byte("gantt version")) {
			t.Errorf("version output missing header:\n%s", output)
		}
	})

	t.Run("help_shows_commands", func(t *testing.T) {
		output, _ := run("--help")
		for _, name := range []string{"serve", "render", "show", "export", "config"} {
			if !bytes.Contains(output, []byte(name)) {
				t.Errorf("Help missing command: %s", name)
			}
		}
	})

	t.Run("render_png", func(t *testing.T) {
		output, err := run("render", "plan.csv", "-o", "plan.png")
		if err != nil {
			t.Fatalf("render failed: %v\n%s", err, output)
		}
		data, err := os.ReadFile(filepath.Join(workDir, "plan.png"))
		if err != nil {
			t.Fatalf("plan.png not written: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Error("plan.png is not a PNG")
		}
	})

	t.Run("unknown_backend_exit_code", func(t *testing.T) {
		output, err := run("render", "plan.csv", "--backend", "bmp")
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Expected a non-zero exit, got %v\n%s", err, output)
		}
		if exitErr.ExitCode() != 2 {
			t.Errorf("Exit code = %d, want 2", exitErr.ExitCode())
		}
		if !bytes.HasPrefix(output, []byte("Error: ")) {
			t.Errorf("Expected error prefix, got:\n%s", output)
		}
	})
}
