// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"gauntlet-cli/pkg/matrixfile"
)

func requirePOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell tests are skipped on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNativeExecutorCapturesOutput(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	step := matrixfile.CommandStep{Program: "sh", Args: []string{"-c", "echo out; echo err >&2"}}
	result := NewNativeExecutor().Execute(context.Background(), step, ExecContext{
		WorkDir: t.TempDir(),
		Env:     map[string]string{"PATH": "/usr/bin:/bin"},
	})

	if result.Err != nil {
		t.Fatalf("Execute() infrastructure error = %v", result.Err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("Execute() exit code = %d, want 0 (stderr: %s)", result.ExitCode, result.Stderr)
	}
	if result.Stdout != "out\n" {
		t.Errorf("captured stdout = %q, want %q", result.Stdout, "out\n")
	}
	if result.Stderr != "err\n" {
		t.Errorf("captured stderr = %q, want %q", result.Stderr, "err\n")
	}
}

func TestNativeExecutorExitCode(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	step := matrixfile.CommandStep{Program: "sh", Args: []string{"-c", "exit 3"}}
	result := NewNativeExecutor().Execute(context.Background(), step, ExecContext{
		WorkDir: t.TempDir(),
		Env:     map[string]string{"PATH": "/usr/bin:/bin"},
	})

	if result.Err != nil {
		t.Fatalf("Execute() infrastructure error = %v", result.Err)
	}
	if result.ExitCode != 3 {
		t.Errorf("Execute() exit code = %d, want 3", result.ExitCode)
	}
}

func TestNativeExecutorTimeout(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	step := matrixfile.CommandStep{Program: "sh", Args: []string{"-c", "sleep 5"}}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result := NewNativeExecutor().Execute(ctx, step, ExecContext{
		WorkDir: t.TempDir(),
		Env:     map[string]string{"PATH": "/usr/bin:/bin"},
	})

	if !result.TimedOut {
		t.Error("Execute() should report TimedOut when the deadline elapses")
	}
}

func TestNativeExecutorSpawnFailure(t *testing.T) {
	t.Parallel()

	step := matrixfile.CommandStep{Program: "gauntlet-no-such-binary"}
	result := NewNativeExecutor().Execute(context.Background(), step, ExecContext{
		WorkDir: t.TempDir(),
		Env:     map[string]string{},
	})

	if result.Err == nil {
		t.Error("Execute() should surface a spawn failure as an infrastructure error")
	}
}

func TestVirtualExecutorRunsWithoutSystemShell(t *testing.T) {
	t.Parallel()
	requirePOSIXShell(t)

	// echo is an interpreter builtin in mvdan/sh, so this exercises the
	// virtual path without depending on any external binary.
	step := matrixfile.CommandStep{Program: "echo", Args: []string{"hello world"}}
	result := NewVirtualExecutor().Execute(context.Background(), step, ExecContext{
		WorkDir: t.TempDir(),
		Env:     map[string]string{"PATH": "/usr/bin:/bin"},
	})

	if result.Err != nil {
		t.Fatalf("Execute() infrastructure error = %v", result.Err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("Execute() exit code = %d, want 0", result.ExitCode)
	}
	if result.Stdout != "hello world\n" {
		t.Errorf("captured stdout = %q, want %q", result.Stdout, "hello world\n")
	}
}
