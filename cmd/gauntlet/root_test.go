// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"gauntlet-cli/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	wrapped := errors.New("matrix.cue: unclosed bracket")
	err := &ExitError{Code: types.ExitUsage, Err: wrapped}
	if err.Error() != wrapped.Error() {
		t.Errorf("Error() = %q, want the wrapped message", err.Error())
	}
	if !errors.Is(err, wrapped) {
		t.Error("ExitError should unwrap to its cause")
	}

	bare := &ExitError{Code: types.ExitFailure}
	if bare.Error() != "exit status 1" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 1")
	}
}

func TestNewExecutorSelection(t *testing.T) {
	t.Parallel()

	if _, err := newExecutor("native"); err != nil {
		t.Errorf("newExecutor(native) error = %v", err)
	}
	if _, err := newExecutor("virtual"); err != nil {
		t.Errorf("newExecutor(virtual) error = %v", err)
	}
	if _, err := newExecutor("container"); err == nil {
		t.Error("newExecutor(container) should fail")
	}
}
