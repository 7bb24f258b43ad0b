// SPDX-License-Identifier: MPL-2.0

package matrixfile

import (
	"fmt"
	"time"

	"gauntlet-cli/pkg/types"
)

// CommandStep is one executable invocation inside an environment's
// provisioning or run sequence.
type CommandStep struct {
	// Program is the executable to invoke (required).
	Program string `json:"program"`
	// Args are the arguments passed to Program.
	Args []string `json:"args,omitempty"`
	// WorkDir overrides the working directory for this step.
	// Empty means the environment's provisioned working directory.
	WorkDir string `json:"workdir,omitempty"`
	// ExpectedExit is the exit code that counts as success (default 0).
	ExpectedExit types.ExitCode `json:"expected_exit,omitempty"`
	// Timeout is an optional Go duration string bounding this step's
	// execution. Empty means the configured default applies.
	Timeout string `json:"timeout,omitempty"`
}

// Validate checks the step's fields. The index and environment name are used
// in error messages only.
func (s CommandStep) Validate() error {
	if s.Program == "" {
		return fmt.Errorf("step program must not be empty")
	}
	if err := s.ExpectedExit.Validate(); err != nil {
		return err
	}
	if _, err := parseDuration("timeout", s.Timeout); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration returns the parsed per-step timeout, or 0 when the step
// does not declare one (caller applies the configured default).
func (s CommandStep) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", s.Timeout)
}

// String renders the step as a shell-like "program arg arg" line for
// diagnostics and reports.
func (s CommandStep) String() string {
	out := s.Program
	for _, a := range s.Args {
		out += " " + a
	}
	return out
}

// parseDuration parses a Go duration string and rejects zero or negative
// values. Returns (0, nil) when value is empty (caller applies a default).
// The fieldName is used in error messages.
func parseDuration(fieldName, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", fieldName, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", fieldName, value)
	}
	return d, nil
}
