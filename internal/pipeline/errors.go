// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"time"

	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"
)

// Sentinel errors for the pipeline failure taxonomy.
var (
	// ErrCommand is the sentinel error wrapped by CommandError.
	ErrCommand = errors.New("command execution failed")
	// ErrStepTimeout is the sentinel error wrapped by StepTimeoutError.
	ErrStepTimeout = errors.New("step timed out")
)

type (
	// CommandError is returned when a run step exits with an unexpected code
	// or cannot be spawned. It references the failing step and its captured
	// output so reports can show why the environment failed.
	CommandError struct {
		// Step is the failing step.
		Step matrixfile.CommandStep
		// Index is the step's position in the environment's run sequence.
		Index int
		// ExitCode is the observed exit code.
		ExitCode types.ExitCode
		// Expected is the exit code the step declared as success.
		Expected types.ExitCode
		// Stderr is the captured standard error of the failing step.
		Stderr string
		// Cause carries the spawn/interpreter error, if any.
		Cause error
	}

	// ExternalToolError is the cause recorded when a step names a program
	// outside the provisioned context while the environment does not allow
	// external tools.
	ExternalToolError struct {
		Program string
	}

	// StepTimeoutError is returned when a step exceeds its time budget and
	// is terminated.
	StepTimeoutError struct {
		// Step is the step that timed out.
		Step matrixfile.CommandStep
		// Index is the step's position in the environment's run sequence.
		Index int
		// Timeout is the budget that elapsed.
		Timeout time.Duration
	}
)

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step.String(), e.Cause)
	}
	return fmt.Sprintf("step %d (%s): exit code %d, expected %d", e.Index, e.Step.String(), e.ExitCode, e.Expected)
}

// Unwrap exposes ErrCommand and the underlying cause to errors.Is/As.
func (e *CommandError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrCommand, e.Cause}
	}
	return []error{ErrCommand}
}

// Error implements the error interface.
func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("program %q is not provisioned in this environment (set allow_external_tools to permit it)", e.Program)
}

// Error implements the error interface.
func (e *StepTimeoutError) Error() string {
	return fmt.Sprintf("step %d (%s): timed out after %s", e.Index, e.Step.String(), e.Timeout)
}

// Unwrap returns ErrStepTimeout for errors.Is() compatibility.
func (e *StepTimeoutError) Unwrap() error { return ErrStepTimeout }
