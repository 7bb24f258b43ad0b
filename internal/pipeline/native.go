// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"
)

// NativeExecutor spawns each step as a child process via os/exec.
type NativeExecutor struct{}

// NewNativeExecutor creates a new native executor.
func NewNativeExecutor() *NativeExecutor {
	return &NativeExecutor{}
}

// Name returns the executor name.
func (e *NativeExecutor) Name() string { return "native" }

// Execute runs the step as a child process scoped to the context's working
// directory and environment-variable set, capturing stdout and stderr.
func (e *NativeExecutor) Execute(ctx context.Context, step matrixfile.CommandStep, ectx ExecContext) *StepResult {
	cmd := exec.CommandContext(ctx, step.Program, step.Args...)
	cmd.Dir = workDirFor(step, ectx)
	cmd.Env = EnvToSlice(ectx.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &StepResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = types.ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = types.ExitFailure
			result.Err = fmt.Errorf("failed to execute %q: %w", step.Program, err)
		}
	}

	return result
}
