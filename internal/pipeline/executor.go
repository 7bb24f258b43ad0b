// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"time"

	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"
)

type (
	// ExecContext is the isolated execution context one environment's steps
	// run against: a working directory, an environment-variable set, and the
	// directory the provisioner installed executables into.
	ExecContext struct {
		// WorkDir is the default working directory for steps.
		WorkDir string
		// Env is the complete environment-variable set. Steps see exactly
		// these variables, nothing inherited implicitly.
		Env map[string]string
		// BinDir is where provisioned executables live. It is already on
		// the context's PATH; the pipeline also uses it to police the
		// external-tools restriction.
		BinDir string
	}

	// StepResult is the outcome of executing a single step.
	StepResult struct {
		// ExitCode is the exit code of the child process.
		ExitCode types.ExitCode
		// Stdout contains the captured standard output.
		Stdout string
		// Stderr contains the captured standard error.
		Stderr string
		// Duration is the wall-clock execution time.
		Duration time.Duration
		// TimedOut reports whether the step was terminated by its timeout.
		TimedOut bool
		// Err carries an infrastructure failure (spawn error, interpreter
		// error). A non-zero exit from a well-behaved process is not an Err.
		Err error
	}

	// StepOutcome pairs a step with its result, in execution order.
	StepOutcome struct {
		Step   matrixfile.CommandStep
		Result *StepResult
	}

	// StepExecutor is the capability interface the pipeline spawns processes
	// through. Implementations must honor ctx cancellation and deadlines and
	// must capture stdout/stderr rather than writing to the parent's.
	StepExecutor interface {
		// Name identifies the executor in diagnostics.
		Name() string
		// Execute runs one step against the context and returns its result.
		Execute(ctx context.Context, step matrixfile.CommandStep, ectx ExecContext) *StepResult
	}
)

// Success reports whether the result matches the step's expected exit code
// with no infrastructure failure.
func (r *StepResult) Success(expected types.ExitCode) bool {
	return r.Err == nil && !r.TimedOut && r.ExitCode == expected
}

// EnvToSlice converts an environment-variable map to the KEY=VALUE slice
// form child processes expect.
func EnvToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}

// workDirFor resolves a step's working directory against the context.
func workDirFor(step matrixfile.CommandStep, ectx ExecContext) string {
	if step.WorkDir != "" {
		return step.WorkDir
	}
	return ectx.WorkDir
}
