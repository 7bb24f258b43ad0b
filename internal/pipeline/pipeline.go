// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"
)

// Pipeline runs an environment's ordered steps through an injected executor.
type Pipeline struct {
	// Exec spawns the actual processes. Required.
	Exec StepExecutor
	// DefaultTimeout bounds steps that declare no timeout of their own.
	// Zero means no default bound.
	DefaultTimeout time.Duration
}

// New creates a Pipeline with the given executor.
func New(exec StepExecutor) *Pipeline {
	return &Pipeline{Exec: exec}
}

// Run executes the environment's run steps strictly in declared order.
// On the first non-success outcome the remaining steps do not execute and
// Run returns a *CommandError or *StepTimeoutError describing the failing
// step. The returned outcomes cover every step that was started, in order.
func (p *Pipeline) Run(ctx context.Context, env matrixfile.Environment, ectx ExecContext) ([]StepOutcome, error) {
	outcomes := make([]StepOutcome, 0, len(env.Steps))

	for i, step := range env.Steps {
		if !env.AllowExternalTools {
			if err := checkProvisionedTool(step, ectx, i); err != nil {
				return outcomes, err
			}
		}

		timeout := p.timeoutFor(step)
		result := p.RunStep(ctx, step, ectx, timeout)
		outcomes = append(outcomes, StepOutcome{Step: step, Result: result})

		if result.TimedOut {
			return outcomes, &StepTimeoutError{Step: step, Index: i, Timeout: timeout}
		}
		if !result.Success(step.ExpectedExit) {
			return outcomes, &CommandError{
				Step:     step,
				Index:    i,
				ExitCode: result.ExitCode,
				Expected: step.ExpectedExit,
				Stderr:   result.Stderr,
				Cause:    result.Err,
			}
		}
	}

	return outcomes, nil
}

// RunStep executes one step, bounding it with the given timeout when
// non-zero. Exposed for the provisioner, which reuses the same execution
// primitive for installer invocations but applies no timeout.
func (p *Pipeline) RunStep(ctx context.Context, step matrixfile.CommandStep, ectx ExecContext, timeout time.Duration) *StepResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return p.Exec.Execute(ctx, step, ectx)
}

// timeoutFor resolves a step's effective timeout: its own declaration wins,
// otherwise the pipeline default applies. The duration string was validated
// at parse time.
func (p *Pipeline) timeoutFor(step matrixfile.CommandStep) time.Duration {
	if d, err := step.TimeoutDuration(); err == nil && d > 0 {
		return d
	}
	return p.DefaultTimeout
}

// checkProvisionedTool enforces the external-tools restriction: when an
// environment does not allow external tools, every step program must resolve
// inside the provisioned bin directory.
func checkProvisionedTool(step matrixfile.CommandStep, ectx ExecContext, index int) error {
	if ectx.BinDir == "" {
		return nil
	}

	program := step.Program
	if strings.ContainsRune(program, os.PathSeparator) {
		abs, err := filepath.Abs(program)
		if err == nil && strings.HasPrefix(abs, ectx.BinDir+string(os.PathSeparator)) {
			return nil
		}
		return externalToolError(step, index)
	}

	if _, err := os.Stat(filepath.Join(ectx.BinDir, program)); err == nil {
		return nil
	}
	return externalToolError(step, index)
}

func externalToolError(step matrixfile.CommandStep, index int) error {
	return &CommandError{
		Step:     step,
		Index:    index,
		ExitCode: types.ExitFailure,
		Expected: step.ExpectedExit,
		Cause:    &ExternalToolError{Program: step.Program},
	}
}
