// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualExecutor runs steps through the embedded mvdan/sh interpreter
// instead of spawning a system shell. External programs named by a step are
// still real child processes; the interpreter only replaces the spawning
// shell, which keeps behavior identical on hosts without /bin/sh.
type VirtualExecutor struct{}

// NewVirtualExecutor creates a new virtual executor.
func NewVirtualExecutor() *VirtualExecutor {
	return &VirtualExecutor{}
}

// Name returns the executor name.
func (e *VirtualExecutor) Name() string { return "virtual" }

// Execute runs the step through the interpreter with the context's working
// directory and environment-variable set, capturing stdout and stderr.
func (e *VirtualExecutor) Execute(ctx context.Context, step matrixfile.CommandStep, ectx ExecContext) *StepResult {
	start := time.Now()

	line, err := quoteStep(step)
	if err != nil {
		return &StepResult{ExitCode: types.ExitFailure, Err: err, Duration: time.Since(start)}
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), step.Program)
	if err != nil {
		return &StepResult{
			ExitCode: types.ExitFailure,
			Err:      fmt.Errorf("failed to parse step invocation: %w", err),
			Duration: time.Since(start),
		}
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Dir(workDirFor(step, ectx)),
		interp.Env(expand.ListEnviron(EnvToSlice(ectx.Env)...)),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		return &StepResult{
			ExitCode: types.ExitFailure,
			Err:      fmt.Errorf("failed to create interpreter: %w", err),
			Duration: time.Since(start),
		}
	}

	runErr := runner.Run(ctx, prog)
	result := &StepResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
	}

	if runErr != nil {
		var exitStatus interp.ExitStatus
		if errors.As(runErr, &exitStatus) {
			result.ExitCode = types.ExitCode(exitStatus)
		} else {
			result.ExitCode = types.ExitFailure
			result.Err = fmt.Errorf("step execution failed: %w", runErr)
		}
	}

	return result
}

// quoteStep renders program + args as a single shell line with every word
// quoted, so argument boundaries survive the interpreter untouched.
func quoteStep(step matrixfile.CommandStep) (string, error) {
	words := make([]string, 0, len(step.Args)+1)
	for _, w := range append([]string{step.Program}, step.Args...) {
		quoted, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote %q: %w", w, err)
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " "), nil
}
