// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"testing"

	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"
)

// fakeExecutor returns scripted results per program name and records the
// order steps were started in.
type fakeExecutor struct {
	results  map[string]*StepResult
	executed []string
}

func (f *fakeExecutor) Name() string { return "fake" }

func (f *fakeExecutor) Execute(_ context.Context, step matrixfile.CommandStep, _ ExecContext) *StepResult {
	f.executed = append(f.executed, step.Program)
	if r, ok := f.results[step.Program]; ok {
		return r
	}
	return &StepResult{ExitCode: 0}
}

func allowAll(steps ...matrixfile.CommandStep) matrixfile.Environment {
	return matrixfile.Environment{Name: "test", AllowExternalTools: true, Steps: steps}
}

func TestRunAllStepsPass(t *testing.T) {
	t.Parallel()

	fake := &fakeExecutor{}
	env := allowAll(
		matrixfile.CommandStep{Program: "first"},
		matrixfile.CommandStep{Program: "second"},
		matrixfile.CommandStep{Program: "third"},
	)

	outcomes, err := New(fake).Run(context.Background(), env, ExecContext{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("Run() produced %d outcomes, want 3", len(outcomes))
	}
	want := []string{"first", "second", "third"}
	for i, program := range want {
		if fake.executed[i] != program {
			t.Errorf("execution order[%d] = %q, want %q", i, fake.executed[i], program)
		}
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeExecutor{
		results: map[string]*StepResult{
			"second": {ExitCode: 1, Stderr: "boom"},
		},
	}
	env := allowAll(
		matrixfile.CommandStep{Program: "first"},
		matrixfile.CommandStep{Program: "second"},
		matrixfile.CommandStep{Program: "third"},
	)

	outcomes, err := New(fake).Run(context.Background(), env, ExecContext{})
	if err == nil {
		t.Fatal("Run() succeeded, want CommandError")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error is not a *CommandError: %v", err)
	}
	if cmdErr.Index != 1 {
		t.Errorf("failing step index = %d, want 1", cmdErr.Index)
	}
	if cmdErr.Stderr != "boom" {
		t.Errorf("CommandError.Stderr = %q, want %q", cmdErr.Stderr, "boom")
	}
	if !errors.Is(err, ErrCommand) {
		t.Errorf("error does not wrap ErrCommand: %v", err)
	}

	if len(fake.executed) != 2 {
		t.Errorf("executed %v, want exactly [first second]", fake.executed)
	}
	if len(outcomes) != 2 {
		t.Errorf("Run() produced %d outcomes, want 2", len(outcomes))
	}
}

func TestRunExpectedExitCode(t *testing.T) {
	t.Parallel()

	// A step may declare a non-zero exit code as success.
	fake := &fakeExecutor{
		results: map[string]*StepResult{
			"differ": {ExitCode: 1},
		},
	}
	env := allowAll(matrixfile.CommandStep{Program: "differ", ExpectedExit: types.ExitCode(1)})

	if _, err := New(fake).Run(context.Background(), env, ExecContext{}); err != nil {
		t.Fatalf("Run() error = %v, want success for matching expected exit", err)
	}
}

func TestRunTimeoutStopsPipeline(t *testing.T) {
	t.Parallel()

	fake := &fakeExecutor{
		results: map[string]*StepResult{
			"slow": {ExitCode: 1, TimedOut: true},
		},
	}
	env := allowAll(
		matrixfile.CommandStep{Program: "slow", Timeout: "10ms"},
		matrixfile.CommandStep{Program: "after"},
	)

	outcomes, err := New(fake).Run(context.Background(), env, ExecContext{})
	if err == nil {
		t.Fatal("Run() succeeded, want StepTimeoutError")
	}

	var timeoutErr *StepTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error is not a *StepTimeoutError: %v", err)
	}
	if !errors.Is(err, ErrStepTimeout) {
		t.Errorf("error does not wrap ErrStepTimeout: %v", err)
	}
	if timeoutErr.Index != 0 {
		t.Errorf("timed-out step index = %d, want 0", timeoutErr.Index)
	}

	if len(fake.executed) != 1 || len(outcomes) != 1 {
		t.Errorf("steps after a timeout must not run: executed=%v", fake.executed)
	}
}

func TestRunBlocksExternalTools(t *testing.T) {
	t.Parallel()

	fake := &fakeExecutor{}
	env := matrixfile.Environment{
		Name:  "strict",
		Steps: []matrixfile.CommandStep{{Program: "definitely-not-provisioned"}},
	}
	ectx := ExecContext{BinDir: t.TempDir()}

	_, err := New(fake).Run(context.Background(), env, ectx)
	if err == nil {
		t.Fatal("Run() succeeded, want external-tool error")
	}

	var toolErr *ExternalToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error cause is not a *ExternalToolError: %v", err)
	}
	if len(fake.executed) != 0 {
		t.Errorf("blocked step must not be spawned, executed=%v", fake.executed)
	}
}
