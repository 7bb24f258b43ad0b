// SPDX-License-Identifier: MPL-2.0

package session

import (
	"fmt"
	"time"

	"gauntlet-cli/internal/pipeline"
	"gauntlet-cli/pkg/matrixfile"
)

// ExecutionResult is the aggregated outcome of one environment. The status
// is unexported so transitions go through the status machine; once a terminal
// status is reached the result is sealed and every further transition is an
// invariant violation.
type ExecutionResult struct {
	// Env is the environment this result belongs to.
	Env matrixfile.EnvName
	// Steps holds the outcome of every run step that was started, in order.
	Steps []pipeline.StepOutcome
	// Reason records why the environment failed. Nil unless Status is failed.
	Reason error
	// Duration is the wall-clock time from provisioning start to sealing.
	// Zero for skipped environments.
	Duration time.Duration

	status Status
}

// NewResult creates a pending result for the given environment.
func NewResult(env matrixfile.EnvName) *ExecutionResult {
	return &ExecutionResult{Env: env, status: StatusPending}
}

// Status returns the result's current lifecycle status.
func (r *ExecutionResult) Status() Status { return r.status }

// transition moves the result along one status machine edge. Sealed results
// and undefined edges return an error.
func (r *ExecutionResult) transition(to Status) error {
	if r.status.IsTerminal() {
		return fmt.Errorf("environment %q: result is sealed at %q", r.Env, r.status)
	}
	if !canTransition(r.status, to) {
		return fmt.Errorf("environment %q: invalid status transition %q -> %q", r.Env, r.status, to)
	}
	r.status = to
	return nil
}

// seal moves the result to a terminal status and records the failure reason.
func (r *ExecutionResult) seal(to Status, reason error) error {
	if err := r.transition(to); err != nil {
		return err
	}
	r.Reason = reason
	return nil
}

// FailedStep returns the outcome of the step that made the environment fail,
// or nil when the failure was not a step failure (provisioning, skip).
func (r *ExecutionResult) FailedStep() *pipeline.StepOutcome {
	if r.status != StatusFailed || len(r.Steps) == 0 {
		return nil
	}
	last := &r.Steps[len(r.Steps)-1]
	if last.Result.Success(last.Step.ExpectedExit) {
		return nil
	}
	return last
}
