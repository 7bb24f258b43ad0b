// SPDX-License-Identifier: MPL-2.0

package session

import (
	"context"
	"time"

	"gauntlet-cli/internal/pipeline"
	"gauntlet-cli/internal/provision"
	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"

	"github.com/charmbracelet/log"
)

// Session orchestrates one run: selection, provisioning, pipelines, and
// result aggregation. A Session is created per invocation and never reused.
type Session struct {
	// Matrix is the parsed, expanded environment matrix.
	Matrix *matrixfile.Matrix
	// Provisioner establishes each environment's execution context.
	Provisioner provision.Provisioner
	// Pipeline runs each environment's step sequence.
	Pipeline *pipeline.Pipeline
	// FailFast skips every not-yet-started environment after the first
	// failure.
	FailFast bool
	// Logger receives progress diagnostics; nil disables them.
	Logger *log.Logger

	results []*ExecutionResult
}

// New creates a Session over the given matrix and collaborators.
func New(matrix *matrixfile.Matrix, prov provision.Provisioner, pipe *pipeline.Pipeline) *Session {
	return &Session{Matrix: matrix, Provisioner: prov, Pipeline: pipe}
}

// Run executes the selected environments in declared order and returns the
// sealed results with the overall exit code. An empty selection means every
// environment. Unknown selector names fail before anything is provisioned.
// Cancellation is honored at environment boundaries only; a step already in
// flight is bounded by its own timeout, not by ctx.
func (s *Session) Run(ctx context.Context, selected []string) ([]*ExecutionResult, types.ExitCode, error) {
	envs, err := s.resolveSelection(selected)
	if err != nil {
		return nil, types.ExitUsage, err
	}

	s.results = make([]*ExecutionResult, 0, len(envs))
	for _, env := range envs {
		s.results = append(s.results, NewResult(env.Name))
	}

	failed := false
	for i, env := range envs {
		result := s.results[i]

		if failed && s.FailFast {
			_ = result.seal(StatusSkipped, nil)
			continue
		}
		if err := ctx.Err(); err != nil {
			return s.results, types.ExitFailure, err
		}

		s.runEnvironment(ctx, env, result)
		if result.Status() == StatusFailed {
			failed = true
		}
	}

	if failed {
		return s.results, types.ExitFailure, nil
	}
	return s.results, types.ExitOK, nil
}

// Results returns the results collected so far, in declared order.
func (s *Session) Results() []*ExecutionResult { return s.results }

// runEnvironment drives one environment from pending to a terminal status.
// Failures are local: they seal this result and never propagate.
func (s *Session) runEnvironment(ctx context.Context, env matrixfile.Environment, result *ExecutionResult) {
	start := time.Now()
	defer func() {
		if result.Status() != StatusSkipped {
			result.Duration = time.Since(start)
		}
	}()

	s.logf("provisioning environment", "env", env.Name, "mode", env.EffectiveMode())
	_ = result.transition(StatusProvisioning)

	ectx, err := s.Provisioner.Provision(ctx, env)
	if err != nil {
		s.logf("provisioning failed", "env", env.Name, "err", err)
		_ = result.seal(StatusFailed, err)
		return
	}

	s.logf("running environment", "env", env.Name, "steps", len(env.Steps))
	_ = result.transition(StatusRunning)

	outcomes, err := s.Pipeline.Run(ctx, env, *ectx)
	result.Steps = outcomes
	if err != nil {
		s.logf("environment failed", "env", env.Name, "err", err)
		_ = result.seal(StatusFailed, err)
		return
	}

	s.logf("environment passed", "env", env.Name)
	_ = result.seal(StatusPassed, nil)
}

// resolveSelection maps requested names onto matrix environments. Every name
// must exist; order follows the request, or the matrix when nothing was
// requested.
func (s *Session) resolveSelection(selected []string) ([]matrixfile.Environment, error) {
	if len(selected) == 0 {
		return s.Matrix.Environments, nil
	}

	envs := make([]matrixfile.Environment, 0, len(selected))
	for _, name := range selected {
		env, ok := s.Matrix.Lookup(matrixfile.EnvName(name))
		if !ok {
			known := make([]string, 0, len(s.Matrix.Environments))
			for _, n := range s.Matrix.Names() {
				known = append(known, string(n))
			}
			return nil, &UnknownEnvironmentError{Name: name, Known: known}
		}
		envs = append(envs, env)
	}
	return envs, nil
}

func (s *Session) logf(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Debug(msg, kv...)
	}
}
