// SPDX-License-Identifier: MPL-2.0

// Package pipeline executes an environment's ordered run steps against its
// provisioned execution context.
//
// Steps run strictly in declared order; the first non-success outcome stops
// the remaining steps (fail-fast within the environment). The actual
// process-spawning mechanism is behind the StepExecutor interface so it can
// be swapped (native child process, in-process shell interpreter) and faked
// in tests.
package pipeline
