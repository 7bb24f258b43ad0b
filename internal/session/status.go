// SPDX-License-Identifier: MPL-2.0

package session

// Status is the lifecycle state of one environment's execution.
type Status string

const (
	// StatusPending means the environment has not started yet.
	StatusPending Status = "pending"
	// StatusProvisioning means the dependency context is being established.
	StatusProvisioning Status = "provisioning"
	// StatusRunning means run steps are executing.
	StatusRunning Status = "running"
	// StatusPassed means every run step succeeded.
	StatusPassed Status = "passed"
	// StatusFailed means provisioning failed or a run step failed or timed out.
	StatusFailed Status = "failed"
	// StatusSkipped means the environment never started because an earlier
	// environment failed under fail-fast.
	StatusSkipped Status = "skipped"
)

// IsTerminal reports whether the status is final. A result in a terminal
// status is sealed and rejects further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusSkipped
}

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

// canTransition reports whether the status machine permits the given edge.
// Skipped is reachable from Pending only; an environment that has started is
// never retroactively skipped.
func canTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusProvisioning || to == StatusSkipped
	case StatusProvisioning:
		return to == StatusRunning || to == StatusFailed
	case StatusRunning:
		return to == StatusPassed || to == StatusFailed
	default:
		return false
	}
}
