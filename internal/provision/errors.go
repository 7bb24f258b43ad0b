// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
	"strings"

	"gauntlet-cli/pkg/matrixfile"
)

// Sentinel errors for the provisioning failure taxonomy.
var (
	// ErrProvision is the sentinel error wrapped by ProvisionError.
	ErrProvision = errors.New("provisioning failed")
	// ErrArtifactResolution is the sentinel error wrapped by ArtifactResolutionError.
	ErrArtifactResolution = errors.New("artifact resolution failed")
)

type (
	// ProvisionError is returned when an environment's dependency context
	// cannot be established (directory creation, installer failure).
	ProvisionError struct {
		// Env is the environment whose provisioning failed.
		Env matrixfile.EnvName
		// Err is the underlying cause.
		Err error
	}

	// ArtifactResolutionError is returned when an artifact glob matches no
	// file or more than one file. Ambiguity is never resolved implicitly:
	// a pattern matching several artifacts is an error, not a pick.
	ArtifactResolutionError struct {
		// Pattern is the glob that failed to resolve.
		Pattern string
		// Matches lists every matching path (empty for zero matches).
		Matches []string
	}
)

// Error implements the error interface.
func (e *ProvisionError) Error() string {
	return fmt.Sprintf("environment %q: %v", e.Env, e.Err)
}

// Unwrap exposes ErrProvision and the underlying cause to errors.Is/As.
func (e *ProvisionError) Unwrap() []error { return []error{ErrProvision, e.Err} }

// Error implements the error interface.
func (e *ArtifactResolutionError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no artifact matches pattern %q", e.Pattern)
	}
	return fmt.Sprintf("pattern %q is ambiguous, %d artifacts match: %s",
		e.Pattern, len(e.Matches), strings.Join(e.Matches, ", "))
}

// Unwrap returns ErrArtifactResolution for errors.Is() compatibility.
func (e *ArtifactResolutionError) Unwrap() error { return ErrArtifactResolution }
