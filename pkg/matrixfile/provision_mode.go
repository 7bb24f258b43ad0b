// SPDX-License-Identifier: MPL-2.0

package matrixfile

import (
	"errors"
	"fmt"
)

// ErrInvalidProvisionMode is the sentinel error wrapped by InvalidProvisionModeError.
var ErrInvalidProvisionMode = errors.New("invalid provision mode")

// Provision mode constants.
const (
	// ProvisionSkip creates the execution context without installing
	// anything; the environment only invokes already-available tools.
	ProvisionSkip ProvisionMode = "skip"
	// ProvisionSource installs the project's own package into the context in
	// editable form, plus any declared dependency groups.
	ProvisionSource ProvisionMode = "source"
	// ProvisionArtifact resolves exactly one prebuilt distributable matching
	// the environment's artifact pattern and installs it into the context.
	ProvisionArtifact ProvisionMode = "artifact"
)

type (
	// ProvisionMode defines how an environment's dependency context is
	// populated before any run step executes.
	ProvisionMode string

	// InvalidProvisionModeError is returned when a ProvisionMode is not one
	// of the recognized modes.
	InvalidProvisionModeError struct {
		Value ProvisionMode
	}
)

// String returns the string representation of the ProvisionMode.
func (m ProvisionMode) String() string { return string(m) }

// IsValid returns whether the ProvisionMode is one of the recognized modes.
func (m ProvisionMode) IsValid() (bool, []error) {
	switch m {
	case ProvisionSkip, ProvisionSource, ProvisionArtifact:
		return true, nil
	}
	return false, []error{&InvalidProvisionModeError{Value: m}}
}

// Error implements the error interface for InvalidProvisionModeError.
func (e *InvalidProvisionModeError) Error() string {
	return fmt.Sprintf("invalid provision mode %q (must be %q, %q or %q)",
		e.Value, ProvisionSkip, ProvisionSource, ProvisionArtifact)
}

// Unwrap returns ErrInvalidProvisionMode for errors.Is() compatibility.
func (e *InvalidProvisionModeError) Unwrap() error { return ErrInvalidProvisionMode }
