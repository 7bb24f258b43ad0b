// SPDX-License-Identifier: MPL-2.0

package matrixfile

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel error wrapped by every matrix-definition error.
// A matrix that fails to parse aborts the run before any environment is
// provisioned; nothing executes and nothing is skipped.
var ErrParse = errors.New("invalid matrix definition")

type (
	// ParseError wraps any failure while reading, validating or expanding a
	// matrix file, carrying the file path for context.
	ParseError struct {
		File string
		Err  error
	}

	// BracketError is returned for malformed bracket syntax in a raw
	// environment name.
	BracketError struct {
		Name   string
		Reason string
	}

	// DuplicateEnvironmentError is returned when expansion produces two
	// environments with the same resolved name.
	DuplicateEnvironmentError struct {
		Name EnvName
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap exposes both ErrParse and the underlying cause to errors.Is/As.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// Error implements the error interface.
func (e *BracketError) Error() string {
	return fmt.Sprintf("environment name %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrParse for errors.Is() compatibility.
func (e *BracketError) Unwrap() error { return ErrParse }

// Error implements the error interface.
func (e *DuplicateEnvironmentError) Error() string {
	return fmt.Sprintf("duplicate environment name %q after expansion", e.Name)
}

// Unwrap returns ErrParse for errors.Is() compatibility.
func (e *DuplicateEnvironmentError) Unwrap() error { return ErrParse }
