// SPDX-License-Identifier: MPL-2.0

package matrixfile

import (
	"errors"
	"fmt"
)

// ErrInvalidEnvName is the sentinel error wrapped by InvalidEnvNameError.
var ErrInvalidEnvName = errors.New("invalid environment name")

type (
	// EnvName is the resolved (post-expansion) identifier of one environment.
	// Valid names are non-empty and contain only letters, digits, '.', '_'
	// and '-'. Bracket characters are only legal in the raw, pre-expansion
	// form handled by ExpandName.
	EnvName string

	// InvalidEnvNameError is returned when an EnvName is empty or contains
	// characters outside the allowed set.
	InvalidEnvNameError struct {
		Value EnvName
	}
)

// String returns the string representation of the EnvName.
func (n EnvName) String() string { return string(n) }

// IsValid returns whether the EnvName is valid.
func (n EnvName) IsValid() (bool, []error) {
	if n == "" {
		return false, []error{&InvalidEnvNameError{Value: n}}
	}
	for _, c := range string(n) {
		if !isEnvNameChar(c) {
			return false, []error{&InvalidEnvNameError{Value: n}}
		}
	}
	return true, nil
}

func isEnvNameChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '-':
		return true
	}
	return false
}

// Error implements the error interface for InvalidEnvNameError.
func (e *InvalidEnvNameError) Error() string {
	return fmt.Sprintf("invalid environment name %q: must be non-empty and contain only letters, digits, '.', '_' or '-'", e.Value)
}

// Unwrap returns ErrInvalidEnvName for errors.Is() compatibility.
func (e *InvalidEnvNameError) Unwrap() error { return ErrInvalidEnvName }
