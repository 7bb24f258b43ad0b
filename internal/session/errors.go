// SPDX-License-Identifier: MPL-2.0

package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEnvironment is the sentinel error wrapped by
// UnknownEnvironmentError.
var ErrUnknownEnvironment = errors.New("unknown environment")

// UnknownEnvironmentError is returned when a requested environment name does
// not exist in the expanded matrix. It is fatal before anything runs, which
// distinguishes it from a skipped environment.
type UnknownEnvironmentError struct {
	// Name is the selector that matched nothing.
	Name string
	// Known lists the expanded environment names, in declared order.
	Known []string
}

// Error implements the error interface.
func (e *UnknownEnvironmentError) Error() string {
	return fmt.Sprintf("unknown environment %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Unwrap returns ErrUnknownEnvironment for errors.Is() compatibility.
func (e *UnknownEnvironmentError) Unwrap() error { return ErrUnknownEnvironment }
