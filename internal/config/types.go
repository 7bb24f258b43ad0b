// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	// ExecutorNative runs steps as host child processes via os/exec.
	ExecutorNative ExecutorMode = "native"
	// ExecutorVirtual runs steps in the embedded mvdan/sh interpreter.
	ExecutorVirtual ExecutorMode = "virtual"
)

var (
	// ErrInvalidExecutorMode is returned when an ExecutorMode value is not recognized.
	ErrInvalidExecutorMode = errors.New("invalid executor mode")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ExecutorMode selects how run steps are executed.
	ExecutorMode string

	// InvalidExecutorModeError is returned when an ExecutorMode value is not
	// recognized. It wraps ErrInvalidExecutorMode for errors.Is() compatibility.
	InvalidExecutorModeError struct {
		Value ExecutorMode
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the global orchestrator configuration.
	Config struct {
		// WorkRoot is the directory per-environment contexts are created under.
		WorkRoot string `json:"workroot" mapstructure:"workroot"`
		// Installer is the external installer invocation, e.g. "pip" or "uv pip".
		Installer string `json:"installer" mapstructure:"installer"`
		// Executor selects the step executor implementation.
		Executor ExecutorMode `json:"executor" mapstructure:"executor"`
		// StepTimeout is the default per-step timeout as a Go duration string.
		// Empty means no default bound.
		StepTimeout string `json:"step_timeout" mapstructure:"step_timeout"`
		// PassEnv lists host environment variables forwarded verbatim into
		// every execution context.
		PassEnv []string `json:"passenv" mapstructure:"passenv"`
	}
)

// String returns the string representation of the ExecutorMode.
func (m ExecutorMode) String() string { return string(m) }

// IsValid returns whether the ExecutorMode is one of the defined modes,
// and a list of validation errors if it is not.
func (m ExecutorMode) IsValid() (bool, []error) {
	switch m {
	case ExecutorNative, ExecutorVirtual:
		return true, nil
	default:
		return false, []error{&InvalidExecutorModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidExecutorModeError.
func (e *InvalidExecutorModeError) Error() string {
	return fmt.Sprintf("invalid executor mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidExecutorModeError) Unwrap() error { return ErrInvalidExecutorMode }

// IsValid returns whether the Config has valid fields. It delegates to
// Executor.IsValid() and parses StepTimeout; string fields with defaults
// need no further validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Executor.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.WorkRoot == "" {
		errs = append(errs, fmt.Errorf("workroot must not be empty"))
	}
	if c.Installer == "" {
		errs = append(errs, fmt.Errorf("installer must not be empty"))
	}
	if _, err := c.StepTimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// StepTimeoutDuration returns the parsed default step timeout, or 0 when no
// default is configured.
func (c Config) StepTimeoutDuration() (time.Duration, error) {
	if c.StepTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.StepTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid step_timeout %q: %w", c.StepTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid step_timeout %q: must not be negative", c.StepTimeout)
	}
	return d, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WorkRoot:  ".gauntlet",
		Installer: "pip",
		Executor:  ExecutorNative,
		PassEnv:   []string{},
	}
}
