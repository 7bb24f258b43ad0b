// SPDX-License-Identifier: MPL-2.0

// Package provision establishes an isolated, populated execution context for
// one environment before any of its run steps execute.
//
// The provisioning contract only is modeled here: actual dependency
// installation (wheel building, version resolution) is delegated to an
// external installer command invoked as a black-box process. Provisioning
// failures are local to one environment; they never abort siblings.
package provision
