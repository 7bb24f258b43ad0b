// SPDX-License-Identifier: MPL-2.0

// Package config loads the global orchestrator configuration: work root,
// installer command, executor selection, default step timeout, and the
// pass-through environment variable list. Values come from a config file in
// the platform config directory (or the current directory), overridable via
// GAUNTLET_* environment variables.
package config
