// SPDX-License-Identifier: MPL-2.0

// Package session drives one orchestrator invocation end to end: it resolves
// the requested environment subset, provisions and runs each environment in
// declared order, aggregates per-environment results into a single exit code,
// and renders the run report.
//
// A Session holds all mutable state for the invocation; nothing here is
// global. Environment results move through a small status machine and are
// sealed once they reach a terminal status.
package session
