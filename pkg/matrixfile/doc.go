// SPDX-License-Identifier: MPL-2.0

// Package matrixfile defines the schema and parsing for matrix CUE files.
//
// A matrix file declares an ordered list of environments. Each environment
// names a provisioning mode, an ordered list of provisioning steps, and an
// ordered list of run steps. Environment names may carry bracketed
// alternative sets ("unit-py3{9,10,11}") which Parse expands into one
// concrete environment per combination, in declared order, at the original
// entry's position.
//
// The Matrix value returned by Parse is fully expanded and immutable by
// convention: nothing in this module mutates it after parsing.
package matrixfile
