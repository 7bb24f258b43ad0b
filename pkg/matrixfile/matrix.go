// SPDX-License-Identifier: MPL-2.0

package matrixfile

import "gauntlet-cli/pkg/types"

// Matrix is the full ordered, expanded set of environments for one
// invocation. The declared order is the run order absent explicit selection.
type Matrix struct {
	// Environments is the expanded, ordered environment list.
	Environments []Environment `json:"environments"`

	// FilePath is the path the matrix was parsed from. Not part of the
	// declarative schema; set by Parse.
	FilePath types.FilesystemPath `json:"-"`
}

// Names returns the environment names in declared order.
func (m *Matrix) Names() []EnvName {
	names := make([]EnvName, len(m.Environments))
	for i, env := range m.Environments {
		names[i] = env.Name
	}
	return names
}

// Lookup returns the environment with the given name, or false when the
// matrix has no such environment.
func (m *Matrix) Lookup(name EnvName) (Environment, bool) {
	for _, env := range m.Environments {
		if env.Name == name {
			return env, true
		}
	}
	return Environment{}, false
}
