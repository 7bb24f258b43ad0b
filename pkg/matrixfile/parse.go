// SPDX-License-Identifier: MPL-2.0

package matrixfile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gauntlet-cli/pkg/cueutil"
	"gauntlet-cli/pkg/types"
)

//go:embed matrixfile_schema.cue
var matrixSchema string

// Parse reads, validates and expands a matrix file from the given path.
func Parse(path types.FilesystemPath) (*Matrix, error) {
	pathStr := string(path)
	data, err := os.ReadFile(pathStr)
	if err != nil {
		return nil, &ParseError{File: pathStr, Err: fmt.Errorf("failed to read matrix file: %w", err)}
	}
	return ParseBytes(data, pathStr)
}

// ParseBytes parses matrix content from bytes.
// Uses cueutil.Decode for the 3-step CUE parsing flow (compile schema →
// compile user data → validate and decode), then expands bracketed names and
// runs the Go-level validation the schema cannot express.
func ParseBytes(data []byte, path string) (*Matrix, error) {
	result, err := cueutil.Decode[Matrix](matrixSchema, data, "#Matrix", cueutil.WithFilename(path))
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	matrix, err := expandMatrix(result.Value)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	matrix.FilePath = types.FilesystemPath(path)

	if errs := validateMatrix(matrix); len(errs) > 0 {
		return nil, &ParseError{File: path, Err: errors.Join(errs...)}
	}

	return matrix, nil
}

// expandMatrix resolves every bracketed name into concrete environments,
// inserting the expanded entries at the original entry's position and
// rejecting duplicate resolved names.
func expandMatrix(decoded *Matrix) (*Matrix, error) {
	expanded := &Matrix{Environments: make([]Environment, 0, len(decoded.Environments))}
	seen := make(map[EnvName]struct{}, len(decoded.Environments))

	for _, env := range decoded.Environments {
		names, err := ExpandName(string(env.Name))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			resolved := env
			resolved.Name = EnvName(name)
			if _, dup := seen[resolved.Name]; dup {
				return nil, &DuplicateEnvironmentError{Name: resolved.Name}
			}
			seen[resolved.Name] = struct{}{}
			expanded.Environments = append(expanded.Environments, resolved)
		}
	}

	return expanded, nil
}

func validateMatrix(m *Matrix) []error {
	var errs []error
	for _, env := range m.Environments {
		if isValid, nameErrs := env.Name.IsValid(); !isValid {
			errs = append(errs, nameErrs...)
		}
		errs = append(errs, env.Validate()...)
	}
	return errs
}
