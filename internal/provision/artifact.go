// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"path/filepath"
	"sort"
)

// ResolveArtifact resolves a glob pattern to exactly one prebuilt
// distributable. Relative patterns are resolved against root.
//
// Zero matches and multiple matches both return an
// *ArtifactResolutionError; the most-recently-modified artifact is
// deliberately NOT picked on ambiguity, so CI behavior stays deterministic.
func ResolveArtifact(pattern, root string) (string, error) {
	globPattern := pattern
	if !filepath.IsAbs(globPattern) {
		globPattern = filepath.Join(root, pattern)
	}

	matches, err := filepath.Glob(globPattern)
	if err != nil {
		return "", &ArtifactResolutionError{Pattern: pattern}
	}
	sort.Strings(matches)

	if len(matches) != 1 {
		return "", &ArtifactResolutionError{Pattern: pattern, Matches: matches}
	}
	return matches[0], nil
}
