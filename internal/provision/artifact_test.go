// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveArtifactSingleMatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, "app-1.2.3.whl")

	got, err := ResolveArtifact("*.whl", root)
	if err != nil {
		t.Fatalf("ResolveArtifact() error = %v", err)
	}
	if want := filepath.Join(root, "app-1.2.3.whl"); got != want {
		t.Errorf("ResolveArtifact() = %q, want %q", got, want)
	}
}

func TestResolveArtifactNoMatch(t *testing.T) {
	t.Parallel()

	_, err := ResolveArtifact("*.whl", t.TempDir())
	if err == nil {
		t.Fatal("ResolveArtifact() should fail when nothing matches")
	}
	if !errors.Is(err, ErrArtifactResolution) {
		t.Errorf("error = %v, want ErrArtifactResolution", err)
	}
}

func TestResolveArtifactAmbiguous(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, "app-1.0.0.whl")
	touch(t, root, "app-2.0.0.whl")

	_, err := ResolveArtifact("*.whl", root)
	if err == nil {
		t.Fatal("ResolveArtifact() should fail when the pattern is ambiguous")
	}

	var resErr *ArtifactResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("error = %T, want *ArtifactResolutionError", err)
	}
	if len(resErr.Matches) != 2 {
		t.Errorf("Matches = %v, want both candidates listed", resErr.Matches)
	}
}

func TestResolveArtifactAbsolutePattern(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, "app-1.0.0.tar.gz")

	got, err := ResolveArtifact(filepath.Join(root, "*.tar.gz"), t.TempDir())
	if err != nil {
		t.Fatalf("ResolveArtifact() error = %v", err)
	}
	if want := filepath.Join(root, "app-1.0.0.tar.gz"); got != want {
		t.Errorf("ResolveArtifact() = %q, want %q", got, want)
	}
}
