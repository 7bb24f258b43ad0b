// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.WorkRoot != ".gauntlet" {
		t.Errorf("WorkRoot = %q, want %q", cfg.WorkRoot, ".gauntlet")
	}
	if cfg.Installer != "pip" {
		t.Errorf("Installer = %q, want %q", cfg.Installer, "pip")
	}
	if cfg.Executor != ExecutorNative {
		t.Errorf("Executor = %q, want %q", cfg.Executor, ExecutorNative)
	}
	if d, err := cfg.StepTimeoutDuration(); err != nil || d != 0 {
		t.Errorf("StepTimeoutDuration() = %v, %v, want 0 and nil", d, err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	content := "workroot: /tmp/work\ninstaller: uv pip\nexecutor: virtual\nstep_timeout: 90s\npassenv:\n  - HOME\n  - CI\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.WorkRoot != "/tmp/work" {
		t.Errorf("WorkRoot = %q, want %q", cfg.WorkRoot, "/tmp/work")
	}
	if cfg.Installer != "uv pip" {
		t.Errorf("Installer = %q, want %q", cfg.Installer, "uv pip")
	}
	if cfg.Executor != ExecutorVirtual {
		t.Errorf("Executor = %q, want %q", cfg.Executor, ExecutorVirtual)
	}
	if d, err := cfg.StepTimeoutDuration(); err != nil || d != 90*time.Second {
		t.Errorf("StepTimeoutDuration() = %v, %v, want 90s and nil", d, err)
	}
	if len(cfg.PassEnv) != 2 || cfg.PassEnv[0] != "HOME" || cfg.PassEnv[1] != "CI" {
		t.Errorf("PassEnv = %v, want [HOME CI]", cfg.PassEnv)
	}
}

func TestLoadRejectsInvalidExecutor(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("executor: container\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %T, want *InvalidConfigError", err)
	}
	if len(cfgErr.FieldErrors) == 0 || !errors.Is(cfgErr.FieldErrors[0], ErrInvalidExecutorMode) {
		t.Errorf("FieldErrors = %v, want ErrInvalidExecutorMode", cfgErr.FieldErrors)
	}
}

func TestExecutorModeIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode  ExecutorMode
		valid bool
	}{
		{ExecutorNative, true},
		{ExecutorVirtual, true},
		{"container", false},
		{"", false},
	}
	for _, tt := range tests {
		if valid, _ := tt.mode.IsValid(); valid != tt.valid {
			t.Errorf("ExecutorMode(%q).IsValid() = %v, want %v", tt.mode, valid, tt.valid)
		}
	}
}

func TestStepTimeoutDurationRejectsNegative(t *testing.T) {
	t.Parallel()

	cfg := Config{StepTimeout: "-5s"}
	if _, err := cfg.StepTimeoutDuration(); err == nil {
		t.Error("StepTimeoutDuration() should reject negative durations")
	}
}
