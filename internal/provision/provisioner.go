// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gauntlet-cli/internal/pipeline"
	"gauntlet-cli/pkg/matrixfile"

	"github.com/charmbracelet/log"
)

type (
	// Provisioner prepares an environment's isolated execution context.
	// Implementations must not run any of the environment's run steps.
	Provisioner interface {
		// Provision establishes the context for one environment. A nil
		// error means every run step may now execute against the returned
		// context.
		Provision(ctx context.Context, env matrixfile.Environment) (*pipeline.ExecContext, error)
	}

	// HostProvisioner provisions environments on the host filesystem: a
	// per-environment work directory under WorkRoot and installer
	// invocations through the shared step executor.
	HostProvisioner struct {
		// ProjectRoot is the directory run steps default to.
		ProjectRoot string
		// WorkRoot is where per-environment directories are created.
		WorkRoot string
		// Installer is the external installer invocation, e.g. "pip" or
		// "uv pip". Provisioning mechanics beyond spawning it are opaque.
		Installer string
		// PassEnv lists host environment variables forwarded verbatim into
		// each context. PATH is always forwarded.
		PassEnv []string
		// Exec runs installer and provisioning steps. Provisioning applies
		// no timeout; install failures surface via exit code.
		Exec pipeline.StepExecutor
		// Environ supplies the host environment; defaults to os.Environ.
		// Injectable for tests.
		Environ func() []string
		// Logger receives provisioning diagnostics; nil disables them.
		Logger *log.Logger
	}
)

// NewHostProvisioner creates a HostProvisioner with the given executor.
func NewHostProvisioner(projectRoot, workRoot, installer string, passEnv []string, exec pipeline.StepExecutor) *HostProvisioner {
	return &HostProvisioner{
		ProjectRoot: projectRoot,
		WorkRoot:    workRoot,
		Installer:   installer,
		PassEnv:     passEnv,
		Exec:        exec,
		Environ:     os.Environ,
	}
}

// Provision creates the environment's work directory, composes its variable
// set, performs the mode's installation work, then runs the environment's
// declared provisioning steps in order.
func (p *HostProvisioner) Provision(ctx context.Context, env matrixfile.Environment) (*pipeline.ExecContext, error) {
	ectx, err := p.newContext(env)
	if err != nil {
		return nil, &ProvisionError{Env: env.Name, Err: err}
	}

	switch env.EffectiveMode() {
	case matrixfile.ProvisionSkip:
		// Context only; the environment invokes already-available tools.
	case matrixfile.ProvisionSource:
		if err := p.installSource(ctx, env, ectx); err != nil {
			return nil, err
		}
	case matrixfile.ProvisionArtifact:
		if err := p.installArtifact(ctx, env, ectx); err != nil {
			return nil, err
		}
	}

	for i, step := range env.Provision {
		if err := p.runInstallStep(ctx, env, ectx, step); err != nil {
			return nil, &ProvisionError{Env: env.Name, Err: fmt.Errorf("provision step %d: %w", i, err)}
		}
	}

	return ectx, nil
}

// newContext creates the per-environment directories and variable set.
func (p *HostProvisioner) newContext(env matrixfile.Environment) (*pipeline.ExecContext, error) {
	workDir := filepath.Join(p.WorkRoot, string(env.Name))
	binDir := filepath.Join(workDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create environment directory: %w", err)
	}

	return &pipeline.ExecContext{
		WorkDir: p.ProjectRoot,
		Env:     p.buildEnv(env, binDir),
		BinDir:  binDir,
	}, nil
}

// buildEnv composes the context's variable set: forwarded pass-through
// variables, the environment's own declarations, and the gauntlet metadata
// variable. Pass-through values are opaque; nothing inspects their semantics.
func (p *HostProvisioner) buildEnv(env matrixfile.Environment, binDir string) map[string]string {
	environ := os.Environ
	if p.Environ != nil {
		environ = p.Environ
	}

	host := make(map[string]string)
	for _, kv := range environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			host[k] = v
		}
	}

	vars := make(map[string]string)
	for _, name := range p.PassEnv {
		if v, ok := host[name]; ok {
			vars[name] = v
		}
	}

	// Provisioned executables win PATH lookups inside the context.
	path := host["PATH"]
	if path != "" {
		vars["PATH"] = binDir + string(os.PathListSeparator) + path
	} else {
		vars["PATH"] = binDir
	}

	for k, v := range env.Env {
		vars[k] = v
	}
	vars["GAUNTLET_ENV"] = string(env.Name)

	return vars
}

// installSource installs the project's own package in editable form, plus
// any declared dependency groups ("pip install -e .[test,docs]").
func (p *HostProvisioner) installSource(ctx context.Context, env matrixfile.Environment, ectx *pipeline.ExecContext) error {
	target := "."
	if len(env.Deps) > 0 {
		target = fmt.Sprintf(".[%s]", strings.Join(env.Deps, ","))
	}
	step := p.installerStep("-e", target)

	if err := p.runInstallStep(ctx, env, ectx, step); err != nil {
		return &ProvisionError{Env: env.Name, Err: err}
	}
	return nil
}

// installArtifact resolves the environment's artifact pattern to exactly one
// distributable and installs it.
func (p *HostProvisioner) installArtifact(ctx context.Context, env matrixfile.Environment, ectx *pipeline.ExecContext) error {
	artifact, err := ResolveArtifact(env.ArtifactPattern, p.ProjectRoot)
	if err != nil {
		return err
	}
	p.logf("resolved artifact", "env", env.Name, "artifact", artifact)

	step := p.installerStep(artifact)
	if err := p.runInstallStep(ctx, env, ectx, step); err != nil {
		return &ProvisionError{Env: env.Name, Err: err}
	}
	return nil
}

// installerStep builds the installer invocation for the given final
// arguments. Installer may carry leading arguments of its own ("uv pip").
func (p *HostProvisioner) installerStep(args ...string) matrixfile.CommandStep {
	fields := strings.Fields(p.Installer)
	program := fields[0]
	stepArgs := append(fields[1:], "install")
	stepArgs = append(stepArgs, args...)
	return matrixfile.CommandStep{Program: program, Args: stepArgs}
}

// runInstallStep executes one provisioning invocation with no timeout:
// install failures surface via process exit code, not time.
func (p *HostProvisioner) runInstallStep(ctx context.Context, env matrixfile.Environment, ectx *pipeline.ExecContext, step matrixfile.CommandStep) error {
	p.logf("provisioning", "env", env.Name, "step", step.String())

	result := p.Exec.Execute(ctx, step, *ectx)
	if result.Err != nil {
		return result.Err
	}
	if !result.ExitCode.IsSuccess() {
		return fmt.Errorf("%s: exit code %d: %s", step.String(), result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}

func (p *HostProvisioner) logf(msg string, kv ...any) {
	if p.Logger != nil {
		p.Logger.Debug(msg, kv...)
	}
}
