// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gauntlet-cli/internal/config"
	"gauntlet-cli/internal/pipeline"
	"gauntlet-cli/internal/provision"
	"gauntlet-cli/internal/session"
	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"

	"github.com/spf13/cobra"
)

var (
	// envSelectors holds the -e/--env selections (repeatable, comma-separated).
	envSelectors []string
	// failFast stops scheduling after the first failed environment.
	failFast bool

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Provision and run matrix environments",
		Long: `Run the selected environments of the matrix in declared order.

Each environment is provisioned in isolation, its steps run in order
stopping at the first failure, and every attempted environment is
reported with its status. The process exits non-zero if any selected
environment failed.`,
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringSliceVarP(&envSelectors, "env", "e", nil, "environments to run (repeatable, comma-separated; default all)")
	runCmd.Flags().BoolVar(&failFast, "fail-fast", false, "skip remaining environments after the first failure")
}

func runRun(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	matrix, err := matrixfile.Parse(types.FilesystemPath(matrixFile))
	if err != nil {
		// Definition problems exit 2: nothing was provisioned or run.
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	s, err := newSession(cfg, matrix)
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}
	s.FailFast = failFast

	results, code, err := s.Run(cobraCmd.Context(), envSelectors)
	if err != nil {
		return &ExitError{Code: code, Err: err}
	}

	reporter := &session.Reporter{Out: os.Stdout, Verbose: verbose}
	reporter.Render(results)

	if code != types.ExitOK {
		// The report already explains the failures.
		return &ExitError{Code: code}
	}
	return nil
}

// newSession wires the session from the loaded config: executor selection,
// provisioner rooted next to the matrix file, and the step pipeline.
func newSession(cfg *config.Config, matrix *matrixfile.Matrix) (*session.Session, error) {
	exec, err := newExecutor(cfg.Executor)
	if err != nil {
		return nil, err
	}

	projectRoot, err := filepath.Abs(filepath.Dir(string(matrix.FilePath)))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	workRoot := cfg.WorkRoot
	if !filepath.IsAbs(workRoot) {
		workRoot = filepath.Join(projectRoot, workRoot)
	}

	logger := newLogger()
	prov := provision.NewHostProvisioner(projectRoot, workRoot, cfg.Installer, cfg.PassEnv, exec)
	prov.Logger = logger

	pipe := pipeline.New(exec)
	if timeout, err := cfg.StepTimeoutDuration(); err == nil {
		pipe.DefaultTimeout = timeout
	}

	s := session.New(matrix, prov, pipe)
	s.Logger = logger
	return s, nil
}

func newExecutor(mode config.ExecutorMode) (pipeline.StepExecutor, error) {
	switch mode {
	case config.ExecutorVirtual:
		return pipeline.NewVirtualExecutor(), nil
	case config.ExecutorNative:
		return pipeline.NewNativeExecutor(), nil
	default:
		return nil, errors.Join(config.ErrInvalidExecutorMode, fmt.Errorf("executor mode %q", mode))
	}
}
