// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"gauntlet-cli/pkg/matrixfile"
	"gauntlet-cli/pkg/types"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the expanded environment names",
	Long: `List every environment of the matrix after bracket expansion,
one name per line, in declared order.`,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	matrix, err := matrixfile.Parse(types.FilesystemPath(matrixFile))
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	for _, name := range matrix.Names() {
		fmt.Fprintln(os.Stdout, EnvStyle.Render(string(name)))
	}
	return nil
}
