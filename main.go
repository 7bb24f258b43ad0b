// SPDX-License-Identifier: MPL-2.0

package main

import cmd "gauntlet-cli/cmd/gauntlet"

func main() {
	cmd.Execute()
}
