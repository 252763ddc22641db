// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/ggtools/gg/cmd/gg"

func main() {
	cmd.Execute()
}
