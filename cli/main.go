// ABOUTME: Entry point for avatar-budget CLI
// ABOUTME: Command-line tool for budget planning and CI/CD integration

package main

import (
	"fmt"
	"os"

	"github.com/markalston/avatar-budget-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
