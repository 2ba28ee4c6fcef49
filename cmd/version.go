package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at release time with -ldflags "-X ...cmd.version=".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sqlcoach version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "sqlcoach", version)
	},
}
