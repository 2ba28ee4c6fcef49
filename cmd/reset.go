package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe saved progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			fmt.Fprintln(cmd.OutOrStdout(), "This wipes all saved progress. Re-run with --force if you mean it.")
			return nil
		}

		boot, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer boot.Close()

		boot.Session.ResetProgress(cmd.Context())
		if err := boot.Session.SaveError(); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip the confirmation")
}
