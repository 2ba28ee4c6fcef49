package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print curriculum progress and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer boot.Close()

		out := cmd.OutOrStdout()
		sum := boot.Session.Summarize()
		fmt.Fprintf(out, "Progress: %d/%d lessons (current: %s)\n", sum.Done, sum.Total, sum.Current)
		for _, ph := range sum.Phases {
			fmt.Fprintf(out, "\nPhase %d: %s (%d/%d)\n", ph.Number, ph.Title, ph.Done, ph.Total)
			for _, ls := range ph.Lessons {
				mark := " "
				if ls.Completed {
					mark = "✔"
				}
				fmt.Fprintf(out, "  %s %s  %s\n", mark, ls.ID, ls.Title)
			}
		}
		return nil
	},
}
