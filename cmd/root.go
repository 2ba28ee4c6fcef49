package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BTECHK/sql-coach/internal/app"
	"github.com/BTECHK/sql-coach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sqlcoach",
	Short: "Interactive SQL tutor in your terminal",
	Long:  "sqlcoach — a hands-on SQL curriculum over a small advertising dataset, from SELECT basics to window functions and CTEs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer boot.Close()

		return app.Run(app.Deps{
			Session: boot.Session,
			Coach:   boot.Coach,
			Dataset: boot.Dataset,
			Warning: boot.Warning,
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the progress database (overrides SQLCOACH_DB)")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the progress database path using the --db flag
// (highest priority), then SQLCOACH_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
