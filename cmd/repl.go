package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BTECHK/sql-coach/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the line-oriented tutor instead of the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer boot.Close()

		historyFile := ""
		if dbPath, err := resolveDBPath(cmd); err == nil {
			historyFile = filepath.Join(filepath.Dir(dbPath), "repl_history")
		}

		r := repl.New(boot.Session, boot.Coach, boot.Dataset)
		return r.Run(cmd.Context(), historyFile)
	},
}
