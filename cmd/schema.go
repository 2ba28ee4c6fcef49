package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/BTECHK/sql-coach/internal/dataset"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [table]",
	Short: "Print the practice dataset schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.OpenEphemeral()
		if err != nil {
			return fmt.Errorf("open practice dataset: %w", err)
		}
		defer func() { _ = ds.Close() }()

		tables, err := ds.Tables(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if len(args) == 1 {
			for _, tbl := range tables {
				if tbl.Name == args[0] {
					fmt.Fprintf(out, "%s;\n", tbl.DDL)
					return nil
				}
			}
			return fmt.Errorf("unknown table %q", args[0])
		}

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"table", "rows"})
		for _, tbl := range tables {
			t.AppendRow(table.Row{tbl.Name, tbl.RowCount})
		}
		t.Render()
		fmt.Fprintln(out, "\nUse sqlcoach schema <table> for the full definition.")
		return nil
	},
}
