package repl

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

func (r *REPL) printWelcome() {
	fmt.Fprintln(r.out, "Welcome to sqlcoach — learn SQL hands-on against a small advertising dataset.")
	fmt.Fprintln(r.out, "Type help for commands. SQL statements end with a semicolon (;).")
	fmt.Fprintln(r.out)
}

func (r *REPL) printLesson() {
	cur := r.sess.Current()
	fmt.Fprintf(r.out, "── Lesson %s: %s ──\n", cur.ID, cur.Title)
	fmt.Fprintf(r.out, "Concept: %s\n", cur.Concept)
	fmt.Fprintf(r.out, "\n%s\n", cur.Challenge)
	if r.sess.Completed(cur.ID) {
		fmt.Fprintln(r.out, "\n(You have solved this one before.)")
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printHelp() {
	help := `
Commands:
  run <sql>        Run a query against the current challenge
  <sql>;           Bare SELECT/WITH works too, across multiple lines
  hint             Take the next hint for this lesson
  answer           Reveal the solution one step at a time
  answer full      Show the complete reference answer
  explain          Logical execution order of your last query
  next             Move on after solving the challenge
  skip             Move on without solving (stays incomplete)
  restart          Start this lesson's hints and steps over
  lesson <id>      Jump to a lesson, e.g. lesson 2.1
  progress         Show curriculum progress
  tables           List dataset tables
  schema [table]   Show table definitions
  reset confirm    Wipe all progress
  help             This message
  quit             Save and exit
`
	fmt.Fprintln(r.out, help)
}

func (r *REPL) printProgress() {
	sum := r.sess.Summarize()
	fmt.Fprintf(r.out, "Progress: %d/%d lessons\n", sum.Done, sum.Total)
	for _, ph := range sum.Phases {
		fmt.Fprintf(r.out, "\nPhase %d: %s (%d/%d)\n", ph.Number, ph.Title, ph.Done, ph.Total)
		for _, ls := range ph.Lessons {
			mark := " "
			if ls.Completed {
				mark = "✔"
			}
			cursor := ""
			if ls.Current {
				cursor = "  ← current"
			}
			fmt.Fprintf(r.out, "  %s %s  %s%s\n", mark, ls.ID, ls.Title, cursor)
		}
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printCompletion() {
	fmt.Fprintln(r.out, "🎉 That was the last lesson — the whole curriculum is done!")
	fmt.Fprintln(r.out, "The dataset stays open: keep querying, or revisit any lesson with lesson <id>.")
}

func (r *REPL) listTables(ctx context.Context) {
	tables, err := r.ds.Tables(ctx)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"table", "rows"})
	for _, tbl := range tables {
		t.AppendRow(table.Row{tbl.Name, tbl.RowCount})
	}
	t.Render()
}

// showSchema prints one table's DDL, or every table's when name is
// empty.
func (r *REPL) showSchema(ctx context.Context, name string) {
	tables, err := r.ds.Tables(ctx)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}

	found := false
	for _, tbl := range tables {
		if name != "" && tbl.Name != name {
			continue
		}
		found = true
		fmt.Fprintf(r.out, "%s;\n\n", tbl.DDL)
	}
	if !found {
		fmt.Fprintf(r.errOut, "Unknown table: %s\n", name)
	}
}
