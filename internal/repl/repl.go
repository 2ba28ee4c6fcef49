package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/BTECHK/sql-coach/internal/coach"
	"github.com/BTECHK/sql-coach/internal/dataset"
	"github.com/BTECHK/sql-coach/internal/engine"
)

const prompt = "sqlcoach> "
const contPrompt = "     ...> "

// REPL is the line-oriented front-end: one command per line, SQL
// accumulated across lines until a semicolon.
type REPL struct {
	sess     *engine.Session
	coachSvc *coach.Service
	ds       *dataset.Dataset
	out      io.Writer
	errOut   io.Writer
}

// New creates a REPL over the given session. coachSvc may be nil.
func New(sess *engine.Session, coachSvc *coach.Service, ds *dataset.Dataset) *REPL {
	return &REPL{
		sess:     sess,
		coachSvc: coachSvc,
		ds:       ds,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
}

// Run starts the readline loop. historyFile may be empty to disable
// persistent history.
func (r *REPL) Run(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("initialize repl: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r.printWelcome()
	r.printLesson()

	var sqlBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sqlBuffer.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Mid-statement: keep accumulating SQL until a semicolon.
		if sqlBuffer.Len() > 0 {
			sqlBuffer.WriteString(" ")
			sqlBuffer.WriteString(line)
			if !strings.HasSuffix(line, ";") {
				continue
			}
			rl.SetPrompt(prompt)
			query := strings.TrimSuffix(sqlBuffer.String(), ";")
			sqlBuffer.Reset()
			r.runQuery(ctx, query)
			continue
		}

		if sql, open := startsStatement(line); open {
			sqlBuffer.WriteString(sql)
			rl.SetPrompt(contPrompt)
			continue
		} else if sql != "" {
			r.runQuery(ctx, strings.TrimSuffix(sql, ";"))
			continue
		}

		if quit := r.dispatch(ctx, line); quit {
			return nil
		}
	}
}

// startsStatement decides whether a line begins SQL rather than a
// command. It returns the SQL text and whether the statement is still
// open. "run <sql>" executes immediately; bare SELECT/WITH lines
// accumulate until a semicolon.
func startsStatement(line string) (string, bool) {
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "run ") {
		return strings.TrimSpace(line[4:]), false
	}
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return "", false
	}
	return line, !strings.HasSuffix(line, ";")
}

func newCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("run"),
		readline.PcItem("hint"),
		readline.PcItem("next"),
		readline.PcItem("answer", readline.PcItem("full")),
		readline.PcItem("explain"),
		readline.PcItem("schema"),
		readline.PcItem("tables"),
		readline.PcItem("lesson"),
		readline.PcItem("progress"),
		readline.PcItem("skip"),
		readline.PcItem("restart"),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	}
	for _, name := range dataset.TableNames {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}
