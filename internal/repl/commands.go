package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BTECHK/sql-coach/internal/coach"
	"github.com/BTECHK/sql-coach/internal/curriculum"
	"github.com/BTECHK/sql-coach/internal/engine"
	"github.com/BTECHK/sql-coach/internal/ui/components"
)

// dispatch handles one non-SQL command line. Returns true to exit.
func (r *REPL) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case "quit", "exit":
		fmt.Fprintln(r.out, "Progress saved. See you next time!")
		return true

	case "help":
		r.printHelp()

	case "hint":
		r.takeHint(ctx)

	case "next":
		r.advance(ctx)

	case "answer":
		if len(parts) > 1 && strings.ToLower(parts[1]) == "full" {
			r.fullAnswer(ctx)
		} else {
			r.revealStep(ctx)
		}

	case "explain":
		r.explain()

	case "tables":
		r.listTables(ctx)

	case "schema":
		if len(parts) > 1 {
			r.showSchema(ctx, parts[1])
		} else {
			r.showSchema(ctx, "")
		}

	case "lesson":
		if len(parts) < 2 {
			fmt.Fprintln(r.errOut, "Usage: lesson <phase.number>, e.g. lesson 2.1")
			return false
		}
		r.jump(ctx, parts[1])

	case "progress":
		r.printProgress()

	case "skip":
		r.skip(ctx)

	case "restart":
		r.sess.ResetHints(ctx)
		fmt.Fprintln(r.out, "Hints and solution steps for this lesson start over.")

	case "reset":
		r.reset(ctx, len(parts) > 1 && strings.ToLower(parts[1]) == "confirm")

	default:
		fmt.Fprintf(r.errOut, "Unknown command: %s (type help for commands)\n", command)
	}

	return false
}

func (r *REPL) runQuery(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		fmt.Fprintln(r.errOut, "Usage: run <sql>")
		return
	}

	sub, err := r.sess.Submit(ctx, query)
	if err != nil {
		var execErr *engine.ExecutionError
		if errors.As(err, &execErr) {
			fmt.Fprintf(r.errOut, "Error: %v\n", execErr.Err)
		} else {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
		}
		return
	}

	fmt.Fprint(r.out, components.ResultTable(sub.Result, 0))

	if sub.Comparison.Note != "" {
		fmt.Fprintf(r.out, "Note: %s\n", sub.Comparison.Note)
	}

	if sub.Comparison.Correct {
		fmt.Fprintln(r.out, "✔ Correct!")
		if sub.FollowUp != "" {
			fmt.Fprintf(r.out, "Follow-up to try: %s\n", sub.FollowUp)
		}
		fmt.Fprintln(r.out, "Type next to continue.")
		return
	}

	fmt.Fprintf(r.out, "✘ Not quite. %s\n", sub.Comparison.Reason)
	r.askCoach(ctx, query, sub.Comparison.Reason)
}

// askCoach prints an LLM review of the failed query when a provider is
// configured. Absence of a provider is silent.
func (r *REPL) askCoach(ctx context.Context, query, reason string) {
	if !r.coachSvc.Available() {
		return
	}

	cur := r.sess.Current()
	reviewCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	review, err := r.coachSvc.Review(reviewCtx, coach.ReviewInput{
		Lesson:    &cur,
		Query:     query,
		Reason:    reason,
		HintsUsed: r.sess.HintsUsed(),
	})
	if err != nil {
		// The coach is best-effort; the verdict above already stands.
		return
	}
	fmt.Fprintf(r.out, "Coach: %s\n       %s\n", review.Diagnosis, review.Nudge)
}

func (r *REPL) takeHint(ctx context.Context) {
	hint, err := r.sess.Hint(ctx)
	if err != nil {
		if errors.Is(err, engine.ErrNoMoreHints) {
			fmt.Fprintln(r.out, "No more hints for this lesson. Try answer for the solution, step by step.")
		} else {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
		}
		return
	}
	fmt.Fprintf(r.out, "Hint %d/%d (%s): %s\n",
		r.sess.HintsUsed(), r.sess.HintsUsed()+r.sess.HintsRemaining(), hint.Stage, hint.Text)
}

func (r *REPL) revealStep(ctx context.Context) {
	step, err := r.sess.RevealStep(ctx)
	if err != nil {
		if errors.Is(err, engine.ErrStepsExhausted) {
			fmt.Fprintln(r.out, "The solution is fully revealed. Type answer full to see it again.")
		} else {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
		}
		return
	}
	fmt.Fprintf(r.out, "Building the solution:\n  %s\n", step.SQL)
	if step.Note != "" {
		fmt.Fprintf(r.out, "  -- %s\n", step.Note)
	}
}

func (r *REPL) fullAnswer(ctx context.Context) {
	fmt.Fprintf(r.out, "Reference answer:\n  %s\n", r.sess.FullAnswer(ctx))
}

func (r *REPL) explain() {
	steps, usedReference := r.sess.ExplainLast()
	if len(steps) == 0 {
		fmt.Fprintln(r.out, "Nothing to explain yet. Run a query first.")
		return
	}
	if usedReference {
		fmt.Fprintln(r.out, "Execution order of the reference answer:")
	} else {
		fmt.Fprintln(r.out, "Execution order of your last query:")
	}
	for i, step := range steps {
		fmt.Fprintf(r.out, "  %d. %-9s %s\n", i+1, step.Clause, step.Rationale)
	}
}

func (r *REPL) advance(ctx context.Context) {
	if !r.sess.ReadyToAdvance() {
		fmt.Fprintln(r.out, "Solve the challenge first, or type skip to move on anyway.")
		return
	}
	if _, err := r.sess.Advance(ctx); err != nil {
		if errors.Is(err, engine.ErrEndOfCurriculum) {
			r.printCompletion()
			return
		}
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	r.printLesson()
}

func (r *REPL) skip(ctx context.Context) {
	if _, err := r.sess.Skip(ctx); err != nil {
		if errors.Is(err, engine.ErrEndOfCurriculum) {
			fmt.Fprintln(r.out, "This is the last lesson.")
			return
		}
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, "Skipped. It will stay marked incomplete.")
	r.printLesson()
}

func (r *REPL) jump(ctx context.Context, id string) {
	target, err := curriculum.ParseLessonID(id)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	if _, err := r.sess.Jump(ctx, target); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	r.printLesson()
}

func (r *REPL) reset(ctx context.Context, confirmed bool) {
	if !confirmed {
		fmt.Fprintln(r.out, "This wipes all progress. Type reset confirm if you mean it.")
		return
	}
	r.sess.ResetProgress(ctx)
	fmt.Fprintln(r.out, "Progress reset.")
	r.printLesson()
}
