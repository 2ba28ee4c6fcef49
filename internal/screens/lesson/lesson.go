package lesson

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/BTECHK/sql-coach/internal/coach"
	"github.com/BTECHK/sql-coach/internal/curriculum"
	"github.com/BTECHK/sql-coach/internal/engine"
	"github.com/BTECHK/sql-coach/internal/screen"
	"github.com/BTECHK/sql-coach/internal/ui/components"
	"github.com/BTECHK/sql-coach/internal/ui/layout"
)

// reviewPollLimit caps coach review polling at roughly 10 seconds.
const reviewPollLimit = 40

// verdict is the outcome of the most recent submission.
type verdict int

const (
	verdictNone verdict = iota
	verdictCorrect
	verdictIncorrect
	verdictError
)

// LessonScreen is the main tutoring screen: challenge, SQL editor,
// query output, hints, and the staged solution.
type LessonScreen struct {
	sess     *engine.Session
	coachSvc *coach.Service

	input components.SQLInput

	verdict  verdict
	output   string // rendered result table or error text
	reason   string
	note     string
	followUp string
	status   string // transient one-line notice

	hints      []curriculum.Hint
	steps      []curriculum.Step
	fullAnswer string

	explain    []engine.ExecutionStep
	explainRef bool

	review      *coach.Review
	reviewPolls int

	congrats bool
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates the lesson screen for the session's current lesson.
func New(sess *engine.Session, coachSvc *coach.Service) *LessonScreen {
	return &LessonScreen{
		sess:     sess,
		coachSvc: coachSvc,
		input:    components.NewSQLInput(70, 5),
	}
}

func (l *LessonScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LessonScreen) Title() string {
	cur := l.sess.Current()
	return "Lesson " + cur.ID.String()
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	if l.congrats {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Home"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Ctrl+R", Description: "Run"},
		{Key: "Ctrl+H", Description: "Hint"},
		{Key: "Ctrl+S", Description: "Step"},
		{Key: "Ctrl+A", Description: "Answer"},
		{Key: "Ctrl+E", Description: "Explain"},
	}
	if l.sess.ReadyToAdvance() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+N", Description: "Next"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+K", Description: "Skip"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	return hints
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submissionMsg:
		return l.handleSubmission(msg)

	case reviewPollMsg:
		return l.handleReviewPoll()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+r":
			return l.submit()
		case "ctrl+h":
			l.takeHint()
			return l, nil
		case "ctrl+s":
			l.revealStep()
			return l, nil
		case "ctrl+a":
			l.revealAnswer()
			return l, nil
		case "ctrl+e":
			l.explainQuery()
			return l, nil
		case "ctrl+n":
			return l.advance()
		case "ctrl+k":
			return l.skip()
		}
	}

	if l.congrats {
		return l, nil
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LessonScreen) submit() (screen.Screen, tea.Cmd) {
	if l.input.Empty() {
		l.status = "Nothing to run."
		return l, nil
	}
	query := l.input.Value()
	return l, func() tea.Msg {
		sub, err := l.sess.Submit(context.Background(), query)
		return submissionMsg{Query: query, Sub: sub, Err: err}
	}
}

func (l *LessonScreen) handleSubmission(msg submissionMsg) (screen.Screen, tea.Cmd) {
	l.status = ""
	l.explain = nil
	l.review = nil
	l.reviewPolls = 0

	if msg.Err != nil {
		l.verdict = verdictError
		var execErr *engine.ExecutionError
		if errors.As(msg.Err, &execErr) {
			l.output = execErr.Err.Error()
		} else {
			l.output = msg.Err.Error()
		}
		return l, nil
	}

	sub := msg.Sub
	l.output = components.ResultTable(sub.Result, 15)
	l.note = sub.Comparison.Note

	if sub.Comparison.Correct {
		l.verdict = verdictCorrect
		l.reason = ""
		l.followUp = sub.FollowUp
		return l, nil
	}

	l.verdict = verdictIncorrect
	l.reason = sub.Comparison.Reason
	l.followUp = ""

	if l.coachSvc.Available() {
		cur := l.sess.Current()
		l.coachSvc.RequestReview(context.Background(), coach.ReviewInput{
			Lesson:    &cur,
			Query:     msg.Query,
			Reason:    sub.Comparison.Reason,
			HintsUsed: l.sess.HintsUsed(),
		})
		return l, pollReview()
	}
	return l, nil
}

func pollReview() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return reviewPollMsg(t)
	})
}

func (l *LessonScreen) handleReviewPoll() (screen.Screen, tea.Cmd) {
	if review, ok := l.coachSvc.ConsumeReview(); ok {
		l.review = review
		return l, nil
	}
	l.reviewPolls++
	if l.reviewPolls >= reviewPollLimit {
		return l, nil
	}
	return l, pollReview()
}

func (l *LessonScreen) takeHint() {
	hint, err := l.sess.Hint(context.Background())
	if err != nil {
		if errors.Is(err, engine.ErrNoMoreHints) {
			l.status = "No more hints for this lesson."
		} else {
			l.status = err.Error()
		}
		return
	}
	l.status = ""
	l.hints = append(l.hints, hint)
}

func (l *LessonScreen) revealStep() {
	step, err := l.sess.RevealStep(context.Background())
	if err != nil {
		if errors.Is(err, engine.ErrStepsExhausted) {
			l.status = "The solution is fully revealed."
		} else {
			l.status = err.Error()
		}
		return
	}
	l.status = ""
	l.steps = append(l.steps, step)
}

func (l *LessonScreen) revealAnswer() {
	l.fullAnswer = l.sess.FullAnswer(context.Background())
	l.status = ""
}

func (l *LessonScreen) explainQuery() {
	steps, usedReference := l.sess.ExplainLast()
	l.explain = steps
	l.explainRef = usedReference
	l.status = ""
}

func (l *LessonScreen) advance() (screen.Screen, tea.Cmd) {
	if !l.sess.ReadyToAdvance() {
		l.status = "Solve the challenge first, or Ctrl+K to skip."
		return l, nil
	}
	if _, err := l.sess.Advance(context.Background()); err != nil {
		if errors.Is(err, engine.ErrEndOfCurriculum) {
			l.congrats = true
			return l, nil
		}
		l.status = err.Error()
		return l, nil
	}
	l.resetForLesson()
	return l, nil
}

func (l *LessonScreen) skip() (screen.Screen, tea.Cmd) {
	if _, err := l.sess.Skip(context.Background()); err != nil {
		if errors.Is(err, engine.ErrEndOfCurriculum) {
			l.status = "This is the last lesson."
			return l, nil
		}
		l.status = err.Error()
		return l, nil
	}
	l.resetForLesson()
	return l, nil
}

// resetForLesson clears all per-lesson screen state after a move.
func (l *LessonScreen) resetForLesson() {
	l.input.Reset()
	l.verdict = verdictNone
	l.output = ""
	l.reason = ""
	l.note = ""
	l.followUp = ""
	l.status = ""
	l.hints = nil
	l.steps = nil
	l.fullAnswer = ""
	l.explain = nil
	l.explainRef = false
	l.review = nil
	l.reviewPolls = 0
}
