package lesson

import (
	"time"

	"github.com/BTECHK/sql-coach/internal/engine"
)

// submissionMsg is sent when a query has been graded.
type submissionMsg struct {
	Query string
	Sub   engine.Submission
	Err   error
}

// reviewPollMsg drives polling for an in-flight coach review.
type reviewPollMsg time.Time
