package dataset

import (
	"context"

	"github.com/BTECHK/sql-coach/internal/engine"
)

// Executor materializes learner SQL into engine results.
type Executor struct {
	ds *Dataset
}

// NewExecutor returns an Executor over the given dataset. The dataset
// is frozen read-only so a stray UPDATE or DROP fails instead of
// corrupting the seed.
func NewExecutor(d *Dataset) (*Executor, error) {
	if err := d.Freeze(); err != nil {
		return nil, err
	}
	return &Executor{ds: d}, nil
}

// Execute runs query and returns the full result set. Database errors
// come back as *engine.ExecutionError so callers can tell a broken
// query from a broken session.
func (e *Executor) Execute(ctx context.Context, query string) (engine.Result, error) {
	rows, err := e.ds.db.QueryContext(ctx, query)
	if err != nil {
		return engine.Result{}, &engine.ExecutionError{Query: query, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return engine.Result{}, &engine.ExecutionError{Query: query, Err: err}
	}

	res := engine.Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return engine.Result{}, &engine.ExecutionError{Query: query, Err: err}
		}
		for i, v := range values {
			// TEXT columns scan as []byte with this driver.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return engine.Result{}, &engine.ExecutionError{Query: query, Err: err}
	}
	return res, nil
}
