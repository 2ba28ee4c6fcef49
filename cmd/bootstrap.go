package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BTECHK/sql-coach/internal/coach"
	"github.com/BTECHK/sql-coach/internal/curriculum"
	"github.com/BTECHK/sql-coach/internal/dataset"
	"github.com/BTECHK/sql-coach/internal/engine"
	"github.com/BTECHK/sql-coach/internal/llm"
	"github.com/BTECHK/sql-coach/internal/store"
)

// Bootstrap holds everything a front-end needs, plus the resources to
// close on exit.
type Bootstrap struct {
	Session *engine.Session
	Coach   *coach.Service
	Dataset *dataset.Dataset
	Store   *store.Store
	// Warning carries a non-fatal startup problem to show the user.
	Warning string
}

func (b *Bootstrap) Close() {
	if b.Dataset != nil {
		_ = b.Dataset.Close()
	}
	if b.Store != nil {
		_ = b.Store.Close()
	}
}

// bootstrap opens the dataset, progress store, curriculum, and the
// optional AI coach, and starts a session. Progress store failures are
// non-fatal: the session runs in memory with a warning.
func bootstrap(cmd *cobra.Command) (*Bootstrap, error) {
	ctx := cmd.Context()

	cat, err := curriculum.Load()
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}

	ds, err := dataset.OpenEphemeral()
	if err != nil {
		return nil, fmt.Errorf("open practice dataset: %w", err)
	}

	exec, err := dataset.NewExecutor(ds)
	if err != nil {
		_ = ds.Close()
		return nil, fmt.Errorf("prepare query executor: %w", err)
	}

	boot := &Bootstrap{Dataset: ds}

	cfg := engine.Config{Catalog: cat, Executor: exec}

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			boot.Store = st
			cfg.Progress = st.Progress()
			cfg.Events = st.Events()
		}
	}
	if err != nil {
		boot.Warning = fmt.Sprintf("progress will not be saved: %v", err)
		fmt.Fprintln(os.Stderr, "Warning:", boot.Warning)
	}

	sess, err := engine.New(ctx, cfg)
	if err != nil {
		// Load failures and version mismatches leave a usable fresh
		// session behind.
		boot.Warning = err.Error()
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	boot.Session = sess

	if boot.Store != nil {
		if provider, perr := llm.NewProviderFromEnv(ctx, boot.Store); perr == nil {
			boot.Coach = coach.NewService(provider, coach.DefaultConfig())
		}
	} else if provider, perr := llm.NewProviderFromEnv(ctx, nil); perr == nil {
		boot.Coach = coach.NewService(provider, coach.DefaultConfig())
	}

	return boot, nil
}
