package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Dataset is the Google Ads practice database learner queries run
// against. It is rebuilt from the embedded seed whenever the schema is
// missing, so deleting the file (or using :memory:) starts fresh.
type Dataset struct {
	db *sql.DB
}

// Open connects to the practice database at dsn, creating and seeding
// the schema if it is not present.
//
// The pool is pinned to a single connection. The in-memory DSN needs
// that to keep its data at all, and it lets the query_only pragma set
// by Freeze hold for every later query.
func Open(dsn string) (*Dataset, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open practice database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	d := &Dataset{db: db}
	if err := d.ensureSeeded(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenEphemeral opens a throwaway in-memory practice database.
func OpenEphemeral() (*Dataset, error) {
	return Open(":memory:")
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// ensureSeeded creates and populates the schema when the campaigns
// table is absent.
func (d *Dataset) ensureSeeded(ctx context.Context) error {
	var name string
	err := d.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'campaigns'").Scan(&name)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("inspect practice database: %w", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range tableDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, ins := range seedStatements {
		if _, err := tx.ExecContext(ctx, ins); err != nil {
			return fmt.Errorf("seed table: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// Freeze marks the database read-only. Called once seeding is done so
// learner queries cannot mutate the dataset.
func (d *Dataset) Freeze() error {
	if _, err := d.db.Exec("PRAGMA query_only = ON"); err != nil {
		return fmt.Errorf("freeze practice database: %w", err)
	}
	return nil
}

// DB exposes the underlying handle.
func (d *Dataset) DB() *sql.DB {
	return d.db
}

// Close closes the database.
func (d *Dataset) Close() error {
	return d.db.Close()
}

// Table describes one dataset table for the schema browser.
type Table struct {
	Name     string
	DDL      string
	RowCount int
}

// Tables returns every dataset table with its DDL and current row
// count, in creation order.
func (d *Dataset) Tables(ctx context.Context) ([]Table, error) {
	tables := make([]Table, 0, len(TableNames))
	for _, name := range TableNames {
		var ddl string
		err := d.db.QueryRowContext(ctx,
			"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&ddl)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", name, err)
		}

		var count int
		// Identifier comes from the fixed TableNames list, not user input.
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s", name)
		if err := d.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}

		tables = append(tables, Table{Name: name, DDL: strings.TrimSpace(ddl), RowCount: count})
	}
	return tables, nil
}

// Column describes one column of a dataset table.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// Columns returns the columns of one dataset table in declaration
// order.
func (d *Dataset) Columns(ctx context.Context, table string) ([]Column, error) {
	known := false
	for _, n := range TableNames {
		if n == table {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	rows, err := d.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		cols = append(cols, Column{
			Name:       name,
			Type:       typ,
			NotNull:    notNull != 0,
			PrimaryKey: pk != 0,
		})
	}
	return cols, rows.Err()
}
