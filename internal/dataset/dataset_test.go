package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/BTECHK/sql-coach/internal/engine"
)

func openTestDataset(t *testing.T) *Dataset {
	t.Helper()
	d, err := OpenEphemeral()
	if err != nil {
		t.Fatalf("OpenEphemeral() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestOpenSeedsAllTables(t *testing.T) {
	d := openTestDataset(t)

	tables, err := d.Tables(context.Background())
	if err != nil {
		t.Fatalf("Tables() error: %v", err)
	}

	want := map[string]int{
		"campaigns":            6,
		"ad_groups":            8,
		"ad_performance_daily": 20,
		"search_terms":         12,
		"conversions":          12,
	}
	if len(tables) != len(want) {
		t.Fatalf("got %d tables, want %d", len(tables), len(want))
	}
	for _, tbl := range tables {
		if tbl.RowCount != want[tbl.Name] {
			t.Errorf("table %s: %d rows, want %d", tbl.Name, tbl.RowCount, want[tbl.Name])
		}
		if tbl.DDL == "" {
			t.Errorf("table %s: empty DDL", tbl.Name)
		}
	}
}

func TestOpenFileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practice.db")

	d1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error: %v", err)
	}
	d1.Close()

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	defer d2.Close()

	var count int
	err = d2.DB().QueryRow("SELECT COUNT(*) FROM campaigns").Scan(&count)
	if err != nil {
		t.Fatalf("count campaigns: %v", err)
	}
	if count != 6 {
		t.Errorf("campaigns has %d rows after reopen, want 6", count)
	}
}

func TestColumns(t *testing.T) {
	d := openTestDataset(t)

	cols, err := d.Columns(context.Background(), "campaigns")
	if err != nil {
		t.Fatalf("Columns() error: %v", err)
	}
	if len(cols) != 7 || cols[0].Name != "campaign_id" || cols[1].Name != "campaign_name" {
		t.Errorf("Columns(campaigns) = %v", cols)
	}
	if !cols[0].PrimaryKey {
		t.Error("campaign_id should be the primary key")
	}

	if _, err := d.Columns(context.Background(), "users; DROP TABLE campaigns"); err == nil {
		t.Error("Columns() accepted an unknown table name")
	}
}

func TestExecutorRunsQueries(t *testing.T) {
	d := openTestDataset(t)
	ex, err := NewExecutor(d)
	if err != nil {
		t.Fatalf("NewExecutor() error: %v", err)
	}

	res, err := ex.Execute(context.Background(),
		"SELECT campaign_name, bidding_strategy FROM campaigns")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Columns) != 2 || res.Columns[0] != "campaign_name" {
		t.Errorf("Columns = %v", res.Columns)
	}
	if res.RowCount() != 6 {
		t.Errorf("RowCount() = %d, want 6", res.RowCount())
	}
	if name, ok := res.Rows[0][0].(string); !ok || name != "Brand_Search_US" {
		t.Errorf("first row name = %v", res.Rows[0][0])
	}
}

func TestExecutorAggregates(t *testing.T) {
	d := openTestDataset(t)
	ex, err := NewExecutor(d)
	if err != nil {
		t.Fatalf("NewExecutor() error: %v", err)
	}

	res, err := ex.Execute(context.Background(),
		"SELECT SUM(clicks) FROM ad_performance_daily")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.RowCount() != 1 {
		t.Fatalf("RowCount() = %d, want 1", res.RowCount())
	}
	total, ok := res.Rows[0][0].(int64)
	if !ok {
		t.Fatalf("SUM scanned as %T, want int64", res.Rows[0][0])
	}
	if total != 14850 {
		t.Errorf("SUM(clicks) = %d, want 14850", total)
	}
}

func TestExecutorReportsExecutionError(t *testing.T) {
	d := openTestDataset(t)
	ex, err := NewExecutor(d)
	if err != nil {
		t.Fatalf("NewExecutor() error: %v", err)
	}

	_, err = ex.Execute(context.Background(), "SELECT nope FROM nowhere")
	if err == nil {
		t.Fatal("Execute() accepted a broken query")
	}
	var execErr *engine.ExecutionError
	if !errors.As(err, &execErr) {
		t.Errorf("error type = %T, want *engine.ExecutionError", err)
	}
}

func TestExecutorRejectsWrites(t *testing.T) {
	d := openTestDataset(t)
	ex, err := NewExecutor(d)
	if err != nil {
		t.Fatalf("NewExecutor() error: %v", err)
	}

	_, err = ex.Execute(context.Background(), "DELETE FROM campaigns")
	if err == nil {
		t.Fatal("Execute() allowed a write against the frozen dataset")
	}

	var count int
	if err := d.DB().QueryRow("SELECT COUNT(*) FROM campaigns").Scan(&count); err != nil {
		t.Fatalf("count campaigns: %v", err)
	}
	if count != 6 {
		t.Errorf("campaigns has %d rows after blocked DELETE, want 6", count)
	}
}
