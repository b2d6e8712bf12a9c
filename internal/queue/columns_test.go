package queue

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestResolver(t *testing.T, schemaColumns ...string) (*Resolver, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rows := sqlmock.NewRows([]string{"COLUMN_NAME"})
	for _, col := range schemaColumns {
		rows.AddRow(col)
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WillReturnRows(rows)

	return NewResolver(db), mock
}

func TestResolverPrefersNewestName(t *testing.T) {
	r, _ := newTestResolver(t, "id", "patient_id", "checked_in_at", "check_in_time", "completed_at")

	col, err := r.CheckedIn(context.Background())
	if err != nil {
		t.Fatalf("CheckedIn: %v", err)
	}
	if col != "checked_in_at" {
		t.Errorf("col = %q, mau checked_in_at", col)
	}
}

// Deployment lama cuma punya nama kolom generasi kedua.
func TestResolverFindsLegacyName(t *testing.T) {
	r, _ := newTestResolver(t, "id", "patient_id", "check_in_time", "finished_at")

	col, err := r.CheckedIn(context.Background())
	if err != nil {
		t.Fatalf("CheckedIn: %v", err)
	}
	if col != "check_in_time" {
		t.Errorf("col = %q, mau check_in_time", col)
	}

	completed, err := r.Completed(context.Background())
	if err != nil {
		t.Fatalf("Completed: %v", err)
	}
	if completed != "finished_at" {
		t.Errorf("col = %q, mau finished_at", completed)
	}
}

// Tidak ada kandidat yang ketemu: fallback ke kandidat terakhir.
func TestResolverFallsBackToLastCandidate(t *testing.T) {
	r, _ := newTestResolver(t, "id", "patient_id", "status")

	col, err := r.CheckedIn(context.Background())
	if err != nil {
		t.Fatalf("CheckedIn: %v", err)
	}
	if col != "created_at" {
		t.Errorf("col = %q, mau created_at (fallback)", col)
	}
}

// Introspeksi schema cuma boleh jalan sekali per proses; panggilan
// berikutnya dari cache.
func TestResolverCachesIntrospection(t *testing.T) {
	r, mock := newTestResolver(t, "checked_in_at", "completed_at")

	ctx := context.Background()
	if _, err := r.CheckedIn(ctx); err != nil {
		t.Fatalf("CheckedIn: %v", err)
	}
	if _, err := r.Completed(ctx); err != nil {
		t.Fatalf("Completed: %v", err)
	}
	if _, err := r.CheckedIn(ctx); err != nil {
		t.Fatalf("CheckedIn kedua: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("query introspeksi harus tepat satu kali: %v", err)
	}
}
