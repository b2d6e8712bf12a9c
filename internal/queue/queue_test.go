package queue

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// fixedCols - pengganti Resolver di test: nama kolom langsung ditentukan,
// tanpa introspeksi schema.
type fixedCols struct {
	checked   string
	completed string
}

func (f fixedCols) CheckedIn(ctx context.Context) (string, error) { return f.checked, nil }
func (f fixedCols) Completed(ctx context.Context) (string, error) { return f.completed, nil }

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, fixedCols{checked: "checked_in_at", completed: "completed_at"})
	svc.now = func() time.Time { return testNow }
	return svc, mock
}

func expectDone(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("ekspektasi SQL belum terpenuhi: %v", err)
	}
}
