package queue

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRemoveDeletesLockedRow(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM queue_entries WHERE id = ? FOR UPDATE")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM queue_entries WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Remove(context.Background(), 5); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	expectDone(t, mock)
}

func TestRemoveUnknownEntry(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM queue_entries WHERE id = ? FOR UPDATE")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.Remove(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("mau ErrNotFound, dapat %v", err)
	}
	expectDone(t, mock)
}
