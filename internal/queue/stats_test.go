package queue

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func statsCols() []string {
	return []string{"total", "waiting", "in_progress", "completed", "cancelled", "no_show", "avg_wait"}
}

func TestStatsAggregatesToday(t *testing.T) {
	svc, mock := newTestService(t)
	start, end := dayBounds(testNow)

	mock.ExpectQuery(regexp.QuoteMeta("FROM queue_entries")).
		WithArgs(StatusWaiting, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow, start, end).
		WillReturnRows(sqlmock.NewRows(statsCols()).AddRow(12, 5, 2, 3, 1, 1, 17.5))

	stats, err := svc.Stats(context.Background(), nil)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 12 || stats.Waiting != 5 || stats.InProgress != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgWaitMinutes != 17.5 {
		t.Errorf("AvgWaitMinutes = %v, mau 17.5", stats.AvgWaitMinutes)
	}
	expectDone(t, mock)
}

func TestStatsFiltersDoctor(t *testing.T) {
	svc, mock := newTestService(t)
	start, end := dayBounds(testNow)
	doctorID := int64(2)

	mock.ExpectQuery(`FROM queue_entries[\s\S]*AND doctor_id = \?`).
		WithArgs(StatusWaiting, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow, start, end, doctorID).
		WillReturnRows(sqlmock.NewRows(statsCols()).AddRow(0, 0, 0, 0, 0, 0, 0.0))

	if _, err := svc.Stats(context.Background(), &doctorID); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	expectDone(t, mock)
}

func TestDisplaySnapshot(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN doctors d ON d.id = qe.doctor_id")).
		WillReturnRows(sqlmock.NewRows([]string{"doctor_id", "nama", "poli", "current_token", "total_waiting"}).
			AddRow(1, "dr. Ana", "Umum", 7, 3).
			AddRow(nil, "Umum", "", 0, 2))

	rows, err := svc.DisplaySnapshot(context.Background())
	if err != nil {
		t.Fatalf("DisplaySnapshot: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("dapat %d baris, mau 2", len(rows))
	}
	if rows[0].CurrentToken != 7 || rows[0].TotalWaiting != 3 {
		t.Errorf("baris dokter = %+v", rows[0])
	}
	if rows[1].DoctorID != nil {
		t.Errorf("baris tanpa dokter harus DoctorID nil")
	}
	expectDone(t, mock)
}
