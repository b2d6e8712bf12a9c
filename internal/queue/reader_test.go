package queue

import (
	"context"
	"regexp"
	"testing"
	"time"

	"backend-antrian-klinik/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestQueueLessTieBreakOrder(t *testing.T) {
	base := models.QueueView{CheckedInAt: testNow}
	earlier := models.QueueView{CheckedInAt: testNow.Add(-30 * time.Minute)}

	tests := []struct {
		name string
		a, b models.QueueView
		want bool
	}{
		{
			name: "flag prioritas pasien menang atas semuanya",
			a:    models.QueueView{PatientPriority: 1, CheckedInAt: testNow},
			b:    models.QueueView{Priority: 9, IsVIP: true, CheckedInAt: testNow.Add(-time.Hour)},
			want: true,
		},
		{
			name: "prioritas entry sebelum VIP",
			a:    models.QueueView{Priority: 5, CheckedInAt: testNow},
			b:    models.QueueView{IsVIP: true, CheckedInAt: testNow.Add(-time.Hour)},
			want: true,
		},
		{
			name: "VIP sebelum FIFO",
			a:    models.QueueView{IsVIP: true, CheckedInAt: testNow},
			b:    earlier,
			want: true,
		},
		{
			name: "sisanya FIFO jam check-in",
			a:    earlier,
			b:    base,
			want: true,
		},
		{
			name: "FIFO arah sebaliknya",
			a:    base,
			b:    earlier,
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := queueLess(tc.a, tc.b); got != tc.want {
				t.Errorf("queueLess = %v, mau %v", got, tc.want)
			}
		})
	}
}

func TestWaitingMinutes(t *testing.T) {
	checkedIn := testNow.Add(-45 * time.Minute)
	called := testNow.Add(-20 * time.Minute)

	if got := waitingMinutes(checkedIn, nil, testNow); got != 45 {
		t.Errorf("belum dipanggil: %d menit, mau 45", got)
	}
	if got := waitingMinutes(checkedIn, &called, testNow); got != 25 {
		t.Errorf("sudah dipanggil: %d menit, mau 25", got)
	}
	if got := waitingMinutes(testNow.Add(time.Minute), nil, testNow); got != 0 {
		t.Errorf("selisih negatif harus 0, dapat %d", got)
	}
}

// ListToday tidak boleh buka transaksi atau pegang lock, dan hasilnya
// urut sesuai tuple prioritas walau database balikin urutan acak.
func TestListTodaySortsAndComputesWait(t *testing.T) {
	svc, mock := newTestService(t)

	cols := []string{
		"id", "token_number",
		"patient_id", "nama", "priority", "is_vip",
		"appointment_id", "doctor_id", "doctor_nama",
		"entry_priority", "status", "checked_in_at", "called_at",
		"systolic", "diastolic", "temperature", "recorded_at",
	}

	checkedIn := testNow.Add(-30 * time.Minute)
	rows := sqlmock.NewRows(cols).
		AddRow(1, 1, 10, "Budi", 0, false, nil, nil, nil,
			0, StatusWaiting, checkedIn, nil,
			nil, nil, nil, nil).
		AddRow(2, 2, 11, "Siti", 0, true, nil, nil, nil,
			0, StatusWaiting, testNow.Add(-5*time.Minute), nil,
			120, 80, 36.7, testNow.Add(-10*time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("FROM queue_entries qe")).
		WillReturnRows(rows)

	views, err := svc.ListToday(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListToday: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("dapat %d baris, mau 2", len(views))
	}

	// Siti VIP harus di depan walau check-in belakangan.
	if views[0].PatientName != "Siti" {
		t.Errorf("urutan pertama %q, mau Siti (VIP)", views[0].PatientName)
	}
	if views[1].WaitingMinutes != 30 {
		t.Errorf("Budi nunggu %d menit, mau 30", views[1].WaitingMinutes)
	}
	if views[0].LatestVitals == nil || views[0].LatestVitals.Systolic != 120 {
		t.Errorf("vitals terakhir Siti tidak kebawa: %+v", views[0].LatestVitals)
	}
	expectDone(t, mock)
}

func TestListTodayFiltersDoctor(t *testing.T) {
	svc, mock := newTestService(t)
	start, end := dayBounds(testNow)
	doctorID := int64(3)

	mock.ExpectQuery(`FROM queue_entries qe[\s\S]*AND qe\.doctor_id = \?`).
		WithArgs(start, end, doctorID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "token_number",
			"patient_id", "nama", "priority", "is_vip",
			"appointment_id", "doctor_id", "doctor_nama",
			"entry_priority", "status", "checked_in_at", "called_at",
			"systolic", "diastolic", "temperature", "recorded_at",
		}))

	views, err := svc.ListToday(context.Background(), &doctorID)
	if err != nil {
		t.Fatalf("ListToday: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("mau kosong, dapat %d", len(views))
	}
	expectDone(t, mock)
}
