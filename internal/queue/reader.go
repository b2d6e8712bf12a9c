package queue

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"backend-antrian-klinik/internal/models"
)

// ListToday - tampilan antrian hari ini untuk layar petugas. Read-only,
// tanpa transaksi dan tanpa lock: snapshot sesaat yang boleh basi begitu
// sampai di caller. Keputusan admisi tetap lewat Admit/Transition, bukan
// dari sini, supaya read tidak antre di belakang write lock.
func (s *Service) ListToday(ctx context.Context, doctorID *int64) ([]models.QueueView, error) {
	checkedInCol, err := s.cols.CheckedIn(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	start, end := dayBounds(now)

	query := fmt.Sprintf(`
		SELECT
			qe.id, qe.token_number,
			qe.patient_id, p.nama, p.priority, p.is_vip,
			qe.appointment_id, qe.doctor_id, d.nama,
			qe.priority, qe.status, qe.%s, qe.called_at,
			v.systolic, v.diastolic, v.temperature, v.recorded_at
		FROM queue_entries qe
		INNER JOIN patients p ON p.id = qe.patient_id
		LEFT JOIN doctors d ON d.id = qe.doctor_id
		LEFT JOIN vitals v ON v.id = (
			SELECT v2.id FROM vitals v2
			WHERE v2.patient_id = qe.patient_id
			ORDER BY v2.recorded_at DESC, v2.id DESC
			LIMIT 1
		)
		WHERE qe.%s >= ? AND qe.%s < ?
	`, checkedInCol, checkedInCol, checkedInCol)

	args := []interface{}{start, end}
	if doctorID != nil {
		query += " AND qe.doctor_id = ?"
		args = append(args, *doctorID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	defer rows.Close()

	views := []models.QueueView{}
	for rows.Next() {
		var view models.QueueView
		var doctorName sql.NullString
		var calledAt sql.NullTime
		var systolic, diastolic sql.NullInt64
		var temperature sql.NullFloat64
		var recordedAt sql.NullTime

		err := rows.Scan(
			&view.ID, &view.TokenNumber,
			&view.PatientID, &view.PatientName, &view.PatientPriority, &view.IsVIP,
			&view.AppointmentID, &view.DoctorID, &doctorName,
			&view.Priority, &view.Status, &view.CheckedInAt, &calledAt,
			&systolic, &diastolic, &temperature, &recordedAt,
		)
		if err != nil {
			return nil, err
		}

		if doctorName.Valid {
			view.DoctorName = &doctorName.String
		}
		if calledAt.Valid {
			t := calledAt.Time
			view.CalledAt = &t
		}
		if recordedAt.Valid {
			view.LatestVitals = &models.Vitals{
				Systolic:    int(systolic.Int64),
				Diastolic:   int(diastolic.Int64),
				Temperature: temperature.Float64,
				RecordedAt:  recordedAt.Time,
			}
		}

		view.WaitingMinutes = waitingMinutes(view.CheckedInAt, view.CalledAt, now)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(err)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return queueLess(views[i], views[j])
	})

	return views, nil
}

// waitingMinutes - lama nunggu sejak check-in; begitu sudah dipanggil,
// yang dihitung jarak check-in sampai panggilan, bukan sampai sekarang.
func waitingMinutes(checkedInAt time.Time, calledAt *time.Time, now time.Time) int {
	until := now
	if calledAt != nil {
		until = *calledAt
	}

	minutes := int(until.Sub(checkedInAt).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// queueLess - urutan tampil antrian, tuple tie-break eksplisit:
// flag prioritas pasien, lalu prioritas entry, lalu VIP, terakhir FIFO
// berdasarkan jam check-in.
func queueLess(a, b models.QueueView) bool {
	if a.PatientPriority != b.PatientPriority {
		return a.PatientPriority > b.PatientPriority
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.IsVIP != b.IsVIP {
		return a.IsVIP
	}
	return a.CheckedInAt.Before(b.CheckedInAt)
}
