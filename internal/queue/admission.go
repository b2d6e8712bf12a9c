package queue

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"backend-antrian-klinik/internal/store"
)

// Prioritas default pasien VIP kalau flag prioritas pasiennya masih 0.
const vipPriority = 5

type AdmitParams struct {
	PatientID     int64   `json:"patient_id"`
	AppointmentID *int64  `json:"appointment_id"`
	DoctorID      *int64  `json:"doctor_id"`
	Priority      *int    `json:"priority"`
	Notes         *string `json:"notes"`
}

type AdmitResult struct {
	ID          int64 `json:"id"`
	TokenNumber int   `json:"token_number"`
}

// Admit daftarkan pasien ke antrian hari ini dan kasih nomor urut.
//
// Urutan di dalam satu transaksi:
//  1. Scan dedup pakai FOR UPDATE pada (patient_id, hari ini): kalau masih
//     ada entry waiting/in_progress, gagal DuplicateAdmission bawa id lama.
//  2. Resolve prioritas dari flag pasien kalau tidak dikirim.
//  3. Ambil token lewat allocateToken (lock sempit, cuma di langkah ini
//     admisi pasien berbeda saling serialize).
//  4. Insert entry status waiting, checked_in = sekarang.
//
// Gagal di langkah manapun = rollback total, tidak ada token kebuang.
func (s *Service) Admit(ctx context.Context, p AdmitParams) (AdmitResult, error) {
	checkedInCol, err := s.cols.CheckedIn(ctx)
	if err != nil {
		return AdmitResult{}, err
	}

	now := s.now()
	start, end := dayBounds(now)

	var res AdmitResult
	err = store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Dedup: lock baris aktif pasien ini supaya dua admit barengan
		// untuk pasien yang sama ter-serialize penuh.
		dedupQuery := fmt.Sprintf(`
			SELECT id FROM queue_entries
			WHERE patient_id = ?
			AND status IN (?, ?)
			AND %s >= ? AND %s < ?
			LIMIT 1
			FOR UPDATE
		`, checkedInCol, checkedInCol)

		var existingID int64
		err := tx.QueryRowContext(ctx, dedupQuery,
			p.PatientID, StatusWaiting, StatusInProgress, start, end,
		).Scan(&existingID)

		if err == nil {
			return &DuplicateAdmissionError{ExistingID: existingID}
		}
		if err != sql.ErrNoRows {
			return err
		}

		priority, err := s.resolvePriority(ctx, tx, p)
		if err != nil {
			return err
		}

		token, err := allocateToken(ctx, tx, checkedInCol, start, end)
		if err != nil {
			return err
		}

		insertQuery := fmt.Sprintf(`
			INSERT INTO queue_entries
			(patient_id, appointment_id, doctor_id, token_number, priority, status, %s, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, checkedInCol)

		result, err := tx.ExecContext(ctx, insertQuery,
			p.PatientID, p.AppointmentID, p.DoctorID,
			token, priority, StatusWaiting, now, p.Notes,
		)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		res = AdmitResult{ID: id, TokenNumber: token}
		return nil
	})

	if err != nil {
		return AdmitResult{}, wrapDBErr(err)
	}

	log.Printf("[Admit] pasien %d dapat token %d (entry %d)", p.PatientID, res.TokenNumber, res.ID)
	return res, nil
}

// resolvePriority - prioritas eksplisit dari request menang; kalau kosong,
// ambil flag prioritas + VIP pasien. Lookup read-only, cukup isolasi
// transaksi yang sudah jalan.
func (s *Service) resolvePriority(ctx context.Context, tx *sql.Tx, p AdmitParams) (int, error) {
	if p.Priority != nil {
		return *p.Priority, nil
	}

	var patientPriority int
	var isVIP bool
	err := tx.QueryRowContext(ctx,
		`SELECT priority, is_vip FROM patients WHERE id = ?`, p.PatientID,
	).Scan(&patientPriority, &isVIP)

	if err == sql.ErrNoRows {
		return 0, ErrPatientNotFound
	}
	if err != nil {
		return 0, err
	}

	if isVIP && patientPriority < vipPriority {
		return vipPriority, nil
	}
	return patientPriority, nil
}
