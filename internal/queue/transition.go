package queue

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"backend-antrian-klinik/internal/store"
)

type StatusChange struct {
	EntryID int64  `json:"entry_id"`
	Status  string `json:"status"`
}

type StatusResult struct {
	EntryID int64  `json:"entry_id"`
	Status  string `json:"status"`
}

// Transition pindahkan satu entry ke status baru, atomik terhadap
// transition lain pada entry yang sama (row lock FOR UPDATE). Yang kedua
// dapat lock setelah yang pertama commit dan nimpa di atas hasilnya,
// bukan di atas state basi.
func (s *Service) Transition(ctx context.Context, entryID int64, newStatus string) (StatusResult, error) {
	completedCol, err := s.cols.Completed(ctx)
	if err != nil {
		return StatusResult{}, err
	}

	err = store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.applyTransition(ctx, tx, completedCol, entryID, newStatus)
	})
	if err != nil {
		return StatusResult{}, wrapDBErr(err)
	}

	log.Printf("[Transition] entry %d -> %s", entryID, newStatus)
	return StatusResult{EntryID: entryID, Status: newStatus}, nil
}

// TransitionMany proses batch urut sesuai input, all-or-nothing: gagal di
// item manapun (status tidak dikenal, entry hilang, lock timeout) bikin
// seluruh batch rollback dan tidak ada satu entry pun berubah. Hasil baru
// dilaporkan setelah commit.
func (s *Service) TransitionMany(ctx context.Context, changes []StatusChange) ([]StatusResult, error) {
	completedCol, err := s.cols.Completed(ctx)
	if err != nil {
		return nil, err
	}

	err = store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, ch := range changes {
			if err := s.applyTransition(ctx, tx, completedCol, ch.EntryID, ch.Status); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapDBErr(err)
	}

	results := make([]StatusResult, 0, len(changes))
	for _, ch := range changes {
		results = append(results, StatusResult{EntryID: ch.EntryID, Status: ch.Status})
	}

	log.Printf("[TransitionMany] %d entry berubah", len(results))
	return results, nil
}

// applyTransition - lock row, validasi status, update entry + mirror status
// appointment yang terhubung. Dipakai Transition dan TransitionMany, selalu
// di dalam transaksi caller.
func (s *Service) applyTransition(ctx context.Context, tx *sql.Tx, completedCol string, entryID int64, newStatus string) error {
	var appointmentID sql.NullInt64
	var calledAt sql.NullTime
	err := tx.QueryRowContext(ctx,
		`SELECT appointment_id, called_at FROM queue_entries WHERE id = ? FOR UPDATE`,
		entryID,
	).Scan(&appointmentID, &calledAt)

	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if !ValidStatus(newStatus) {
		return &InvalidStatusError{Status: newStatus}
	}

	now := s.now()

	// called_at keisi sekali waktu pertama masuk in_progress dan tidak
	// pernah ditimpa; kolom "selesai" cuma keisi selama status completed.
	var updateQuery string
	args := []interface{}{newStatus}
	switch {
	case newStatus == StatusInProgress && !calledAt.Valid:
		updateQuery = fmt.Sprintf(
			`UPDATE queue_entries SET status = ?, called_at = ?, %s = NULL WHERE id = ?`,
			completedCol,
		)
		args = append(args, now, entryID)
	case newStatus == StatusCompleted:
		updateQuery = fmt.Sprintf(
			`UPDATE queue_entries SET status = ?, %s = ? WHERE id = ?`,
			completedCol,
		)
		args = append(args, now, entryID)
	default:
		updateQuery = fmt.Sprintf(
			`UPDATE queue_entries SET status = ?, %s = NULL WHERE id = ?`,
			completedCol,
		)
		args = append(args, entryID)
	}

	if _, err := tx.ExecContext(ctx, updateQuery, args...); err != nil {
		return err
	}

	// Status appointment ikut di transaksi yang sama: tidak boleh commit
	// salah satu saja.
	if appointmentID.Valid {
		_, err := tx.ExecContext(ctx,
			`UPDATE appointments SET status = ? WHERE id = ?`,
			newStatus, appointmentID.Int64,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
