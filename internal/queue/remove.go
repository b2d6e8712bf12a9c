package queue

import (
	"context"
	"database/sql"
	"log"

	"backend-antrian-klinik/internal/store"
)

// Remove hapus entry permanen (hard delete). Pasien dan appointment yang
// pernah terhubung tidak disentuh.
func (s *Service) Remove(ctx context.Context, entryID int64) error {
	err := store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM queue_entries WHERE id = ? FOR UPDATE`, entryID,
		).Scan(&id)

		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM queue_entries WHERE id = ?`, entryID)
		return err
	})

	if err != nil {
		return wrapDBErr(err)
	}

	log.Printf("[Remove] entry %d dihapus", entryID)
	return nil
}
