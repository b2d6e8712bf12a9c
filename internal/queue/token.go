package queue

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// allocateToken hitung nomor antrian berikutnya untuk hari ini:
// max(token_number) + 1, dibaca pakai FOR UPDATE supaya dua admisi yang
// barengan antre di lock ini. Yang kedua baru jalan setelah transaksi
// pertama commit/rollback, jadi dia lihat max yang sudah ter-update dan
// urutan token tetap rapat 1..N tanpa duplikat.
//
// Wajib dipanggil di dalam transaksi yang sudah kebuka; lock-nya lepas
// waktu transaksi itu selesai.
func allocateToken(ctx context.Context, tx *sql.Tx, checkedInCol string, start, end time.Time) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(token_number), 0)
		FROM queue_entries
		WHERE %s >= ? AND %s < ?
		FOR UPDATE
	`, checkedInCol, checkedInCol)

	var max int
	if err := tx.QueryRowContext(ctx, query, start, end).Scan(&max); err != nil {
		return 0, err
	}

	return max + 1, nil
}
