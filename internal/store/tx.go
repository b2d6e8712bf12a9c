package store

import (
	"context"
	"database/sql"
)

// WithTx jalankan fn dalam satu transaksi: commit kalau sukses,
// rollback kalau error atau panic. Ini satu-satunya jalur rollback,
// jadi tidak ada operasi yang bisa ninggalin transaksi kebuka.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
