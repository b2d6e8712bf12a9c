package queue

import (
	"database/sql"
	"time"
)

// Service - core antrian klinik. Semua operasi tulis jalan dalam tepat satu
// transaksi lewat store.WithTx; operasi baca (ListToday, Stats, Display)
// tanpa transaksi dan tanpa lock.
type Service struct {
	db   *sql.DB
	cols Columns
	now  func() time.Time
}

func NewService(db *sql.DB, cols Columns) *Service {
	return &Service{
		db:   db,
		cols: cols,
		now:  time.Now,
	}
}

// dayBounds - batas hari kalender yang jadi scope token dan dedup.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
