package queue

import (
	"context"
	"database/sql"
	"sync"
)

// Columns - adapter schema untuk kolom timestamp queue_entries yang pernah
// ganti nama antar versi deployment. Core cuma kenal nama logisnya.
type Columns interface {
	// CheckedIn return nama kolom "jam check-in" yang ada di schema live.
	CheckedIn(ctx context.Context) (string, error)
	// Completed return nama kolom "jam selesai" yang ada di schema live.
	Completed(ctx context.Context) (string, error)
}

// Kandidat diurut dari nama paling baru. Kalau tidak ada satupun yang
// ketemu di schema, fallback ke kandidat terakhir.
var (
	checkedInCandidates = []string{"checked_in_at", "check_in_time", "created_at"}
	completedCandidates = []string{"completed_at", "finished_at", "updated_at"}
)

// Resolver baca information_schema sekali per proses lalu cache hasilnya.
// Nama kolom hasil resolve aman di-interpolasi ke query karena hanya bisa
// berasal dari daftar kandidat di atas.
type Resolver struct {
	db *sql.DB

	mu       sync.Mutex
	existing map[string]bool
}

func NewResolver(db *sql.DB) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) CheckedIn(ctx context.Context) (string, error) {
	return r.resolve(ctx, checkedInCandidates)
}

func (r *Resolver) Completed(ctx context.Context) (string, error) {
	return r.resolve(ctx, completedCandidates)
}

func (r *Resolver) resolve(ctx context.Context, candidates []string) (string, error) {
	existing, err := r.columns(ctx)
	if err != nil {
		return "", wrapDBErr(err)
	}

	for _, c := range candidates {
		if existing[c] {
			return c, nil
		}
	}
	return candidates[len(candidates)-1], nil
}

func (r *Resolver) columns(ctx context.Context) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existing != nil {
		return r.existing, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT COLUMN_NAME
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		AND table_name = 'queue_entries'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.existing = existing
	return existing, nil
}
