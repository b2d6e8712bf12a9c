package realtime

import (
	"context"
	"fmt"

	"backend-antrian-klinik/internal/models"

	"github.com/redis/go-redis/v9"
)

// DisplayCache simpan counter display di Redis supaya endpoint publik
// yang sering di-poll kios tidak mukul database.
type DisplayCache struct {
	rdb *redis.Client
}

func NewDisplayCache(rdb *redis.Client) *DisplayCache {
	return &DisplayCache{rdb: rdb}
}

func doctorKey(doctorID *int64) string {
	if doctorID == nil {
		return "umum"
	}
	return fmt.Sprintf("%d", *doctorID)
}

// Store tulis ulang counter per dokter dari snapshot terakhir.
func (c *DisplayCache) Store(ctx context.Context, rows []models.DisplayRow) error {
	pipe := c.rdb.Pipeline()
	for _, row := range rows {
		key := doctorKey(row.DoctorID)
		pipe.Set(ctx, "antrian:dokter:"+key+":token", row.CurrentToken, 0)
		pipe.Set(ctx, "antrian:dokter:"+key+":menunggu", row.TotalWaiting, 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// CurrentToken - nomor yang sedang dipanggil untuk dokter ini (0 kalau
// belum ada).
func (c *DisplayCache) CurrentToken(ctx context.Context, doctorID *int64) (int64, error) {
	val, err := c.rdb.Get(ctx, "antrian:dokter:"+doctorKey(doctorID)+":token").Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// WaitingCount - jumlah yang masih menunggu untuk dokter ini.
func (c *DisplayCache) WaitingCount(ctx context.Context, doctorID *int64) (int64, error) {
	val, err := c.rdb.Get(ctx, "antrian:dokter:"+doctorKey(doctorID)+":menunggu").Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
