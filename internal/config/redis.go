package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NewRedis bikin client Redis dari env. Client dikembalikan, bukan disimpan
// global, supaya pemakai (display cache) dapat dependency-nya lewat constructor.
func NewRedis(ctx context.Context) (*redis.Client, error) {
	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		db = 0
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis tidak nyambung: %w", err)
	}

	return rdb, nil
}
