package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"backend-antrian-klinik/internal/config"

	_ "github.com/go-sql-driver/mysql"
)

// Open buka connection pool MySQL dari env dan return handle-nya.
// Handle ini di-inject ke semua komponen lewat constructor, tidak ada
// pool global. innodb_lock_wait_timeout diset per session lewat DSN
// supaya transaksi yang nunggu row lock gagal bersih, bukan gantung.
func Open() (*sql.DB, error) {
	lockWait := config.GetEnvInt("DB_LOCK_WAIT_TIMEOUT", 5)

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&innodb_lock_wait_timeout=%d",
		config.GetEnv("DB_USER", "root"),
		config.GetEnv("DB_PASSWORD", ""),
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_PORT", "3306"),
		config.GetEnv("DB_NAME", "antrian_klinik"),
		lockWait,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("gagal open database: %w", err)
	}

	db.SetMaxOpenConns(config.GetEnvInt("DB_MAX_OPEN", 25))
	db.SetMaxIdleConns(config.GetEnvInt("DB_MAX_IDLE", 5))
	db.SetConnMaxLifetime(time.Duration(config.GetEnvInt("DB_CONN_LIFETIME_MINUTES", 30)) * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database tidak nyambung: %w", err)
	}

	log.Println("Database connected (lock_wait_timeout", lockWait, "detik)")
	return db, nil
}
