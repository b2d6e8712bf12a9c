package queue

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound - entry antrian tidak ada (sudah dihapus atau id salah).
	ErrNotFound = errors.New("entry antrian tidak ditemukan")

	// ErrPatientNotFound - patient_id yang diminta tidak ada di tabel pasien.
	ErrPatientNotFound = errors.New("pasien tidak ditemukan")

	// ErrLockTimeout - row lock atau allocation lock tidak didapat dalam
	// batas innodb_lock_wait_timeout. Aman di-retry oleh client.
	ErrLockTimeout = errors.New("lock antrian timeout, silakan coba lagi")

	// ErrStoreUnavailable - pool habis atau database bermasalah.
	// Jangan langsung di-retry.
	ErrStoreUnavailable = errors.New("database tidak tersedia")
)

// DuplicateAdmissionError - pasien sudah punya entry aktif hari ini.
// ExistingID dibawa supaya UI bisa redirect ke entry lama, bukan retry buta.
type DuplicateAdmissionError struct {
	ExistingID int64
}

func (e *DuplicateAdmissionError) Error() string {
	return fmt.Sprintf("pasien sudah masuk antrian hari ini (entry %d)", e.ExistingID)
}

// InvalidStatusError - status di luar lima nilai yang dikenal.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status %q tidak dikenal", e.Status)
}

// MySQL error numbers yang kita bedakan.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
	mysqlErrTooManyConns    = 1040
)

// wrapDBErr klasifikasi error driver jadi error bertipe milik package ini.
// Error taxonomy lain (NotFound, dll) sudah ditentukan sebelum sampai sini.
func wrapDBErr(err error) error {
	if err == nil {
		return nil
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrLockWaitTimeout, mysqlErrDeadlock:
			// Deadlock disamakan dengan lock timeout: dua-duanya sudah
			// di-rollback oleh server dan aman di-retry.
			return ErrLockTimeout
		case mysqlErrTooManyConns:
			return ErrStoreUnavailable
		}
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return ErrStoreUnavailable
	}

	return err
}
