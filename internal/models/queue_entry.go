package models

import (
	"time"
)

type QueueEntry struct {
	ID            int64      `json:"id"`
	PatientID     int64      `json:"patient_id"`
	AppointmentID *int64     `json:"appointment_id"`
	DoctorID      *int64     `json:"doctor_id"`
	TokenNumber   int        `json:"token_number"`
	Priority      int        `json:"priority"`
	Status        string     `json:"status"` // waiting, in_progress, completed, cancelled, no-show
	CheckedInAt   time.Time  `json:"checked_in_at"`
	CalledAt      *time.Time `json:"called_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	Notes         *string    `json:"notes"`
}

// QueueView - satu baris antrian hari ini untuk layar petugas,
// hasil join entry + pasien + appointment + vitals terakhir.
type QueueView struct {
	ID              int64      `json:"id"`
	TokenNumber     int        `json:"token_number"`
	PatientID       int64      `json:"patient_id"`
	PatientName     string     `json:"patient_name"`
	PatientPriority int        `json:"patient_priority"`
	IsVIP           bool       `json:"is_vip"`
	AppointmentID   *int64     `json:"appointment_id"`
	DoctorID        *int64     `json:"doctor_id"`
	DoctorName      *string    `json:"doctor_name"`
	Priority        int        `json:"priority"`
	Status          string     `json:"status"`
	CheckedInAt     time.Time  `json:"checked_in_at"`
	CalledAt        *time.Time `json:"called_at"`
	WaitingMinutes  int        `json:"waiting_minutes"`
	LatestVitals    *Vitals    `json:"latest_vitals"`
}

type QueueStats struct {
	Total          int     `json:"total"`
	Waiting        int     `json:"waiting"`
	InProgress     int     `json:"in_progress"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	NoShow         int     `json:"no_show"`
	AvgWaitMinutes float64 `json:"avg_wait_minutes"`
}

// DisplayRow - satu baris di layar display ruang tunggu.
type DisplayRow struct {
	DoctorID     *int64 `json:"doctor_id"`
	DoctorName   string `json:"doctor_name"`
	Poli         string `json:"poli"`
	CurrentToken int    `json:"current_token"`
	TotalWaiting int    `json:"total_waiting"`
}
