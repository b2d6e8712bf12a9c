package models

import "time"

type Appointment struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	Status      string    `json:"status"` // ikut status queue entry yang terhubung
	ScheduledAt time.Time `json:"scheduled_at"`
}
