package models

import "time"

type Vitals struct {
	Systolic    int       `json:"systolic"`
	Diastolic   int       `json:"diastolic"`
	Temperature float64   `json:"temperature"`
	RecordedAt  time.Time `json:"recorded_at"`
}
