package models

type Patient struct {
	ID       int64  `json:"id"`
	Nama     string `json:"nama"`
	Priority int    `json:"priority"`
	IsVIP    bool   `json:"is_vip"`
}
