package models

type Doctor struct {
	ID   int64  `json:"id"`
	Nama string `json:"nama"`
	Poli string `json:"poli"`
}
