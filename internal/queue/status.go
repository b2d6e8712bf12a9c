package queue

// Lima status entry antrian.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no-show"
)

// ValidStatus - satu-satunya tempat validasi nilai status.
//
// Sengaja tidak mengecek status SEKARANG dari entry: klinik kadang perlu
// buka lagi kunjungan yang keburu di-complete, jadi transisi antar lima
// status ini bebas. Kalau nanti mau dibatasi (misal larang completed ->
// waiting), cukup ubah fungsi ini, caller tidak perlu disentuh.
func ValidStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
