package queue

import (
	"context"
	"fmt"

	"backend-antrian-klinik/internal/models"
)

// Stats - agregat antrian hari ini untuk dashboard. Read-only, tanpa lock.
func (s *Service) Stats(ctx context.Context, doctorID *int64) (models.QueueStats, error) {
	checkedInCol, err := s.cols.CheckedIn(ctx)
	if err != nil {
		return models.QueueStats{}, err
	}

	start, end := dayBounds(s.now())

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(status = ?), 0),
			COALESCE(SUM(status = ?), 0),
			COALESCE(SUM(status = ?), 0),
			COALESCE(SUM(status = ?), 0),
			COALESCE(SUM(status = ?), 0),
			COALESCE(AVG(CASE WHEN called_at IS NOT NULL
				THEN TIMESTAMPDIFF(MINUTE, %s, called_at) END), 0)
		FROM queue_entries
		WHERE %s >= ? AND %s < ?
	`, checkedInCol, checkedInCol, checkedInCol)

	args := []interface{}{
		StatusWaiting, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow,
		start, end,
	}
	if doctorID != nil {
		query += " AND doctor_id = ?"
		args = append(args, *doctorID)
	}

	var stats models.QueueStats
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Waiting,
		&stats.InProgress,
		&stats.Completed,
		&stats.Cancelled,
		&stats.NoShow,
		&stats.AvgWaitMinutes,
	)
	if err != nil {
		return models.QueueStats{}, wrapDBErr(err)
	}

	return stats, nil
}

// DisplaySnapshot - data layar ruang tunggu per dokter: token yang lagi
// dipanggil dan jumlah yang masih nunggu. Entry tanpa dokter masuk baris
// "Umum".
func (s *Service) DisplaySnapshot(ctx context.Context) ([]models.DisplayRow, error) {
	checkedInCol, err := s.cols.CheckedIn(ctx)
	if err != nil {
		return nil, err
	}

	start, end := dayBounds(s.now())

	query := fmt.Sprintf(`
		SELECT
			qe.doctor_id,
			COALESCE(d.nama, 'Umum'),
			COALESCE(d.poli, ''),
			COALESCE((
				SELECT qe2.token_number FROM queue_entries qe2
				WHERE qe2.doctor_id <=> qe.doctor_id
				AND qe2.status = ?
				AND qe2.%s >= ? AND qe2.%s < ?
				ORDER BY qe2.called_at DESC
				LIMIT 1
			), 0),
			COALESCE(SUM(qe.status = ?), 0)
		FROM queue_entries qe
		LEFT JOIN doctors d ON d.id = qe.doctor_id
		WHERE qe.%s >= ? AND qe.%s < ?
		GROUP BY qe.doctor_id, d.nama, d.poli
		ORDER BY d.nama
	`, checkedInCol, checkedInCol, checkedInCol, checkedInCol)

	rows, err := s.db.QueryContext(ctx, query,
		StatusInProgress, start, end,
		StatusWaiting,
		start, end,
	)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	defer rows.Close()

	displays := []models.DisplayRow{}
	for rows.Next() {
		var row models.DisplayRow
		if err := rows.Scan(
			&row.DoctorID, &row.DoctorName, &row.Poli,
			&row.CurrentToken, &row.TotalWaiting,
		); err != nil {
			return nil, err
		}
		displays = append(displays, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(err)
	}

	return displays, nil
}
