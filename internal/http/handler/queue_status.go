package handler

import (
	"errors"

	"backend-antrian-klinik/internal/queue"

	"github.com/gofiber/fiber/v2"
)

// UpdateStatusRequest - Request untuk update status satu entry.
type UpdateStatusRequest struct {
	EntryID int64  `json:"entry_id"`
	Status  string `json:"status"`
}

// BulkStatusRequest - Request untuk update status banyak entry sekaligus.
type BulkStatusRequest struct {
	Items []queue.StatusChange `json:"items"`
}

// UpdateStatus - Endpoint pindah status entry (waiting/in_progress/
// completed/cancelled/no-show).
func (h *QueueHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.EntryID == 0 || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "entry_id dan status wajib diisi",
		})
	}

	res, err := h.Service.Transition(c.Context(), req.EntryID, req.Status)
	if err != nil {
		if resp, handled := transitionErrResponse(c, err); handled {
			return resp
		}
		return queueErrResponse(c, err, "Gagal mengupdate status antrian")
	}

	h.notify()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status antrian berhasil diubah",
		"data": fiber.Map{
			"id":     res.EntryID,
			"status": res.Status,
		},
	})
}

// UpdateStatusBulk - Endpoint update status batch, all-or-nothing: satu
// item gagal berarti semua batal.
func (h *QueueHandler) UpdateStatusBulk(c *fiber.Ctx) error {
	var req BulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "items tidak boleh kosong",
		})
	}

	results, err := h.Service.TransitionMany(c.Context(), req.Items)
	if err != nil {
		if resp, handled := transitionErrResponse(c, err); handled {
			return resp
		}
		return queueErrResponse(c, err, "Gagal mengupdate status antrian")
	}

	h.notify()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Semua status antrian berhasil diubah",
		"data": fiber.Map{
			"items": results,
		},
	})
}

// transitionErrResponse - mapping error khusus transisi; handled false
// artinya bukan error transisi dan jatuh ke mapping umum.
func transitionErrResponse(c *fiber.Ctx, err error) (error, bool) {
	var invalid *queue.InvalidStatusError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Status '" + invalid.Status + "' tidak dikenal",
		}), true
	}
	if errors.Is(err, queue.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Entry antrian tidak ditemukan",
		}), true
	}
	return nil, false
}
