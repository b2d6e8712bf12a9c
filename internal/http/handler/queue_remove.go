package handler

import (
	"errors"

	"backend-antrian-klinik/internal/queue"

	"github.com/gofiber/fiber/v2"
)

// RemoveEntry - Endpoint hapus entry antrian permanen.
func (h *QueueHandler) RemoveEntry(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil || entryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "id harus angka",
		})
	}

	if err := h.Service.Remove(c.Context(), int64(entryID)); err != nil {
		if errors.Is(err, queue.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Entry antrian tidak ditemukan",
			})
		}
		return queueErrResponse(c, err, "Gagal menghapus entry antrian")
	}

	h.notify()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Entry antrian berhasil dihapus",
		"data": fiber.Map{
			"id": entryID,
		},
	})
}
