package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseDoctorID - query param doctor_id opsional.
func parseDoctorID(c *fiber.Ctx) (*int64, error) {
	raw := c.Query("doctor_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetTodayQueue - Endpoint daftar antrian hari ini, urut prioritas.
func (h *QueueHandler) GetTodayQueue(c *fiber.Ctx) error {
	doctorID, err := parseDoctorID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "doctor_id harus angka",
		})
	}

	views, err := h.Service.ListToday(c.Context(), doctorID)
	if err != nil {
		return queueErrResponse(c, err, "Gagal mengambil antrian hari ini")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
	})
}

// GetQueueStats - Endpoint agregat antrian hari ini untuk dashboard.
func (h *QueueHandler) GetQueueStats(c *fiber.Ctx) error {
	doctorID, err := parseDoctorID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "doctor_id harus angka",
		})
	}

	stats, err := h.Service.Stats(c.Context(), doctorID)
	if err != nil {
		return queueErrResponse(c, err, "Gagal mengambil statistik antrian")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
