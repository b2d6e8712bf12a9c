package handler

import (
	"context"
	"errors"
	"log"

	"backend-antrian-klinik/internal/models"
	"backend-antrian-klinik/internal/queue"
	"backend-antrian-klinik/internal/realtime"

	"github.com/gofiber/fiber/v2"
)

// QueueService - operasi antrian yang dibutuhkan handler. Dipenuhi
// *queue.Service; interface-nya di sini supaya handler gampang dites
// pakai stub.
type QueueService interface {
	Admit(ctx context.Context, p queue.AdmitParams) (queue.AdmitResult, error)
	Transition(ctx context.Context, entryID int64, status string) (queue.StatusResult, error)
	TransitionMany(ctx context.Context, changes []queue.StatusChange) ([]queue.StatusResult, error)
	ListToday(ctx context.Context, doctorID *int64) ([]models.QueueView, error)
	Stats(ctx context.Context, doctorID *int64) (models.QueueStats, error)
	Remove(ctx context.Context, entryID int64) error
	DisplaySnapshot(ctx context.Context) ([]models.DisplayRow, error)
}

type QueueHandler struct {
	Service  QueueService
	Notifier *realtime.Notifier
}

func NewQueueHandler(svc QueueService, notifier *realtime.Notifier) *QueueHandler {
	return &QueueHandler{Service: svc, Notifier: notifier}
}

func (h *QueueHandler) notify() {
	if h.Notifier != nil {
		h.Notifier.QueueChanged()
	}
}

// Admit - Endpoint check-in pasien ke antrian hari ini.
func (h *QueueHandler) Admit(c *fiber.Ctx) error {
	var req queue.AdmitParams
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.PatientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "patient_id wajib diisi",
		})
	}

	res, err := h.Service.Admit(c.Context(), req)
	if err != nil {
		var dup *queue.DuplicateAdmissionError
		if errors.As(err, &dup) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success":     false,
				"error":       "Pasien sudah masuk antrian hari ini",
				"existing_id": dup.ExistingID,
			})
		}
		if errors.Is(err, queue.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Pasien tidak ditemukan",
			})
		}
		return queueErrResponse(c, err, "Gagal mendaftarkan antrian")
	}

	h.notify()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Pasien berhasil masuk antrian",
		"data":    res,
	})
}

// queueErrResponse - mapping error core yang berlaku untuk semua operasi:
// lock timeout dan store down jadi 503, sisanya 500.
func queueErrResponse(c *fiber.Ctx, err error, fallbackMsg string) error {
	switch {
	case errors.Is(err, queue.ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":   false,
			"error":     "Antrian sedang sibuk, silakan coba lagi",
			"retryable": true,
		})
	case errors.Is(err, queue.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":   false,
			"error":     "Database tidak tersedia",
			"retryable": false,
		})
	}

	log.Printf("[Queue] internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   fallbackMsg,
	})
}
