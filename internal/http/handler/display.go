package handler

import (
	"log"
	"time"

	"backend-antrian-klinik/internal/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// DisplayHandler - endpoint publik untuk layar display ruang tunggu.
type DisplayHandler struct {
	Service QueueService
	Hub     *realtime.DisplayHub
	Cache   *realtime.DisplayCache
}

func NewDisplayHandler(svc QueueService, hub *realtime.DisplayHub, cache *realtime.DisplayCache) *DisplayHandler {
	return &DisplayHandler{Service: svc, Hub: hub, Cache: cache}
}

// GetDisplay - Snapshot display semua dokter, langsung dari database.
func (h *DisplayHandler) GetDisplay(c *fiber.Ctx) error {
	rows, err := h.Service.DisplaySnapshot(c.Context())
	if err != nil {
		return queueErrResponse(c, err, "Gagal mengambil data display")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// GetDoctorQueue - Counter cepat dari Redis untuk kios yang polling.
func (h *DisplayHandler) GetDoctorQueue(c *fiber.Ctx) error {
	doctorID, err := parseDoctorID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "doctor_id harus angka",
		})
	}

	token, _ := h.Cache.CurrentToken(c.Context(), doctorID)
	waiting, _ := h.Cache.WaitingCount(c.Context(), doctorID)

	return c.JSON(fiber.Map{
		"current_token": token,
		"total_waiting": waiting,
	})
}

// DisplayWebSocket - koneksi layar display; terima push setiap ada mutasi
// antrian yang commit.
func (h *DisplayHandler) DisplayWebSocket(c *websocket.Conn) {
	log.Printf("[Display] client connect dari %s", c.RemoteAddr())

	h.Hub.Register <- c
	defer func() {
		h.Hub.Unregister <- c
	}()

	c.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.SetPongHandler(func(string) error {
		c.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Baca terus sampai client nutup; isi message-nya tidak dipakai.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
