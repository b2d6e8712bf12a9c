package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"backend-antrian-klinik/internal/config"
	"backend-antrian-klinik/internal/http/handler"
	"backend-antrian-klinik/internal/http/middleware"
	"backend-antrian-klinik/internal/queue"
	"backend-antrian-klinik/internal/realtime"
	"backend-antrian-klinik/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	config.LoadEnv()

	db, err := store.Open()
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := config.NewRedis(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	// Semua dependency dirakit di sini dan di-inject lewat constructor,
	// tidak ada pool global.
	resolver := queue.NewResolver(db)
	queueService := queue.NewService(db, resolver)

	hub := realtime.NewDisplayHub()
	go hub.Run()

	displayCache := realtime.NewDisplayCache(rdb)
	notifier := realtime.NewNotifier(queueService, hub, displayCache)

	queueHandler := handler.NewQueueHandler(queueService, notifier)
	displayHandler := handler.NewDisplayHandler(queueService, hub, displayCache)
	authHandler := handler.NewAuthHandler(db)

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Antrian Klinik API jalan",
		})
	})

	app.Post("/san/login", authHandler.Login)

	// Display publik (kios & layar ruang tunggu)
	app.Get("/api/display", displayHandler.GetDisplay)
	app.Get("/api/display/dokter", displayHandler.GetDoctorQueue)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/display", websocket.New(displayHandler.DisplayWebSocket))

	// Base API (semua wajib login)
	api := app.Group("/api", middleware.JWTAuth())

	api.Post("/logout", authHandler.Logout)

	// Queue endpoints (petugas loket & admin)
	api.Post("/queue/admit", queueHandler.Admit)
	api.Patch("/queue/status", queueHandler.UpdateStatus)
	api.Patch("/queue/status/bulk", queueHandler.UpdateStatusBulk)
	api.Get("/queue/today", queueHandler.GetTodayQueue)
	api.Get("/queue/stats", queueHandler.GetQueueStats)
	api.Delete("/queue/:id", middleware.RoleAuth("admin"), queueHandler.RemoveEntry)

	addr := config.GetEnv("APP_HOST", "") + ":" + config.GetEnv("APP_PORT", "8080")

	// Graceful shutdown: tutup listener dulu, baru pool database.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutdown signal diterima")
		app.Shutdown()
	}()

	log.Println("Server jalan di", addr)
	if err := app.Listen(addr); err != nil {
		log.Println("Server berhenti:", err)
	}

	db.Close()
	rdb.Close()
}
