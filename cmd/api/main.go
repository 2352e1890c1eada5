package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"sistem-desa/config"
	"sistem-desa/internal/handler"
	"sistem-desa/internal/logger"
	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/middleware"
	"sistem-desa/internal/routes"
	"sistem-desa/internal/spatial"
	"sistem-desa/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}
	logger.Setup()
	log := logger.For("main")
	cfg := config.Load()

	log.Info().Str("driver", cfg.DBDriver).Msg("mencoba koneksi ke database")
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database tidak bisa dibuka")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database tidak bisa dibuka")
	}

	rc := config.OpenRedis(cfg)
	cache := maplayer.NewCache(rc, cfg.MapCacheTTL)

	repos := routes.NewRepos(db)
	index := spatial.NewIndex()
	refresher := spatial.NewRefresher(index)
	usecase.RegisterLoaders(refresher, repos.Batas, repos.Bencana, repos.Fasilitas, repos.TempatPenting)
	if err := refresher.Refresh(); err != nil {
		log.Error().Err(err).Msg("indeks spasial awal gagal dibangun, akan dicoba lagi sesuai jadwal")
	}

	scheduler := cron.New()
	if cfg.IndexRefreshCron != "" {
		if _, err := refresher.Schedule(scheduler, cfg.IndexRefreshCron); err != nil {
			log.Fatal().Err(err).Str("cron", cfg.IndexRefreshCron).Msg("jadwal INDEX_REFRESH_CRON tidak valid")
		}
	}
	scheduler.Start()

	health := handler.NewHealthHandler(index)
	health.AddCheck("database", sqlDB.PingContext)
	if rc != nil {
		health.AddCheck("redis", func(ctx context.Context) error { return rc.Ping(ctx).Err() })
	}

	app := fiber.New(fiber.Config{
		AppName:      "Sistem Informasi Desa",
		ErrorHandler: errorHandler,
	})

	// Middleware Global
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.Metrics())

	// Serve Static Files (read-only, dikelola di luar aplikasi)
	app.Static("/uploads", cfg.UploadDir)

	routes.Setup(app, &routes.Deps{
		DB:        db,
		Repos:     repos,
		Index:     index,
		Cache:     cache,
		Registry:  maplayer.DefaultRegistry(),
		Lokasi:    usecase.NewLokasiUsecase(repos.Batas, index, cache, cfg.BoundaryCheck),
		Health:    health,
		JWTSecret: cfg.JWTSecret,
	})

	go func() {
		log.Info().Str("port", cfg.AppPort).Msg("server siap menerima request")
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server berhenti")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("mematikan server")
	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown tidak bersih")
	}
	if rc != nil {
		_ = rc.Close()
	}
	_ = sqlDB.Close()
}

// errorHandler menyeragamkan error yang lolos dari handler menjadi {"error": "..."}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Terjadi kesalahan pada server"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log := logger.For("main")
		log.Error().Err(err).Str("path", c.Path()).Msg("error tidak tertangani")
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
