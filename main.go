package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"doc_processing_backend/bootstrap"
	"doc_processing_backend/config"
	"doc_processing_backend/middleware"
	"doc_processing_backend/pkg/logging"
	"doc_processing_backend/routes"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()
	logging.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		logging.Logger.Error("failed to bootstrap", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.StartArrivalWorker(ctx)

	server := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxFileSize) + 1024*1024,
	})
	server.Use(middleware.Logger())
	server.Use(middleware.CORS())
	routes.RegisterDocumentRoutes(server, app.Handlers.DocHandler)
	routes.RegisterHealthRoutes(server, app.Handlers.HealthHandler)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logging.Logger.Info("shutting down")
		cancel()
		_ = server.Shutdown()
	}()

	logging.Logger.Info("server running", "port", cfg.HttpPort)
	if err := server.Listen(":" + cfg.HttpPort); err != nil {
		logging.Logger.Error("server stopped", "error", err)
	}

	cancel()
	if err := app.Shutdown(); err != nil {
		logging.Logger.Error("fail shutdown", "error", err)
		os.Exit(1)
	}
}
