package main

// @title Carnaval Microservice API
// @version 1.0.0
// @description Backend para la logística de eventos de carnaval: control de aforo de espacios públicos y gestión de permisos de vendedores ambulantes.
// @description
// @description Módulos:
// @description - Aforo: registro de espacios, entradas/salidas, alertas por umbral de ocupación y reportes
// @description - Permisos: registro de vendedores, solicitudes de permiso, aprobación con número de permiso y estadísticas

// @contact.name API Support
// @contact.email support@carnaval-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/carnaval-microservice/docs/swagger"
	"github.com/carnaval-microservice/internal/config"
	httpDelivery "github.com/carnaval-microservice/internal/delivery/http"
	"github.com/carnaval-microservice/internal/delivery/http/handler"
	"github.com/carnaval-microservice/internal/domain/repository"
	"github.com/carnaval-microservice/internal/pkg/logger"
	"github.com/carnaval-microservice/internal/repository/memory"
	"github.com/carnaval-microservice/internal/repository/postgres"
	redisRepo "github.com/carnaval-microservice/internal/repository/redis"
	"github.com/carnaval-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Carnaval Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	// 3. Initialize repositories for the configured storage driver
	var (
		venueRepo  repository.VenueRepository
		permitRepo repository.PermitRepository
	)
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		log.Info("PostgreSQL connected")

		venueRepo = postgres.NewVenueRepository(db, log)
		permitRepo = postgres.NewPermitRepository(db, log)
	default:
		venueRepo = memory.NewVenueRepository(log)
		permitRepo = memory.NewPermitRepository(log)
	}

	// 4. Connect to Redis when enabled; events stay in-process otherwise
	var streamRepo repository.StreamRepository
	if cfg.Redis.Enabled {
		redisClient, err := redisRepo.New(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis connected")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Health(ctx); err != nil {
			cancel()
			log.Fatal("Redis health check failed", zap.Error(err))
		}
		cancel()

		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
	}

	log.Info("Repositories initialized")

	// 5. Initialize use cases
	venueUC := usecase.NewVenueUseCase(venueRepo, streamRepo, log, cfg.Thresholds())
	permitUC := usecase.NewPermitUseCase(permitRepo, streamRepo, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP handlers
	venueHandler := handler.NewVenueHandler(venueUC, log)
	permitHandler := handler.NewPermitHandler(permitUC, log)

	log.Info("HTTP handlers initialized")

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, venueHandler, permitHandler)

	log.Info("HTTP server initialized")

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
