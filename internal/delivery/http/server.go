package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/config"
	"github.com/carnaval-microservice/internal/delivery/http/handler"
	"github.com/carnaval-microservice/internal/delivery/http/middleware"
)

// Server - HTTP server built on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	venueHandler  *handler.VenueHandler
	permitHandler *handler.PermitHandler
}

// NewServer - creates a new HTTP server with middleware and routes set up
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	venueHandler *handler.VenueHandler,
	permitHandler *handler.PermitHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Carnaval Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		venueHandler:  venueHandler,
		permitHandler: permitHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - middleware chain, order matters: recovery first
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - route registration
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Static files for the demo form
	s.app.Static("/static", "./static")

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Aforo: venues and occupancy
	aforo := api.Group("/aforo")
	aforo.Post("/venues", s.venueHandler.CreateVenue)
	aforo.Get("/venues", s.venueHandler.GetVenues)
	aforo.Get("/venues/:id", s.venueHandler.GetVenueDetails)
	aforo.Put("/venues/:id", s.venueHandler.UpdateVenue)
	aforo.Delete("/venues/:id", s.venueHandler.DeleteVenue)
	aforo.Put("/venues/:id/occupancy", s.venueHandler.UpdateOccupancy)
	aforo.Post("/venues/:id/entries", s.venueHandler.RegisterEntry)
	aforo.Post("/venues/:id/exits", s.venueHandler.RegisterExit)
	aforo.Get("/venues/:id/state", s.venueHandler.GetOccupancyState)
	aforo.Get("/venues/:id/alerts", s.venueHandler.GetActiveAlerts)
	aforo.Put("/alerts/:id/processed", s.venueHandler.MarkAlertProcessed)
	aforo.Get("/reports/occupancy", s.venueHandler.GenerateReport)
	aforo.Get("/config/thresholds", s.venueHandler.GetThresholds)
	aforo.Put("/config/thresholds", s.venueHandler.UpdateThresholds)

	// Permisos: vendors and permit requests
	permisos := api.Group("/permisos")
	permisos.Post("/vendors", s.permitHandler.RegisterVendor)
	permisos.Get("/vendors", s.permitHandler.ListVendors)
	permisos.Get("/vendors/:id", s.permitHandler.GetVendor)
	permisos.Put("/vendors/:id/block", s.permitHandler.BlockVendor)
	permisos.Get("/vendors/:id/requests", s.permitHandler.GetVendorRequests)
	permisos.Post("/requests", s.permitHandler.CreateRequest)
	permisos.Get("/requests/pending", s.permitHandler.GetPendingRequests)
	permisos.Put("/requests/:id/approve", s.permitHandler.ApproveRequest)
	permisos.Put("/requests/:id/reject", s.permitHandler.RejectRequest)
	permisos.Put("/requests/:id/cancel", s.permitHandler.CancelRequest)
	permisos.Get("/statistics", s.permitHandler.GetStatistics)
	permisos.Post("/availability", s.permitHandler.CheckAvailability)
}

// Start - starts listening on the configured address
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - fallback handler for errors that escape the handlers
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
