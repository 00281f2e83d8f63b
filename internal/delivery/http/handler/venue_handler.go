package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/pkg/errors"
	"github.com/carnaval-microservice/internal/pkg/utils"
	"github.com/carnaval-microservice/internal/pkg/validator"
	"github.com/carnaval-microservice/internal/usecase"
	"github.com/carnaval-microservice/internal/usecase/dto"
)

// VenueHandler - HTTP handlers for the venue capacity module
type VenueHandler struct {
	venueUC *usecase.VenueUseCase
	logger  *zap.Logger
}

// NewVenueHandler creates a new VenueHandler
func NewVenueHandler(venueUC *usecase.VenueUseCase, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{
		venueUC: venueUC,
		logger:  logger,
	}
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Registers a venue for capacity monitoring; occupancy starts at 0
// @Tags Aforo
// @Accept json
// @Produce json
// @Param request body dto.CreateVenueRequest true "Venue data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/aforo/venues [post]
func (h *VenueHandler) CreateVenue(c *fiber.Ctx) error {
	var req dto.CreateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	venue, err := h.venueUC.CreateVenue(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create venue", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, venue)
}

// GetVenues godoc
// @Summary List venues
// @Tags Aforo
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/aforo/venues [get]
func (h *VenueHandler) GetVenues(c *fiber.Ctx) error {
	venues, err := h.venueUC.GetVenues(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, venues, &utils.Meta{
		Total: len(venues),
	})
}

// GetVenueDetails godoc
// @Summary Get a venue with its occupancy
// @Tags Aforo
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/aforo/venues/{id} [get]
func (h *VenueHandler) GetVenueDetails(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	details, err := h.venueUC.GetVenueDetails(c.Context(), venueID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, details, nil)
}

// UpdateVenue - update mutable venue fields (status, name, location, description)
func (h *VenueHandler) UpdateVenue(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	venue, err := h.venueUC.UpdateVenue(c.Context(), venueID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, venue, nil)
}

// DeleteVenue - remove a venue and its occupancy record
func (h *VenueHandler) DeleteVenue(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.venueUC.DeleteVenue(c.Context(), venueID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// UpdateOccupancy godoc
// @Summary Set the absolute occupancy of a venue
// @Description Rejects counts above the venue's maximum capacity
// @Tags Aforo
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.UpdateOccupancyRequest true "New occupancy"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/aforo/venues/{id}/occupancy [put]
func (h *VenueHandler) UpdateOccupancy(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateOccupancyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	occupancy, err := h.venueUC.UpdateOccupancy(c.Context(), venueID, *req.Current)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, occupancy, nil)
}

// RegisterEntry - register people entering a venue
func (h *VenueHandler) RegisterEntry(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.EntryExitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	occupancy, err := h.venueUC.RegisterEntry(c.Context(), venueID, req.Count)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, occupancy, nil)
}

// RegisterExit - register people leaving a venue
func (h *VenueHandler) RegisterExit(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.EntryExitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	occupancy, err := h.venueUC.RegisterExit(c.Context(), venueID, req.Count)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, occupancy, nil)
}

// GetOccupancyState - derived state classification for a venue
func (h *VenueHandler) GetOccupancyState(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	state, err := h.venueUC.GetOccupancyState(c.Context(), venueID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, state, nil)
}

// GetActiveAlerts - unprocessed alerts of a venue
func (h *VenueHandler) GetActiveAlerts(c *fiber.Ctx) error {
	venueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	alerts, err := h.venueUC.GetActiveAlerts(c.Context(), venueID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, alerts, &utils.Meta{
		Total: len(alerts),
	})
}

// MarkAlertProcessed - flip the processed flag of an alert
func (h *VenueHandler) MarkAlertProcessed(c *fiber.Ctx) error {
	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.venueUC.MarkAlertProcessed(c.Context(), alertID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"processed": true}, nil)
}

// GenerateReport godoc
// @Summary Aggregate occupancy report
// @Tags Aforo
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/aforo/reports/occupancy [get]
func (h *VenueHandler) GenerateReport(c *fiber.Ctx) error {
	report, err := h.venueUC.GenerateReport(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, report, &utils.Meta{
		Total: report.TotalVenues,
	})
}

// GetThresholds - current alert thresholds
func (h *VenueHandler) GetThresholds(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.venueUC.GetThresholds(), nil)
}

// UpdateThresholds - partial update of the alert thresholds, affecting all
// subsequent evaluations
func (h *VenueHandler) UpdateThresholds(c *fiber.Ctx) error {
	var req dto.UpdateThresholdsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, h.venueUC.UpdateThresholds(req), nil)
}
