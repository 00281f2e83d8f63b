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

// PermitHandler - HTTP handlers for the vendor permit module
type PermitHandler struct {
	permitUC *usecase.PermitUseCase
	logger   *zap.Logger
}

// NewPermitHandler creates a new PermitHandler
func NewPermitHandler(permitUC *usecase.PermitUseCase, logger *zap.Logger) *PermitHandler {
	return &PermitHandler{
		permitUC: permitUC,
		logger:   logger,
	}
}

// RegisterVendor godoc
// @Summary Register a vendor
// @Tags Permisos
// @Accept json
// @Produce json
// @Param request body dto.RegisterVendorRequest true "Vendor data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/permisos/vendors [post]
func (h *PermitHandler) RegisterVendor(c *fiber.Ctx) error {
	var req dto.RegisterVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	vendor, err := h.permitUC.RegisterVendor(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to register vendor", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, vendor)
}

// ListVendors - every registered vendor
func (h *PermitHandler) ListVendors(c *fiber.Ctx) error {
	vendors, err := h.permitUC.ListVendors(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, vendors, &utils.Meta{
		Total: len(vendors),
	})
}

// GetVendor - a single vendor by id
func (h *PermitHandler) GetVendor(c *fiber.Ctx) error {
	vendorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	vendor, err := h.permitUC.GetVendor(c.Context(), vendorID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, vendor, nil)
}

// BlockVendor godoc
// @Summary Block a vendor
// @Description Blocked vendors cannot create new permit requests
// @Tags Permisos
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/permisos/vendors/{id}/block [put]
func (h *PermitHandler) BlockVendor(c *fiber.Ctx) error {
	vendorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	vendor, err := h.permitUC.BlockVendor(c.Context(), vendorID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, vendor, nil)
}

// CreateRequest godoc
// @Summary Create a permit request
// @Description Computes the fee from category and area; the request starts as pending
// @Tags Permisos
// @Accept json
// @Produce json
// @Param request body dto.CreatePermitRequest true "Permit request data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/permisos/requests [post]
func (h *PermitHandler) CreateRequest(c *fiber.Ctx) error {
	var req dto.CreatePermitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	request, err := h.permitUC.CreateRequest(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, request)
}

// GetVendorRequests - every request owned by a vendor
func (h *PermitHandler) GetVendorRequests(c *fiber.Ctx) error {
	vendorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	requests, err := h.permitUC.GetVendorRequests(c.Context(), vendorID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, requests, &utils.Meta{
		Total: len(requests),
	})
}

// GetPendingRequests - every request awaiting a decision
func (h *PermitHandler) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := h.permitUC.GetPendingRequests(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, requests, &utils.Meta{
		Total: len(requests),
	})
}

// ApproveRequest godoc
// @Summary Approve a pending permit request
// @Description Generates a unique permit number and records the approval
// @Tags Permisos
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.ApproveRequestRequest true "Approval data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/permisos/requests/{id}/approve [put]
func (h *PermitHandler) ApproveRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.ApproveRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	approval, err := h.permitUC.ApproveRequest(c.Context(), requestID, req.ApprovedBy, req.Conditions)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, approval, nil)
}

// RejectRequest - reject a pending permit request with a reason
func (h *PermitHandler) RejectRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.RejectRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	request, err := h.permitUC.RejectRequest(c.Context(), requestID, req.Reason)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, request, nil)
}

// CancelRequest - cancel a pending permit request
func (h *PermitHandler) CancelRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	request, err := h.permitUC.CancelRequest(c.Context(), requestID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, request, nil)
}

// GetStatistics godoc
// @Summary Permit request statistics
// @Description Counts by status plus total revenue over approved requests
// @Tags Permisos
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/permisos/statistics [get]
func (h *PermitHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.permitUC.GetStatistics(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}

// CheckAvailability godoc
// @Summary Check location availability for a date range
// @Description A location is unavailable when an approved request overlaps the range
// @Tags Permisos
// @Accept json
// @Produce json
// @Param request body dto.AvailabilityRequest true "Location and dates"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/permisos/availability [post]
func (h *PermitHandler) CheckAvailability(c *fiber.Ctx) error {
	var req dto.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	available, err := h.permitUC.ValidateLocationAvailable(c.Context(), req.Location, req.StartDate, req.EndDate)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.AvailabilityResponse{
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Available: available,
	}, nil)
}
